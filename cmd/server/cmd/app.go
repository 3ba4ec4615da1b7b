package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"campusevents/config"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	"campusevents/internal/domain"
	"campusevents/internal/repository/jsonfile"
	"campusevents/internal/repository/memory"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

// app holds the wired services shared by the subcommands.
type app struct {
	cfg           *config.Config
	logger        *slog.Logger
	events        domain.EventService
	auth          domain.AuthService
	announcements domain.AnnouncementService
	close         func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	repo, closeRepo, err := newEventRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	authSvc, err := newAuthService(cfg, logger)
	if err != nil {
		_ = closeRepo()
		return nil, err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		_ = closeRepo()
		return nil, fmt.Errorf("mailer: %w", err)
	}

	return &app{
		cfg:           cfg,
		logger:        logger,
		events:        services.NewEventService(repo, logger, cfg.ContextTimeout),
		auth:          authSvc,
		announcements: services.NewAnnouncementService(mailer, email.NewTemplateRenderer(), cfg.AnnouncementRecipients, logger),
		close:         closeRepo,
	}, nil
}

func newEventRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EventRepository, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.NewEventRepository(nil), noop, nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		return postgres.NewEventRepository(db), db.Close, nil
	default:
		logger.Info("using file event store", "path", cfg.EventsFile)
		return jsonfile.NewEventRepository(cfg.EventsFile, logger), noop, nil
	}
}

func newAuthService(cfg *config.Config, logger *slog.Logger) (domain.AuthService, error) {
	creds := auth.DefaultCredentials()
	if cfg.UsersFile != "" {
		loaded, err := auth.LoadCredentialsFile(cfg.UsersFile)
		if err != nil {
			return nil, err
		}
		creds = loaded
	}
	store, err := auth.NewStaticCredentialStore(creds)
	if err != nil {
		return nil, err
	}
	codec, err := auth.NewTokenCodec(cfg.TokenFormat, cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	if cfg.TokenFormat == auth.FormatOpaque {
		logger.Warn("session tokens are unsigned; set TOKEN_FORMAT=jwt to detect tampering")
	}
	return services.NewAuthService(store, codec, logger), nil
}
