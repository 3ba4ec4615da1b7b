package services

import (
	"context"
	"errors"
	"log/slog"

	"campusevents/internal/adapters/auth"
	"campusevents/internal/domain"
	"campusevents/internal/metrics"
)

type authService struct {
	creds  domain.CredentialStore
	codec  domain.TokenCodec
	logger *slog.Logger
}

// NewAuthService creates an AuthService over a static credential store and a token codec.
func NewAuthService(creds domain.CredentialStore, codec domain.TokenCodec, logger *slog.Logger) domain.AuthService {
	return &authService{
		creds:  creds,
		codec:  codec,
		logger: logger,
	}
}

// ValidateCredentials returns the same error for an unknown email and a wrong password.
func (s *authService) ValidateCredentials(ctx context.Context, email, password string) (*domain.Principal, error) {
	c, ok := s.creds.Lookup(email, password)
	if !ok {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.InfoContext(ctx, "login succeeded", "user_id", c.ID, "role", c.Role)
	return c.Principal(), nil
}

func (s *authService) CreateToken(p *domain.Principal) (string, error) {
	return s.codec.Encode(p)
}

func (s *authService) DecodeToken(token string) (*domain.Principal, error) {
	p, err := s.codec.Decode(token)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, domain.ErrTokenTampered) {
			reason = "tampered"
		}
		metrics.TokenRejections.WithLabelValues(reason).Inc()
		return nil, err
	}
	return p, nil
}

// PrincipalFromCookieHeader returns nil when the session cookie is absent or does not decode.
// A tampered token is logged; any other failure is treated as anonymous silently.
func (s *authService) PrincipalFromCookieHeader(header string) *domain.Principal {
	token, ok := auth.TokenFromCookieHeader(header)
	if !ok {
		return nil
	}
	p, err := s.DecodeToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenTampered) {
			s.logger.Warn("rejected tampered session token")
		}
		return nil
	}
	return p
}
