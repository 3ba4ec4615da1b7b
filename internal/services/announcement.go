package services

import (
	"context"
	"fmt"
	"log/slog"

	"campusevents/internal/domain"
	"campusevents/internal/metrics"
	"campusevents/internal/sanitize"
)

type announcementService struct {
	mailer     domain.Mailer
	renderer   domain.EmailTemplateRenderer
	recipients []string
	logger     *slog.Logger
}

// NewAnnouncementService returns an AnnouncementService that mails every recipient
// using the "announcement" template.
func NewAnnouncementService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, recipients []string, logger *slog.Logger) domain.AnnouncementService {
	return &announcementService{mailer: mailer, renderer: renderer, recipients: recipients, logger: logger}
}

// Send delivers a to each recipient. A failed recipient does not stop the others;
// it is reported in the result.
func (s *announcementService) Send(ctx context.Context, a *domain.Announcement) (*domain.AnnouncementResult, error) {
	if a == nil {
		return nil, fmt.Errorf("announcement is nil")
	}
	clean := domain.Announcement{
		Title:    sanitize.Text(a.Title),
		Message:  sanitize.Text(a.Message),
		Priority: a.Priority,
		Author:   a.Author,
	}
	if clean.Priority == "" {
		clean.Priority = domain.PriorityNormal
	}
	if err := validateAnnouncement(clean); err != nil {
		return nil, err
	}

	subject, htmlBody, textBody, err := s.renderer.Render("announcement", clean)
	if err != nil {
		return nil, fmt.Errorf("failed to render announcement template: %w", err)
	}

	result := &domain.AnnouncementResult{Failed: []string{}}
	for _, to := range s.recipients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
			s.logger.ErrorContext(ctx, "announcement delivery failed", "to", to, "err", err)
			metrics.AnnouncementDeliveries.WithLabelValues("failed").Inc()
			result.Failed = append(result.Failed, to)
			continue
		}
		metrics.AnnouncementDeliveries.WithLabelValues("sent").Inc()
		result.Sent++
	}
	s.logger.InfoContext(ctx, "announcement sent", "title", clean.Title, "sent", result.Sent, "failed", len(result.Failed))
	return result, nil
}

func validateAnnouncement(a domain.Announcement) error {
	var missing []string
	if a.Title == "" {
		missing = append(missing, "title")
	}
	if a.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &domain.FieldError{Fields: missing, Reason: "is required"}
	}
	switch a.Priority {
	case domain.PriorityNormal, domain.PriorityHigh, domain.PriorityUrgent:
		return nil
	}
	return &domain.FieldError{Fields: []string{"priority"}, Reason: "must be normal, high or urgent"}
}
