package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// Announcement priorities.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Announcement is a message broadcast by an administrator.
// swagger:model Announcement
type Announcement struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Author   string `json:"author"`
}

// AnnouncementResult reports the delivery outcome per recipient.
// swagger:model AnnouncementResult
type AnnouncementResult struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// AnnouncementService sends announcements to the configured audience.
type AnnouncementService interface {
	Send(ctx context.Context, a *Announcement) (*AnnouncementResult, error)
}
