package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/cricket-league/internal/domain/registration"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
)

type NotificationServiceConfig struct {
	From       string
	LeagueName string
	Logger     *logging.Logger
}

type NotificationResult struct {
	EmailID string
	Sent    bool
	Shape   registration.Shape
}

// NotificationService sends the registration confirmation email. With a nil
// sender it logs the email and reports Sent=false.
type NotificationService struct {
	sender     EmailSender
	from       string
	leagueName string
	logger     *logging.Logger
}

func NewNotificationService(sender EmailSender, cfg NotificationServiceConfig) *NotificationService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	leagueName := strings.TrimSpace(cfg.LeagueName)
	if leagueName == "" {
		leagueName = "Cricket League"
	}
	return &NotificationService{
		sender:     sender,
		from:       strings.TrimSpace(cfg.From),
		leagueName: leagueName,
		logger:     logger,
	}
}

func (s *NotificationService) SendRegistrationConfirmation(ctx context.Context, payload map[string]any) (NotificationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.SendRegistrationConfirmation")
	defer span.End()

	contact, shape, err := registration.ParseWebhookPayload(payload)
	if err != nil {
		if errors.Is(err, registration.ErrMissingFields) {
			return NotificationResult{Shape: shape}, &ValidationError{Reason: ReasonMissingFields, Fields: []string{"full_name", "email"}}
		}
		return NotificationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	email := Email{
		From:    s.from,
		To:      []string{contact.Email},
		Subject: fmt.Sprintf("Registration received - %s", s.leagueName),
		HTML:    s.composeConfirmation(contact),
	}

	if s.sender == nil {
		s.logger.WarnContext(ctx, "email provider not configured, confirmation not sent",
			"entry_uid", contact.EntryUID,
			"payload_shape", string(shape),
		)
		return NotificationResult{Shape: shape}, nil
	}

	emailID, err := s.sender.Send(ctx, email)
	if err != nil {
		return NotificationResult{Shape: shape}, fmt.Errorf("send registration email: %w", err)
	}
	s.logger.InfoContext(ctx, "registration email sent", "entry_uid", contact.EntryUID, "email_id", emailID, "payload_shape", string(shape))
	return NotificationResult{EmailID: emailID, Sent: true, Shape: shape}, nil
}

func (s *NotificationService) composeConfirmation(c registration.Contact) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	league := html.EscapeString(s.leagueName)
	_, _ = buf.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">`)
	_, _ = buf.WriteString(`<h1 style="color:#1e3a8a">Welcome to the ` + league + `!</h1>`)
	_, _ = buf.WriteString(`<p>Hi ` + html.EscapeString(c.FullName) + `,</p>`)
	_, _ = buf.WriteString(`<p>Thanks for registering. Our selectors review every application and will contact you about trials.</p>`)

	rows := [][2]string{
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Preferred role", c.PreferredRole},
		{"Preferred team", preferredTeamLabel(c.PreferredTeam)},
	}
	_, _ = buf.WriteString(`<table style="border-collapse:collapse">`)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		_, _ = buf.WriteString(`<tr><td style="padding:4px 12px 4px 0;color:#6b7280">` + row[0] + `</td><td>` + html.EscapeString(row[1]) + `</td></tr>`)
	}
	_, _ = buf.WriteString(`</table>`)
	if c.EntryUID != "" {
		_, _ = buf.WriteString(`<p style="color:#6b7280;font-size:12px">Reference: ` + html.EscapeString(c.EntryUID) + `</p>`)
	}
	_, _ = buf.WriteString(`<p>See you on the field,<br>The ` + league + ` team</p></div>`)
	return buf.String()
}

func preferredTeamLabel(text string) string {
	code, ok := team.ResolveShortCode(text)
	if !ok {
		return text
	}
	b, _ := team.BrandFor(code)
	return b.Name
}
