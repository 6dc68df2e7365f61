package contentstack

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-league/internal/domain/registration"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
)

// EntryWriter is the subset of the management client the repository needs.
type EntryWriter interface {
	CreateEntry(ctx context.Context, contentType string, fields map[string]any) (string, error)
	PublishEntry(ctx context.Context, contentType, uid string) error
}

// RegistrationRepository stores submissions as CMS entries.
type RegistrationRepository struct {
	writer  EntryWriter
	publish bool
	logger  *logging.Logger
}

func NewRegistrationRepository(writer EntryWriter, publish bool, logger *logging.Logger) *RegistrationRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &RegistrationRepository{writer: writer, publish: publish, logger: logger}
}

// Create writes the entry and, when enabled, publishes it. A failed publish
// is logged and the created UID is still returned.
func (r *RegistrationRepository) Create(ctx context.Context, s registration.Submission) (string, error) {
	uid, err := r.writer.CreateEntry(ctx, registration.ContentType, submissionFields(s))
	if err != nil {
		return "", fmt.Errorf("store registration: %w", err)
	}

	if r.publish {
		if err := r.writer.PublishEntry(ctx, registration.ContentType, uid); err != nil {
			r.logger.WarnContext(ctx, "publish registration failed", "entry_uid", uid, "error", err)
		}
	}
	return uid, nil
}

func submissionFields(s registration.Submission) map[string]any {
	status := s.Status
	if status == "" {
		status = registration.StatusPending
	}
	submittedAt := s.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	fields := map[string]any{
		"title":          s.FullName,
		"full_name":      s.FullName,
		"email":          s.Email,
		"phone":          s.Phone,
		"date_of_birth":  s.DateOfBirth,
		"preferred_role": s.PreferredRole,
		"batting_style":  s.BattingStyle,
		"bowling_style":  s.BowlingStyle,
		"experience":     s.Experience,
		"preferred_team": s.PreferredTeam,
		"status":         string(status),
		"submitted_at":   submittedAt.UTC().Format(time.RFC3339),
	}
	if s.PreferredTeamCode != "" {
		fields["preferred_team_code"] = s.PreferredTeamCode
	}
	return fields
}
