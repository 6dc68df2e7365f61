package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/cricket-league/internal/domain/registration"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/platform/id"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
)

const (
	ReasonMissingFields = "Missing required fields"
	ReasonInvalidEmail  = "Invalid email format"

	// RegistrationEmailPath is the webhook that sends the confirmation email.
	RegistrationEmailPath = "/api/send-registration-email"
)

var basicEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterInput struct {
	FullName      string `validate:"required"`
	Email         string `validate:"required,basic_email"`
	Phone         string `validate:"required"`
	DateOfBirth   string `validate:"required"`
	PreferredRole string `validate:"required"`
	BattingStyle  string `validate:"required"`
	BowlingStyle  string
	Experience    string
	PreferredTeam string
}

type RegistrationResult struct {
	EntryID   string
	Persisted bool
	Message   string
}

type RegistrationServiceConfig struct {
	Logger    *logging.Logger
	Clock     clockwork.Clock
	IDs       id.Generator
	Validator *validator.Validate
}

// RegistrationService validates and stores public registrations. A nil
// repository means write credentials are absent and the service runs in demo
// mode; a nil job enqueuer leaves the confirmation email to the CMS automation.
type RegistrationService struct {
	repo     registration.Repository
	jobs     JobEnqueuer
	validate *validator.Validate
	clock    clockwork.Clock
	ids      id.Generator
	logger   *logging.Logger
}

func NewRegistrationService(repo registration.Repository, jobs JobEnqueuer, cfg RegistrationServiceConfig) *RegistrationService {
	s := &RegistrationService{
		repo:     repo,
		jobs:     jobs,
		validate: cfg.Validator,
		clock:    cfg.Clock,
		ids:      cfg.IDs,
		logger:   cfg.Logger,
	}
	if s.validate == nil {
		s.validate = NewValidator()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.ids == nil {
		s.ids = id.NewUUIDGenerator()
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

// NewValidator returns a validator with the basic_email rule registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return basicEmailPattern.MatchString(fl.Field().String())
	})
	return v
}

func (s *RegistrationService) DemoMode() bool {
	return s.repo == nil
}

func (s *RegistrationService) Submit(ctx context.Context, input RegisterInput) (RegistrationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Submit")
	defer span.End()

	input = trimRegisterInput(input)
	if err := s.validateInput(ctx, input); err != nil {
		return RegistrationResult{}, err
	}

	submission := registration.Submission{
		FullName:      input.FullName,
		Email:         input.Email,
		Phone:         input.Phone,
		DateOfBirth:   input.DateOfBirth,
		PreferredRole: input.PreferredRole,
		BattingStyle:  input.BattingStyle,
		BowlingStyle:  input.BowlingStyle,
		Experience:    input.Experience,
		PreferredTeam: input.PreferredTeam,
		Status:        registration.StatusPending,
		SubmittedAt:   s.clock.Now().UTC(),
	}
	submission.PreferredTeamCode, _ = team.ResolveShortCode(input.PreferredTeam)

	if s.repo == nil {
		ref, err := s.ids.NewID()
		if err != nil {
			return RegistrationResult{}, fmt.Errorf("generate demo reference: %w", err)
		}
		s.logger.WarnContext(ctx, "registration accepted in demo mode, not persisted",
			"reference", ref,
			"email", input.Email,
			"preferred_role", input.PreferredRole,
			"preferred_team", submission.PreferredTeamCode,
		)
		return RegistrationResult{
			EntryID: ref,
			Message: "Registration received in demo mode. CMS write credentials are not configured, so it was not saved.",
		}, nil
	}

	uid, err := s.repo.Create(ctx, submission)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("create registration entry: %w", err)
	}
	s.logger.InfoContext(ctx, "registration stored", "entry_uid", uid, "preferred_team", submission.PreferredTeamCode)

	s.enqueueConfirmation(ctx, uid, submission)

	return RegistrationResult{
		EntryID:   uid,
		Persisted: true,
		Message:   "Registration submitted successfully. A confirmation email is on its way.",
	}, nil
}

// enqueueConfirmation only logs on failure; the entry is already stored.
func (s *RegistrationService) enqueueConfirmation(ctx context.Context, uid string, sub registration.Submission) {
	if s.jobs == nil {
		return
	}
	payload := map[string]any{
		"entry": map[string]any{
			"uid":            uid,
			"full_name":      sub.FullName,
			"email":          sub.Email,
			"phone":          sub.Phone,
			"preferred_role": sub.PreferredRole,
			"preferred_team": sub.PreferredTeam,
		},
	}
	if err := s.jobs.Enqueue(ctx, RegistrationEmailPath, payload, 0, "registration-email-"+uid); err != nil {
		s.logger.WarnContext(ctx, "enqueue registration email failed", "entry_uid", uid, "error", err)
	}
}

func (s *RegistrationService) validateInput(ctx context.Context, input RegisterInput) error {
	err := s.validate.StructCtx(ctx, input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	missing := make([]string, 0, len(fieldErrs))
	malformed := make([]string, 0, 1)
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		malformed = append(malformed, fe.Field())
	}
	if len(missing) > 0 {
		return &ValidationError{Reason: ReasonMissingFields, Fields: missing}
	}
	return &ValidationError{Reason: ReasonInvalidEmail, Fields: malformed}
}

func trimRegisterInput(in RegisterInput) RegisterInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
	in.PreferredRole = strings.TrimSpace(in.PreferredRole)
	in.BattingStyle = strings.TrimSpace(in.BattingStyle)
	in.BowlingStyle = strings.TrimSpace(in.BowlingStyle)
	in.Experience = strings.TrimSpace(in.Experience)
	in.PreferredTeam = strings.TrimSpace(in.PreferredTeam)
	return in
}
