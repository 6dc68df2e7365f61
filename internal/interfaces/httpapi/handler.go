package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

type Handler struct {
	contentService      *usecase.ContentService
	registrationService *usecase.RegistrationService
	notificationService *usecase.NotificationService
	preferenceService   *usecase.PreferenceService
	logger              *logging.Logger
	// exposeErrorDetails adds the raw error text to registration failures.
	exposeErrorDetails bool
}

func NewHandler(
	contentService *usecase.ContentService,
	registrationService *usecase.RegistrationService,
	notificationService *usecase.NotificationService,
	preferenceService *usecase.PreferenceService,
	logger *logging.Logger,
	exposeErrorDetails bool,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		contentService:      contentService,
		registrationService: registrationService,
		notificationService: notificationService,
		preferenceService:   preferenceService,
		logger:              logger,
		exposeErrorDetails:  exposeErrorDetails,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
