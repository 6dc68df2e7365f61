package httpapi

import (
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/cricket-league/internal/usecase"
)

const (
	maxRequestBodyBytes = 1 << 20

	msgInvalidBody          = "Invalid request body"
	msgRegistrationFailed   = "Failed to submit registration"
	msgEmailFailed          = "Failed to send registration email"
	msgRegistrationEmailUse = "POST a CMS webhook payload with full_name and email to send the registration confirmation email."
)

type registerRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DateOfBirth   string `json:"dateOfBirth"`
	PreferredRole string `json:"preferredRole"`
	BattingStyle  string `json:"battingStyle"`
	BowlingStyle  string `json:"bowlingStyle"`
	Experience    string `json:"experience"`
	PreferredTeam string `json:"preferredTeam"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		h.logger.InfoContext(ctx, "register request rejected, body is not valid JSON", "error", err)
		writeFlagResponse(ctx, w, http.StatusBadRequest, flagResponse{Error: msgInvalidBody})
		return
	}

	result, err := h.registrationService.Submit(ctx, usecase.RegisterInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		PreferredRole: req.PreferredRole,
		BattingStyle:  req.BattingStyle,
		BowlingStyle:  req.BowlingStyle,
		Experience:    req.Experience,
		PreferredTeam: req.PreferredTeam,
	})
	if err != nil {
		var validationErr *usecase.ValidationError
		if errors.As(err, &validationErr) {
			writeFlagResponse(ctx, w, http.StatusBadRequest, flagResponse{Error: validationErr.Reason})
			return
		}
		h.logger.ErrorContext(ctx, "registration submit failed",
			"client_ip", resolveClientIP(r),
			"country", resolveCountryCode(r),
			"error", err,
		)
		writeFlagResponse(ctx, w, http.StatusInternalServerError, flagResponse{
			Error:   msgRegistrationFailed,
			Details: h.errorDetails(err),
		})
		return
	}

	if !result.Persisted {
		writeFlagResponse(ctx, w, http.StatusOK, flagResponse{
			Success: true,
			Message: result.Message,
			EntryID: result.EntryID,
			Demo:    true,
		})
		return
	}

	h.logger.InfoContext(ctx, "registration accepted", "entry_uid", result.EntryID, "country", resolveCountryCode(r))
	writeFlagResponse(ctx, w, http.StatusCreated, flagResponse{
		Success: true,
		Message: result.Message,
		EntryID: result.EntryID,
	})
}

func (h *Handler) SendRegistrationEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendRegistrationEmail")
	defer span.End()

	var payload map[string]any
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(&payload); err != nil || payload == nil {
		writeFlagResponse(ctx, w, http.StatusBadRequest, flagResponse{Error: msgInvalidBody})
		return
	}

	result, err := h.notificationService.SendRegistrationConfirmation(ctx, payload)
	if err != nil {
		var validationErr *usecase.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.WarnContext(ctx, "registration email webhook missing fields", "payload_shape", string(result.Shape))
			writeFlagResponse(ctx, w, http.StatusBadRequest, flagResponse{Error: validationErr.Reason})
			return
		}
		if errors.Is(err, usecase.ErrInvalidInput) {
			writeFlagResponse(ctx, w, http.StatusBadRequest, flagResponse{Error: msgInvalidBody})
			return
		}
		h.logger.ErrorContext(ctx, "registration email send failed", "payload_shape", string(result.Shape), "error", err)
		writeFlagResponse(ctx, w, http.StatusInternalServerError, flagResponse{
			Error:   msgEmailFailed,
			Details: h.errorDetails(err),
		})
		return
	}

	if !result.Sent {
		writeFlagResponse(ctx, w, http.StatusOK, flagResponse{
			Success: true,
			Message: "Email provider not configured; confirmation was not sent.",
		})
		return
	}
	writeFlagResponse(ctx, w, http.StatusOK, flagResponse{Success: true, EmailID: result.EmailID})
}

func (h *Handler) RegistrationEmailUsage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegistrationEmailUsage")
	defer span.End()

	writeFlagResponse(ctx, w, http.StatusOK, flagResponse{Success: true, Message: msgRegistrationEmailUse})
}

func (h *Handler) errorDetails(err error) string {
	if !h.exposeErrorDetails || err == nil {
		return ""
	}
	return err.Error()
}
