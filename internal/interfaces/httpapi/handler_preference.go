package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/cricket-league/internal/usecase"
)

func (h *Handler) GetFavoriteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFavoriteTeam")
	defer span.End()

	visitorID, _ := visitorIDFromContext(ctx)
	brand, err := h.preferenceService.FavoriteTeam(ctx, visitorID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, brandToDTO(brand))
}

func (h *Handler) SetFavoriteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetFavoriteTeam")
	defer span.End()

	var req favoriteTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	visitorID, _ := visitorIDFromContext(ctx)
	brand, err := h.preferenceService.SetFavoriteTeam(ctx, visitorID, req.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "set favorite team failed", "visitor_id", visitorID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, brandToDTO(brand))
}

func (h *Handler) ClearFavoriteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearFavoriteTeam")
	defer span.End()

	visitorID, _ := visitorIDFromContext(ctx)
	if err := h.preferenceService.ClearFavoriteTeam(ctx, visitorID); err != nil {
		h.logger.WarnContext(ctx, "clear favorite team failed", "visitor_id", visitorID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
