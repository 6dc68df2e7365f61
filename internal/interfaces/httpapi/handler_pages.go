package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/cricket-league/internal/usecase"
)

const maxPageLimit = 100

func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HomePage")
	defer span.End()

	q, err := parsePageQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.contentService.Home(ctx, q)
	writeSuccess(ctx, w, http.StatusOK, homePageDTO{
		Teams:     teamSection(ctx, page.Teams),
		Matches:   matchSection(ctx, page.Matches),
		Standings: standingSection(ctx, page.Standings),
		Headlines: articleSection(ctx, page.Headlines),
	})
}

func (h *Handler) TeamsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamsPage")
	defer span.End()

	q, err := parsePageQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.contentService.Teams(ctx, q)
	writeSuccess(ctx, w, http.StatusOK, teamsPageDTO{Teams: teamSection(ctx, page.Teams)})
}

func (h *Handler) SchedulePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SchedulePage")
	defer span.End()

	q, err := parsePageQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.contentService.Schedule(ctx, q)
	writeSuccess(ctx, w, http.StatusOK, schedulePageDTO{Matches: matchSection(ctx, page.Matches)})
}

func (h *Handler) StandingsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StandingsPage")
	defer span.End()

	q, err := parsePageQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.contentService.Standings(ctx, q)
	writeSuccess(ctx, w, http.StatusOK, standingsPageDTO{Standings: standingSection(ctx, page.Standings)})
}

func (h *Handler) VideosPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VideosPage")
	defer span.End()

	q, err := parsePageQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.contentService.Videos(ctx, q)
	writeSuccess(ctx, w, http.StatusOK, videosPageDTO{Videos: videoSection(ctx, page.Videos)})
}

func (h *Handler) NewsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NewsPage")
	defer span.End()

	q, err := parsePageQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.contentService.News(ctx, q)
	writeSuccess(ctx, w, http.StatusOK, newsPageDTO{
		Articles:  articleSection(ctx, page.Articles),
		Headlines: articleSection(ctx, page.Headlines),
	})
}

func parsePageQuery(r *http.Request) (usecase.PageQuery, error) {
	values := r.URL.Query()
	q := usecase.PageQuery{Locale: strings.TrimSpace(values.Get("locale"))}

	raw := strings.TrimSpace(values.Get("limit"))
	if raw == "" {
		return q, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxPageLimit {
		return usecase.PageQuery{}, fmt.Errorf("%w: limit must be an integer between 1 and %d", usecase.ErrInvalidInput, maxPageLimit)
	}
	q.Limit = limit
	return q, nil
}
