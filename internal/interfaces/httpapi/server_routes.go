package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/pages/home", handler.HomePage)
	mux.HandleFunc("GET /api/pages/teams", handler.TeamsPage)
	mux.HandleFunc("GET /api/pages/schedule", handler.SchedulePage)
	mux.HandleFunc("GET /api/pages/standings", handler.StandingsPage)
	mux.HandleFunc("GET /api/pages/videos", handler.VideosPage)
	mux.HandleFunc("GET /api/pages/news", handler.NewsPage)
}

func registerRegistrationRoutes(mux *http.ServeMux, handler *Handler, webhookSecret string) {
	mux.HandleFunc("POST /api/register", handler.Register)
	mux.Handle("POST /api/send-registration-email", RequireWebhookSecret(webhookSecret, http.HandlerFunc(handler.SendRegistrationEmail)))
	mux.HandleFunc("GET /api/send-registration-email", handler.RegistrationEmailUsage)
}

func registerPreferenceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /api/preferences/favorite-team", RequireVisitorID(http.HandlerFunc(handler.GetFavoriteTeam)))
	mux.Handle("PUT /api/preferences/favorite-team", RequireVisitorID(http.HandlerFunc(handler.SetFavoriteTeam)))
	mux.Handle("DELETE /api/preferences/favorite-team", RequireVisitorID(http.HandlerFunc(handler.ClearFavoriteTeam)))
}
