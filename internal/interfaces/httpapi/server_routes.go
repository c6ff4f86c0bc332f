package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/series", handler.ListSeries)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/leaderboards", handler.ListLeaderboards)
	mux.HandleFunc("GET /v1/team", handler.GetTeamReport)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{name}", handler.GetPlayer)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
	mux.HandleFunc("GET /v1/session/filter", handler.GetSessionFilter)
	mux.HandleFunc("PUT /v1/session/filter", handler.SaveSessionFilter)
	mux.HandleFunc("POST /v1/session/filter/apply", handler.ApplySessionFilter)
}
