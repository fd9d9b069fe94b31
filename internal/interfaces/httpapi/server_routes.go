package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.GetLeagues)

	mux.HandleFunc("POST /v1/seasons", handler.CreateSeason)
	mux.HandleFunc("GET /v1/seasons/id/{shortName}", handler.GetSeasonID)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeasonNames)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/information", handler.GetSeasonInformation)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/roster", handler.GetSeasonRoster)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/roster/names", handler.GetSeasonRosterByName)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/regular", handler.GetSeasonRegular)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/playoffs", handler.GetSeasonPlayoffs)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/profiles/{profileHId}/team", handler.GetMostRecentTeam)

	mux.HandleFunc("PUT /v1/seasons/{seasonID}/roster/teams", handler.AddRosterTeams)
	mux.HandleFunc("PUT /v1/seasons/{seasonID}/roster/teams/{teamPId}/profiles", handler.AddRosterProfiles)
	mux.HandleFunc("DELETE /v1/seasons/{seasonID}/roster/teams/{teamPId}/profiles", handler.RemoveRosterProfiles)

	mux.HandleFunc("POST /v1/seasons/{seasonID}/codes", handler.GenerateCodes)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/setups", handler.ListMatchSetups)
	mux.HandleFunc("POST /v1/matches/{matchID}/setup", handler.AddMatchSetup)
	mux.HandleFunc("POST /v1/matches/{matchID}/submit", handler.SubmitMatchSetup)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/internal/warm", handler.WarmCache)
}
