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

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
	mux.Handle("GET /v1/payments", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPayments)))
	mux.Handle("GET /v1/payments/summary", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPaymentSummary)))
	mux.Handle("DELETE /v1/payments/{paymentID}", RequireAuth(verifier, http.HandlerFunc(handler.Unregister)))
	mux.Handle("POST /v1/teams/{teamID}/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTeam)))

	mux.Handle("GET /v1/admin/leagues/{leagueID}/editor", RequireAuth(verifier, http.HandlerFunc(handler.GetLeagueEditor)))
	mux.Handle("PUT /v1/admin/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLeague)))
}
