package handler

import (
	"net/http"

	"github.com/mhollis/footprint/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	calcs *service.CalculationService,
	flow *service.FlowService,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	calcHandler := NewCalculationHandler(calcs)
	questionnaire := NewQuestionnaireHandler(flow, cookieSecure)

	// API.
	mux.HandleFunc("GET /api/health", HandleHealth)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.Handle("POST /api/calculations", RequireAuth(auth, http.HandlerFunc(calcHandler.HandleCreate)))
	mux.Handle("GET /api/calculations/{id}", RequireAuth(auth, http.HandlerFunc(calcHandler.HandleGet)))
	mux.Handle("GET /api/users/{id}/calculations", RequireAuth(auth, http.HandlerFunc(calcHandler.HandleListByUser)))

	// Pages.
	mux.Handle("GET /{$}", OptionalAuth(auth, http.HandlerFunc(HandleHome)))
	mux.Handle("GET /learn", OptionalAuth(auth, http.HandlerFunc(HandleLearn)))
	mux.Handle("GET /tips", OptionalAuth(auth, http.HandlerFunc(HandleTips)))

	// Questionnaire flow.
	mux.Handle("GET /calculator", OptionalAuth(auth, http.HandlerFunc(questionnaire.HandleCalculator)))
	mux.HandleFunc("POST /calculator/answer", questionnaire.HandleAnswer)
	mux.HandleFunc("POST /calculator/next", questionnaire.HandleNext)
	mux.HandleFunc("POST /calculator/previous", questionnaire.HandlePrevious)
	mux.Handle("GET /results", OptionalAuth(auth, http.HandlerFunc(questionnaire.HandleResults)))
}
