package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"formflow/internal/config"
	"formflow/internal/service"
	"formflow/internal/transport/rest/handler"
	"formflow/internal/transport/rest/middleware"
	"formflow/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config            *config.Config
	AuthService       *service.AuthService
	FormService       *service.FormService
	FillService       *service.FillService
	SubmissionService *service.SubmissionService
	AnalyticsService  *service.AnalyticsService
	GradingService    *service.GradingService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService, c.SubmissionService, c.AnalyticsService)
	fillHandler := handler.NewFillHandler(c.FillService)
	gradeHandler := handler.NewGradeHandler(c.GradingService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.FormService, c.Config)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/sessions", fillHandler.Start).Methods("POST", "OPTIONS")

	// WebSocket routes (owner token in query param)
	v1.HandleFunc("/ws/forms/{formId}", wsHandler.FormWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Owner routes (require owner auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.RequireOwner)

	ownerRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}", formHandler.Update).Methods("PUT", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}", formHandler.Delete).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/submissions", formHandler.Submissions).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/analytics", formHandler.Analytics).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/scoreboard", formHandler.ScoreBoard).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/grade", gradeHandler.Grade).Methods("POST", "OPTIONS")

	// Respondent routes (require the session's respondent token)
	respondentRoutes := v1.PathPrefix("/sessions/{sessionId}").Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("", fillHandler.Get).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/responses/{fieldId}", fillHandler.Answer).Methods("PUT", "OPTIONS")
	respondentRoutes.HandleFunc("/next", fillHandler.Next).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/previous", fillHandler.Previous).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/submit", fillHandler.Submit).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*":
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && cfg.AllowsOrigin(origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
