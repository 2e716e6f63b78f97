package rest

import (
	"net/http"
	"strings"

	"engagesurvey/internal/config"
	"engagesurvey/internal/content"
	"engagesurvey/internal/service"
	"engagesurvey/internal/transport/rest/handler"
	"engagesurvey/internal/transport/rest/middleware"
	"engagesurvey/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	Config          *config.Config
	Study           *config.StudyConfig
	Content         content.Repository
	AuthService     *service.AuthService
	SessionService  *service.SessionService
	ResponseService *service.ResponseService
	ReportService   *service.ReportService
	RateLimiter     *middleware.RateLimiter
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	studyHandler := handler.NewStudyHandler(c.Study)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.AuthService)
	adminHandler := handler.NewAdminHandler(c.ResponseService, c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, `{"error":"api docs unavailable"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Survey images
	r.PathPrefix(handler.ContentBase+"/").
		Handler(http.StripPrefix(handler.ContentBase, contentServer(c.Content))).
		Methods("GET", "HEAD")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/study", studyHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/admin/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/admin", wsHandler.AdminWS).Methods("GET")

	// Participant routes (rate limited, session token bound to {id})
	start := v1.NewRoute().Subrouter()
	start.Use(c.RateLimiter.Middleware)
	start.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")

	sessions := v1.PathPrefix("/sessions/{id}").Subrouter()
	sessions.Use(c.RateLimiter.Middleware)
	sessions.Use(authMW.RequireParticipant)
	sessions.HandleFunc("", sessionHandler.Get).Methods("GET", "OPTIONS")
	sessions.HandleFunc("", sessionHandler.Cancel).Methods("DELETE", "OPTIONS")
	sessions.HandleFunc("/rating", sessionHandler.Rate).Methods("PUT", "OPTIONS")
	sessions.HandleFunc("/next", sessionHandler.Next).Methods("POST", "OPTIONS")
	sessions.HandleFunc("/prev", sessionHandler.Prev).Methods("POST", "OPTIONS")
	sessions.HandleFunc("/submit", sessionHandler.Submit).Methods("POST", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)
	adminRoutes.HandleFunc("/responses", adminHandler.Responses).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/responses/export", adminHandler.Export).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/responses/{id}", adminHandler.Response).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/stats", adminHandler.Stats).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/participants/count", adminHandler.ParticipantCount).Methods("GET", "OPTIONS")

	return r
}

// contentServer serves survey images. Directory listings are not exposed.
func contentServer(repo content.Repository) http.Handler {
	files := http.FileServer(http.FS(repo.FS()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", originFor(allowedOrigins, r.Header.Get("Origin")))
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

// originFor echoes origin back when it appears in a comma-separated allow list
func originFor(allowed, origin string) string {
	if allowed == "*" {
		return "*"
	}
	for _, o := range strings.Split(allowed, ",") {
		if strings.TrimSpace(o) == origin {
			return origin
		}
	}
	return strings.TrimSpace(strings.Split(allowed, ",")[0])
}
