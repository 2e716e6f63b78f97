package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "engagesurvey/docs"
	"engagesurvey/internal/app"
	"engagesurvey/internal/config"
	"engagesurvey/internal/transport/rest"
	"engagesurvey/internal/transport/rest/middleware"
	"engagesurvey/internal/transport/ws"
)

// @title						Engagement Survey API
// @version					1.0
// @description				Classroom engagement rating survey
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to start:", err)
	}
	defer a.Close(context.Background())

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()
	log.Println("WebSocket hub started")

	// Inject broadcaster (wsHub implements service.Broadcaster)
	a.SessionService.SetBroadcaster(wsHub)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	stopCleanup := make(chan struct{})
	go limiter.RunCleanup(time.Hour, stopCleanup)
	defer close(stopCleanup)

	container := &rest.Container{
		Config:          cfg,
		Study:           a.Study,
		Content:         a.Content,
		AuthService:     a.AuthService,
		SessionService:  a.SessionService,
		ResponseService: a.ResponseService,
		ReportService:   a.ReportService,
		RateLimiter:     limiter,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Serving content from %s", cfg.ContentRoot)
		log.Println("Endpoints:")
		log.Println("  GET  /v1/study")
		log.Println("  POST /v1/sessions")
		log.Println("  GET/DELETE /v1/sessions/{id}")
		log.Println("  PUT  /v1/sessions/{id}/rating")
		log.Println("  POST /v1/sessions/{id}/next|prev|submit")
		log.Println("  POST /v1/admin/login")
		log.Println("  GET  /v1/admin/responses[/export]")
		log.Println("  GET  /v1/admin/stats")
		log.Println("  WS   /v1/ws/admin")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
