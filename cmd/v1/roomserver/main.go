package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/opengavel/roomserver/internal/v1/config"
	"github.com/opengavel/roomserver/internal/v1/health"
	"github.com/opengavel/roomserver/internal/v1/httpapi"
	"github.com/opengavel/roomserver/internal/v1/logging"
	"github.com/opengavel/roomserver/internal/v1/middleware"
	"github.com/opengavel/roomserver/internal/v1/registry"
	"github.com/opengavel/roomserver/internal/v1/session"
	"github.com/opengavel/roomserver/internal/v1/tracing"
)

func main() {
	// Load .env file for local development, same multi-path probe as the
	// teacher's cmd/v1/session/main.go.
	envPaths := []string{".env", "../../../.env", "../../.env"}
	var envLoaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			slog.Info("loaded environment from", "path", path)
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		slog.Warn("no .env file found in any expected location, relying on environment variables")
	}

	cfg, err := config.ValidateEnv()
	if err != nil {
		slog.Error("invalid environment configuration", "error", err)
		os.Exit(1)
	}

	if err := logging.Initialize(cfg.GoEnv != "production"); err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	tp, err := tracing.InitTracer(ctx, cfg.OtelServiceName)
	if err != nil {
		slog.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down tracer provider", "error", err)
		}
	}()

	reg := registry.New(cfg.MaxRooms)

	var allowedOrigins []string
	if cfg.AllowedOrigins != "" {
		for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}

	hub := session.NewHub(reg, allowedOrigins, cfg.LandingURL)
	httpHandler := httpapi.NewHandler(reg, "/chair.html", "/room.html")
	healthHandler := health.NewHandler(reg)

	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.OtelServiceName))
	router.Use(middleware.CorrelationID())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.POST("/rooms", httpHandler.CreateRoom)
	router.GET("/rooms/:code", httpHandler.GetRoom)
	router.GET("/chair/:code", httpHandler.RedirectChair)
	router.GET("/room/:code", httpHandler.RedirectRoom)

	router.GET("/metadata/meeting-goals", httpHandler.MeetingGoals)
	router.GET("/metadata/participation-formats", httpHandler.ParticipationFormats)
	router.GET("/metadata/decision-rules", httpHandler.DecisionRules)
	router.GET("/metadata/deliverables", httpHandler.Deliverables)

	router.GET("/healthz", healthHandler.Liveness)
	router.GET("/healthz/ready", healthHandler.Readiness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/ws", hub.ServeWS)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("room coordinator starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to run server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := hub.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down hub", "error", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}
