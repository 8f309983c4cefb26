package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/voyplan/triphub/internal/auth"
	"github.com/voyplan/triphub/internal/cache"
	"github.com/voyplan/triphub/internal/config"
	"github.com/voyplan/triphub/internal/http/handlers"
	"github.com/voyplan/triphub/internal/http/middlewares"
	"github.com/voyplan/triphub/internal/llm"
	"github.com/voyplan/triphub/internal/observability"
	"github.com/voyplan/triphub/internal/places"
	"github.com/voyplan/triphub/internal/repo/postgres"
)

// NewRouter wires the full HTTP surface. Everything is constructed here and
// injected; no package-level singletons.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, placeCache cache.Cache, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	promReg := prometheus.NewRegistry()
	prom := observability.NewProm(promReg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("triphub"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(prom.GinHandleMiddleware())

	// health + metrics
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	// wire up repositories and clients
	usersRepo := postgres.NewUsersRepo(pool, prom)
	tripsRepo := postgres.NewTripsRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	authMw := middlewares.NewAuthMiddleware(jwtManager)

	llmClient := llm.New(cfg.LLMBaseURL, cfg.LLMModel, time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
	placesClient := places.New(cfg.PhotoAPIBaseURL, cfg.PhotoAPIKey, time.Duration(cfg.PhotoTimeoutSeconds)*time.Second, placeCache)

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	tripsHandler := handlers.NewTripsHandler(tripsRepo)
	generateHandler := handlers.NewGenerateHandler(llmClient, prom)
	placeHandler := handlers.NewPlaceHandler(placesClient, prom)

	limiter := middlewares.NewRateLimiter(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowS)*time.Second)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())

	// open endpoints, rate limited by IP
	open := api.Group("")
	open.Use(limiter.RateLimiterMiddleware(middlewares.KeyByIP))
	open.POST("/register", authHandler.Register)
	open.POST("/login", authHandler.Login)
	open.POST("/generate", generateHandler.Generate)
	open.GET("/place", placeHandler.GetPlace)

	// trip operations run only behind a verified session; the limiter keys
	// on the verified user so one account cannot starve an IP it shares
	trips := api.Group("/trips")
	trips.Use(authMw.RequireAuth())
	trips.Use(limiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP))
	trips.POST("", tripsHandler.CreateTrip)
	trips.GET("", tripsHandler.ListTrips)
	trips.DELETE("/:id", tripsHandler.DeleteTrip)

	log.Info("router configured", "env", cfg.Env)

	return r
}
