package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/dwellio/dwellio-api/internal/http/handlers"
	"github.com/dwellio/dwellio-api/internal/http/response"
	"github.com/dwellio/dwellio-api/internal/mailer"
	"github.com/dwellio/dwellio-api/internal/repository"
	"github.com/dwellio/dwellio-api/internal/service"
	"github.com/dwellio/dwellio-api/pkg/cache"
	"github.com/dwellio/dwellio-api/pkg/config"
	"github.com/dwellio/dwellio-api/pkg/database"
	"github.com/dwellio/dwellio-api/pkg/events"
	"github.com/dwellio/dwellio-api/pkg/logger"
	mw "github.com/dwellio/dwellio-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	response.SetProduction(cfg.IsProduction())

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database.URL, cfg.Database.MinConns, cfg.Database.MaxConns, cfg.Database.MaxLifetime)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store, err := cache.NewRedis(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var bus events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		bus = natsBus
	}
	defer bus.Close()

	mailSvc := selectMailer(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	recommendationRepo := repository.NewRecommendationRepository(pool)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	propertySvc := service.NewPropertyService(propertyRepo, store, bus)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, propertyRepo, store, bus)
	recommendationSvc := service.NewRecommendationService(recommendationRepo, propertyRepo, userRepo, store, bus, mailSvc)

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc, cfg.Auth.JWTSecret)
	propertyHandler := handlers.NewPropertyHandler(propertySvc, authHandler.RequireAuth, mw.CacheResponse(store, cache.ListTTL))
	favoriteHandler := handlers.NewFavoriteHandler(favoriteSvc, authHandler.RequireAuth)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationSvc, authHandler.RequireAuth)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Cache"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/properties", propertyHandler.Routes())
		r.Mount("/favorites", favoriteHandler.Routes())
		r.Mount("/recommendations", recommendationHandler.Routes())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}

func selectMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		return mailer.NewMailerSend(cfg.Email.MailerSendKey, "Dwellio", cfg.Email.SMTPFrom)
	}
	return mailer.NewSMTPMailer(
		cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
		cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
	)
}
