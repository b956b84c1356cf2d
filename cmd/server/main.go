package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/moodtrail/moodtrail-backend/internal/config"
	"github.com/moodtrail/moodtrail-backend/internal/database"
	"github.com/moodtrail/moodtrail-backend/internal/handlers"
	"github.com/moodtrail/moodtrail-backend/internal/middleware"
	"github.com/moodtrail/moodtrail-backend/internal/routes"
	"github.com/moodtrail/moodtrail-backend/internal/services"
	"github.com/moodtrail/moodtrail-backend/internal/storage"
)

func main() {
	// Load env
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	logger := newLogger(cfg)
	defer logger.Sync()

	// Connect to PostgreSQL
	logger.Info("connecting to PostgreSQL")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	// Apply schema migrations
	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	logger.Info("connecting to Redis")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Wire services; every dependency is passed explicitly
	store := storage.NewPostgres(db)
	sessions := services.NewRedisSessions(redisClient)
	auth := services.NewAuth(store, sessions)
	journal := services.NewJournal(store)
	handler := handlers.New(auth, journal, logger, cfg.IsProduction())

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestLogger(logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, handler, middleware.RequireAuth(auth, logger))

	logger.Info("moodtrail backend running", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
