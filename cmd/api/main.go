package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/dritonsh/cimerat/docs"
	"github.com/dritonsh/cimerat/internal/activity"
	"github.com/dritonsh/cimerat/internal/balance"
	"github.com/dritonsh/cimerat/internal/config"
	"github.com/dritonsh/cimerat/internal/database"
	"github.com/dritonsh/cimerat/internal/expense"
	"github.com/dritonsh/cimerat/internal/flat"
	"github.com/dritonsh/cimerat/internal/storage"
	"github.com/dritonsh/cimerat/pkg/logging"
	"github.com/dritonsh/cimerat/pkg/metrics"
	mw "github.com/dritonsh/cimerat/pkg/middleware"
)

// @title        Cimerat API
// @version      1.0
// @description  Shared-expense settlement backend for flat-shares: even splits, claim/confirm share lifecycle, per-member balances and an activity feed.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewPostgresStore(db)
	if err != nil {
		slog.Error("failed to initialize snapshot store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	slog.Info("connected to database")

	// Activity feed
	activityService := activity.NewService(store)
	activityHandler := activity.NewHandler(activityService)

	// Flat feature
	flatService := flat.NewService(store)
	flatHandler := flat.NewHandler(flatService)

	// Settlement ledger (with activity sink injected)
	expenseService := expense.NewService(store, flatService, activityService)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance queries
	balanceService := balance.NewService(expenseService)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Identity)

		r.Mount("/flats", flatHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())
		r.Mount("/activity", activityHandler.Routes())
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
