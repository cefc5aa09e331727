package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finadvisor/advisor-service/internal/config"
	"github.com/finadvisor/advisor-service/internal/handler"
	"github.com/finadvisor/advisor-service/internal/middleware"
	"github.com/finadvisor/advisor-service/internal/mlmodel"
	"github.com/finadvisor/advisor-service/internal/repository"
	"github.com/finadvisor/advisor-service/internal/service"
	"github.com/finadvisor/advisor-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Load prediction artifacts once; refuse to start without them
	registry, err := mlmodel.LoadRegistry(cfg.ModelPath, cfg.OccupationCodecPath, cfg.CityTierCodecPath, logger)
	if err != nil {
		logger.Fatalf("Failed to load prediction artifacts: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, registry, sender, logger, cfg)
	h := handler.NewHandler(svc)

	// Schedule daily budget summaries
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SummarySchedule, svc.SendDailySummaries); err != nil {
		logger.Fatalf("Failed to schedule summaries: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "model": "loaded"})
	}).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/analyze", h.Analyze).Methods("POST")
	authRouter.HandleFunc("/analyses", h.History).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
