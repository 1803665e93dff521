package main

import (
	"net/http"
	"os"

	"riskboard/internal/config"
	"riskboard/internal/database"
	"riskboard/internal/handler"
	"riskboard/internal/scoring"
	"riskboard/internal/service"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	for _, warning := range config.Warnings {
		logger.Warn(warning)
	}

	// Initialize database
	db, err := database.InitDB()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Initialize services
	client := scoring.NewClient(config.ScoringURL, config.ScoringTimeout)
	dashboardService := service.NewDashboardService(db, client, config.ScoringMode, logger)
	runService := service.NewRunService(db)

	// Initialize handlers
	router := handler.NewRouter(
		handler.NewUploadHandler(dashboardService, logger),
		handler.NewEventsHandler(dashboardService, logger),
		handler.NewRunHandler(runService),
	)

	cors := handlers.CORS(
		handlers.AllowedOrigins(config.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST"}),
	)

	logger.Info("Server running",
		zap.String("addr", config.ListenAddr),
		zap.String("scoring_url", config.ScoringURL),
		zap.String("mode", dashboardService.Mode()))
	if err := http.ListenAndServe(config.ListenAddr, handlers.CombinedLoggingHandler(os.Stdout, cors(router))); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
