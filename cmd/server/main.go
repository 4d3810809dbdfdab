package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/sahmapp/sahm/internal/db"
	"github.com/sahmapp/sahm/internal/handlers"
	"github.com/sahmapp/sahm/internal/logger"
	"github.com/sahmapp/sahm/internal/repositories"
	"github.com/sahmapp/sahm/internal/services"
)

// @title Sahm API
// @description Investor bookkeeping and profit distribution service
// @version 1.0
// @BasePath /api
func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Database connection
	config := db.NewConfig()
	database, err := db.Connect(config)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		log.Fatal("Database health check failed", zap.Error(err))
	}
	log.Info("Database connection established")

	// Repositories
	investorRepo := repositories.NewInvestorRepository(database)
	transactionRepo := repositories.NewTransactionRepository(database)
	yearRepo := repositories.NewFinancialYearRepository(database)
	distributionRepo := repositories.NewDistributionRepository(database)
	settingsRepo := repositories.NewSettingsRepository(database)

	// Services
	converter := services.NewConverterService(settingsRepo, log)
	converter.Load(context.Background())
	investorService := services.NewInvestorService(investorRepo, transactionRepo, distributionRepo, log)
	transactionService := services.NewTransactionService(transactionRepo, investorRepo, distributionRepo, converter, log)
	yearService := services.NewFinancialYearService(yearRepo, log)
	distributionService := services.NewDistributionService(yearRepo, investorRepo, distributionRepo, transactionRepo, log)

	// Handlers
	settingsHandler := handlers.NewSettingsHandler(converter)
	investorHandler := handlers.NewInvestorHandler(investorService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	yearHandler := handlers.NewFinancialYearHandler(yearService, distributionService)
	reportingHandler := handlers.NewReportingHandler(investorService, yearService, converter)

	r := mux.NewRouter()

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "sahm-backend",
		})
	})

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/settings", settingsHandler.HandleSettings)

	api.HandleFunc("/investors", investorHandler.HandleInvestors)
	api.HandleFunc("/investors/{id}", investorHandler.HandleInvestor)

	api.HandleFunc("/transactions", transactionHandler.HandleTransactions)

	api.HandleFunc("/financial-years", yearHandler.HandleFinancialYears)
	api.HandleFunc("/financial-years/{id}", yearHandler.HandleFinancialYear)
	api.HandleFunc("/financial-years/{id}/distributions", yearHandler.HandleDistributions)
	api.HandleFunc("/financial-years/{id}/calculate-distributions", yearHandler.HandleCalculate)
	api.HandleFunc("/financial-years/{id}/approve", yearHandler.HandleApprove)

	api.HandleFunc("/reports/summary", reportingHandler.HandleSummary)

	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("Server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, corsHandler(r)); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
