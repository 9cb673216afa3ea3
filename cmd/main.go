package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/insurely/brochure-backend/internal/db"
	"github.com/insurely/brochure-backend/internal/handlers"
	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/openai"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/server"
	"github.com/insurely/brochure-backend/internal/services"
	"github.com/insurely/brochure-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	productRepo := repos.NewProductRepo(thePG, log)
	variantRepo := repos.NewPlanVariantRepo(thePG, log)
	eligibilityRepo := repos.NewEligibilityMasterRepo(thePG, log)
	linkRepo := repos.NewEligibilityLinkRepo(thePG, log)
	premiumRepo := repos.NewMinPremiumRuleRepo(thePG, log)
	summaryRepo := repos.NewBrochureSummaryRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	openaiClient, err := openai.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	productService := services.NewProductService(thePG, log, productRepo, variantRepo, eligibilityRepo, linkRepo, premiumRepo, summaryRepo)
	variantService := services.NewVariantService(thePG, log, variantRepo, linkRepo, premiumRepo)
	eligibilityService := services.NewEligibilityService(thePG, log, eligibilityRepo, linkRepo)
	premiumService := services.NewPremiumService(thePG, log, premiumRepo)
	summaryService := services.NewSummaryService(thePG, log, productRepo, variantRepo, summaryRepo, openaiClient)
	cardService, err := services.NewCardService(thePG, log, summaryRepo)
	if err != nil {
		log.Error("Could not init CardService", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	productHandler := handlers.NewProductHandler(log, productService)
	variantHandler := handlers.NewVariantHandler(log, variantService)
	eligibilityHandler := handlers.NewEligibilityHandler(log, eligibilityService)
	premiumHandler := handlers.NewPremiumHandler(log, premiumService)
	summaryHandler := handlers.NewSummaryHandler(log, summaryService, cardService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ProductHandler:     productHandler,
		VariantHandler:     variantHandler,
		EligibilityHandler: eligibilityHandler,
		PremiumHandler:     premiumHandler,
		SummaryHandler:     summaryHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
