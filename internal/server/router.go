package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/insurely/brochure-backend/internal/handlers"
)

type RouterConfig struct {
	ProductHandler     *handlers.ProductHandler
	VariantHandler     *handlers.VariantHandler
	EligibilityHandler *handlers.EligibilityHandler
	PremiumHandler     *handlers.PremiumHandler
	SummaryHandler     *handlers.SummaryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	brochure := router.Group("/brochure")
	{
		// Products
		brochure.POST("/product", cfg.ProductHandler.CreateProduct)
		brochure.GET("/products", cfg.ProductHandler.GetAllProducts)
		brochure.GET("/product", cfg.ProductHandler.GetProductByID)
		brochure.PUT("/product", cfg.ProductHandler.UpdateProduct)
		brochure.DELETE("/product", cfg.ProductHandler.DeleteProduct)
		brochure.GET("/products/search", cfg.ProductHandler.SearchProducts)
		brochure.GET("/products/by-criteria", cfg.ProductHandler.GetProductsByEligibilityCriteria)
		brochure.GET("/product/resolved", cfg.ProductHandler.GetProductWithResolvedEligibility)
		brochure.POST("/product/complete", cfg.ProductHandler.GetCompleteProduct)
		brochure.POST("/complete", cfg.ProductHandler.CreateCompleteBrochure)
		brochure.GET("/complete", cfg.ProductHandler.GetCompleteBrochureData)
		brochure.POST("/complete/single", cfg.ProductHandler.GetCompleteSingleBrochure)

		// Plan variants
		brochure.POST("/variant", cfg.VariantHandler.CreateVariant)
		brochure.GET("/variants", cfg.VariantHandler.GetAllVariants)
		brochure.GET("/variant", cfg.VariantHandler.GetVariantByID)
		brochure.GET("/variants/product", cfg.VariantHandler.GetVariantsByProduct)
		brochure.PUT("/variant", cfg.VariantHandler.UpdateVariant)
		brochure.DELETE("/variant", cfg.VariantHandler.DeleteVariant)
		brochure.POST("/variants/search", cfg.VariantHandler.SearchVariantsByProduct)

		// Eligibility masters
		brochure.POST("/masters", cfg.EligibilityHandler.CreateEligibilityMaster)
		brochure.GET("/masters", cfg.EligibilityHandler.GetAllEligibilityMasters)
		brochure.GET("/masters/id", cfg.EligibilityHandler.GetEligibilityMasterByID)
		brochure.PUT("/masters", cfg.EligibilityHandler.UpdateEligibilityMaster)
		brochure.DELETE("/masters", cfg.EligibilityHandler.DeleteEligibilityMaster)
		brochure.GET("/masters/relations", cfg.EligibilityHandler.GetEligibilityRelations)

		// Premium rules
		brochure.POST("/premium-rule", cfg.PremiumHandler.CreatePremiumRule)
		brochure.GET("/premium-rules", cfg.PremiumHandler.GetAllPremiumRules)
		brochure.GET("/premium-rule/:id", cfg.PremiumHandler.GetPremiumRuleByID)
		brochure.GET("/premium-rules/product/:productId", cfg.PremiumHandler.GetPremiumRulesByProduct)
		brochure.GET("/premium-rules/variant/:variantId", cfg.PremiumHandler.GetPremiumRulesByVariant)
		brochure.PUT("/premium-rule", cfg.PremiumHandler.UpdatePremiumRule)
		brochure.DELETE("/premium-rule", cfg.PremiumHandler.DeletePremiumRule)

		// AI brochure summaries
		brochure.POST("/aisummary", cfg.SummaryHandler.GenerateSummary)
		brochure.POST("/save/aisummary", cfg.SummaryHandler.StoreSummary)
		brochure.GET("/aisummary", cfg.SummaryHandler.GetSummaryByProduct)
		brochure.GET("/all/aisummary", cfg.SummaryHandler.GetAllSummaries)
		brochure.DELETE("/aisummary", cfg.SummaryHandler.DeleteSummaryByProduct)
		brochure.GET("/download/aisummary", cfg.SummaryHandler.DownloadSummaryPDF)
		brochure.GET("/card/aisummary", cfg.SummaryHandler.DownloadSummaryCard)
	}

	return router
}
