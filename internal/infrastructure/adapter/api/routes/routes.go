package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/api/handler"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	paymentHandler *handler.PaymentHandler,
	healthHandler *handler.HealthHandler,
) {
	router.GET("/health", healthHandler.Check)

	paymentRoutes := router.Group("/payments")
	{
		// POST /payments/initiate
		paymentRoutes.POST("/initiate", paymentHandler.InitiateContribution)

		// POST /payments/webhook (provider callbacks)
		paymentRoutes.POST("/webhook", paymentHandler.HandleWebhook)

		// GET /payments/webhook (endpoint verification challenge)
		paymentRoutes.GET("/webhook", paymentHandler.VerifyWebhookEndpoint)

		// GET /payments/transactions/:reference
		paymentRoutes.GET("/transactions/:reference", paymentHandler.GetTransaction)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
