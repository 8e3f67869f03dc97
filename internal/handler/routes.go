package handler

import (
	"github.com/credara/statements-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, statementHandler *StatementHandler, documentHandler *DocumentHandler) {
	// Swagger documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API version 1
	api := e.Group("/api/v1")

	// Statement routes (protected)
	statements := api.Group("/statements")
	statements.Use(authMiddleware.Authenticate())
	statements.POST("", statementHandler.ProcessStatement)

	// Credit search routes (protected)
	credits := api.Group("/credits")
	credits.Use(authMiddleware.Authenticate())
	credits.GET("", statementHandler.SearchCredits)

	// Document routes (protected, rate limited: downloads pull large objects
	// out of storage)
	documents := api.Group("/documents")
	documents.Use(authMiddleware.Authenticate())
	documents.Use(middleware.RateLimitMiddleware(rateLimiter))
	documents.GET("/:id", documentHandler.GetDocument)
}
