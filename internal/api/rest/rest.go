package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/propchain/propchain-api/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Listing endpoints (public read access)
		v1.GET("/properties", handler.ListProperties)
		v1.GET("/properties/:id", handler.GetProperty)

		// Side-by-side comparison (public read access)
		v1.POST("/properties/compare", handler.CompareProperties)

		// Listing writes (requires authentication, owner checks in the executor)
		v1.POST("/properties", middleware.Auth(authCfg), handler.CreateProperty)
		v1.PUT("/properties/:id", middleware.Auth(authCfg), handler.UpdateProperty)
		v1.DELETE("/properties/:id", middleware.Auth(authCfg), handler.DeleteProperty)

		// Inquiries: anyone may submit, only the listing owner may read or triage
		v1.POST("/properties/:id/inquiries", handler.CreateInquiry)
		v1.GET("/properties/:id/inquiries", middleware.Auth(authCfg), handler.ListInquiries)
		v1.PATCH("/inquiries/:id/status", middleware.Auth(authCfg), handler.UpdateInquiryStatus)

		// Favorites (requires authentication)
		v1.GET("/favorites", middleware.Auth(authCfg), handler.ListFavorites)
		v1.POST("/favorites/:property_id", middleware.Auth(authCfg), handler.AddFavorite)
		v1.DELETE("/favorites/:property_id", middleware.Auth(authCfg), handler.RemoveFavorite)

		// Saved searches (requires authentication)
		v1.GET("/saved-searches", middleware.Auth(authCfg), handler.ListSavedSearches)
		v1.POST("/saved-searches", middleware.Auth(authCfg), handler.CreateSavedSearch)
		v1.DELETE("/saved-searches/:id", middleware.Auth(authCfg), handler.DeleteSavedSearch)

		// Messaging (requires authentication)
		v1.GET("/messages/threads", middleware.Auth(authCfg), handler.ListThreads)
		v1.GET("/messages/threads/:property_id/:counterpart_id", middleware.Auth(authCfg), handler.GetThreadMessages)
		v1.POST("/messages", middleware.Auth(authCfg), handler.SendMessage)

		// Profile (requires authentication)
		v1.GET("/users/me", middleware.Auth(authCfg), handler.GetProfile)
		v1.PUT("/users/me", middleware.Auth(authCfg), handler.UpdateProfile)

		// Exchange rates (public read access)
		v1.GET("/rates", handler.GetRates)
	}
}
