package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"foody.backend/internal/interfaces/http/handlers"
	"foody.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	catalogHandler  *handlers.CatalogHandler
	offerHandler    *handlers.OfferHandler
	merchantHandler *handlers.MerchantHandler
	authHandler     *handlers.AuthHandler
	merchantAuth    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Public routes
		v1.GET("/offers", d.catalogHandler.ListOffers)
		v1.POST("/merchant/register", d.authHandler.Register)
		v1.POST("/auth/login", d.authHandler.Login)

		// Merchant routes (capability key or bearer token)
		merchant := v1.Group("/merchant")
		merchant.Use(d.merchantAuth)
		{
			merchant.GET("/profile", d.merchantHandler.GetProfile)
			merchant.PATCH("/profile", d.merchantHandler.UpdateProfile)

			merchant.GET("/offers", d.offerHandler.ListOffers)
			merchant.POST("/offers", middleware.IdempotencyMiddleware(), d.offerHandler.CreateOffer)
			merchant.GET("/offers/:id", d.offerHandler.GetOffer)
			merchant.PATCH("/offers/:id", d.offerHandler.PatchOffer)
			merchant.DELETE("/offers/:id", d.offerHandler.ArchiveOffer)
			merchant.POST("/offers/:id/restore", d.offerHandler.RestoreOffer)

			merchant.GET("/export.csv", d.offerHandler.ExportOffers)
		}
	}

	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))
}

func applyCORSMiddleware(r *gin.Engine, origins []string) {
	allowAll := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Foody-Key, Idempotency-Key, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, db *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		dbStatus := "ok"
		if db == nil || db.Ping() != nil {
			status = "degraded"
			dbStatus = "down"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   status,
			"database": dbStatus,
		})
	})
}
