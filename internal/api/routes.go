package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jroosing/zonekeeper/internal/api/handlers"
	"github.com/jroosing/zonekeeper/internal/api/middleware"
	"github.com/jroosing/zonekeeper/internal/config"

	_ "github.com/jroosing/zonekeeper/internal/api/docs" // swagger docs
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health stays reachable without the API key so load balancers can
	// probe it.
	r.GET("/api/v1/health", h.Health)

	api := r.Group("/api/v1")
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/stats", h.Stats)

	api.GET("/zones", h.ListZones)
	api.POST("/zones", h.CreateZone)
	api.GET("/zones/:id", h.GetZone)
	api.DELETE("/zones/:id", h.DeleteZone)
	api.GET("/zones/:id/export", h.ExportZone)
	api.GET("/zones/:id/comment", h.GetZoneComment)
	api.PUT("/zones/:id/comment", h.SetZoneComment)

	api.GET("/zones/:id/records", h.ListRecords)
	api.POST("/zones/:id/records", h.CreateRecord)
	api.POST("/zones/:id/records/bulk", h.BulkCreateRecords)
	api.PUT("/zones/:id/records/:rid", h.UpdateRecord)
	api.DELETE("/zones/:id/records/:rid", h.DeleteRecord)

	api.POST("/batch/ptr/ipv4", h.BatchPTRIPv4)
	api.POST("/batch/ptr/ipv6", h.BatchPTRIPv6)

	api.GET("/zones/:id/dnssec", h.DnssecStatus)
	api.POST("/zones/:id/dnssec/secure", h.SecureZone)
	api.POST("/zones/:id/dnssec/unsecure", h.UnsecureZone)
	api.POST("/zones/:id/dnssec/rectify", h.RectifyZone)
}
