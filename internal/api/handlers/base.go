// Package handlers implements the REST API endpoint handlers for
// zonekeeper.
//
// REST API Endpoints:
//
// System:
//   - GET /api/v1/health - Health check status (includes datastore ping)
//   - GET /api/v1/stats - Runtime and datastore statistics
//
// Zones:
//   - GET /api/v1/zones - List zones with record counts
//   - POST /api/v1/zones - Create a MASTER/NATIVE/SLAVE zone
//   - GET /api/v1/zones/:id - Zone details
//   - DELETE /api/v1/zones/:id - Delete a zone with its records and comments
//   - GET /api/v1/zones/:id/export - BIND-format zone file text
//   - GET/PUT /api/v1/zones/:id/comment - Zone-level comment
//
// Records:
//   - GET /api/v1/zones/:id/records - List a zone's records
//   - POST /api/v1/zones/:id/records - Create a record (?reverse=1 pairs a PTR)
//   - POST /api/v1/zones/:id/records/bulk - Best-effort bulk create
//   - PUT /api/v1/zones/:id/records/:rid - Edit a record
//   - DELETE /api/v1/zones/:id/records/:rid - Delete (?delete_ptr=1 / ?delete_forward=1)
//
// Batch PTR generation:
//   - POST /api/v1/batch/ptr/ipv4 - Generate A+PTR pairs for a /24
//   - POST /api/v1/batch/ptr/ipv6 - Generate AAAA+PTR pairs for a /64 slice
//
// DNSSEC (proxied to the PowerDNS API):
//   - GET /api/v1/zones/:id/dnssec - Signing status and keys
//   - POST /api/v1/zones/:id/dnssec/secure|unsecure|rectify
//
// Authentication:
//
// All endpoints except /health require the X-API-Key header when an API
// key is configured. Mutating endpoints read the operator identity from
// the X-Actor header for the audit log.
//
// @title zonekeeper Management API
// @version 1.0
// @description REST API for managing PowerDNS zones, records, and reverse-DNS consistency.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/zonekeeper/internal/api/models"
	"github.com/jroosing/zonekeeper/internal/config"
	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/pdns"
	"github.com/jroosing/zonekeeper/internal/records"
	"github.com/jroosing/zonekeeper/internal/reverse"
	"github.com/jroosing/zonekeeper/internal/validation"
	"github.com/jroosing/zonekeeper/internal/zones"
)

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB
	logger    *slog.Logger
	startTime time.Time

	zones   *zones.Service
	records *records.Service
	reverse *reverse.Creator
	dnssec  *pdns.Client
}

// New creates a Handler. dnssec may be nil when DNSSEC is disabled.
func New(cfg *config.Config, db *database.DB, zoneSvc *zones.Service, recordSvc *records.Service, reverseCreator *reverse.Creator, dnssec *pdns.Client, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
		zones:     zoneSvc,
		records:   recordSvc,
		reverse:   reverseCreator,
		dnssec:    dnssec,
	}
}

// pathID parses a numeric path parameter, writing the 400 response itself
// on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var verr *validation.Error
	var conflict *records.ConflictError
	var notFound *records.NotFoundError
	var external *records.ExternalServiceError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: verr.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: conflict.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: notFound.Error()})
	case errors.As(err, &external):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: external.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}

func recordResponse(r *database.Record) *models.RecordResponse {
	if r == nil {
		return nil
	}
	return &models.RecordResponse{
		ID:       r.ID,
		ZoneID:   r.DomainID,
		Name:     r.Name,
		Type:     r.Type,
		Content:  r.Content,
		TTL:      r.TTL,
		Prio:     r.Prio,
		Disabled: r.Disabled,
	}
}
