package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/zonekeeper/internal/api/middleware"
	"github.com/jroosing/zonekeeper/internal/api/models"
	"github.com/jroosing/zonekeeper/internal/database"
)

// dnssecZone resolves the zone and checks DNSSEC is configured, writing
// the error response itself when either fails.
func (h *Handler) dnssecZone(c *gin.Context) (*database.Zone, bool) {
	if h.dnssec == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "DNSSEC is not enabled"})
		return nil, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	zone, err := h.zones.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return zone, true
}

// DnssecStatus godoc
// @Summary DNSSEC status of a zone
// @Description Returns whether the zone is signed, with its keys
// @Tags dnssec
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.DnssecStatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/dnssec [get]
func (h *Handler) DnssecStatus(c *gin.Context) {
	zone, ok := h.dnssecZone(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	secured, err := h.dnssec.IsZoneSecured(ctx, zone.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := models.DnssecStatusResponse{Zone: zone.Name, Secured: secured}

	if secured {
		keys, err := h.dnssec.Keys(ctx, zone.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		for _, k := range keys {
			resp.Keys = append(resp.Keys, models.DnssecKeyResponse{
				ID:        k.ID,
				KeyType:   k.KeyType,
				Active:    k.Active,
				Published: k.Published,
				DNSKey:    k.DNSKey,
				DS:        k.DS,
				Algorithm: k.Algorithm,
				Bits:      k.Bits,
			})
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SecureZone godoc
// @Summary Enable DNSSEC on a zone
// @Tags dnssec
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/dnssec/secure [post]
func (h *Handler) SecureZone(c *gin.Context) {
	zone, ok := h.dnssecZone(c)
	if !ok {
		return
	}
	if err := h.dnssec.SecureZone(c.Request.Context(), zone.Name); err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("zone secured",
		"actor", middleware.Actor(c),
		"client_ip", c.ClientIP(),
		"zone", zone.Name)
	c.JSON(http.StatusOK, models.StatusResponse{Status: "secured"})
}

// UnsecureZone godoc
// @Summary Disable DNSSEC on a zone
// @Tags dnssec
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/dnssec/unsecure [post]
func (h *Handler) UnsecureZone(c *gin.Context) {
	zone, ok := h.dnssecZone(c)
	if !ok {
		return
	}
	if err := h.dnssec.UnsecureZone(c.Request.Context(), zone.Name); err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("zone unsecured",
		"actor", middleware.Actor(c),
		"client_ip", c.ClientIP(),
		"zone", zone.Name)
	c.JSON(http.StatusOK, models.StatusResponse{Status: "unsecured"})
}

// RectifyZone godoc
// @Summary Rectify a zone
// @Description Re-establishes DNSSEC ordering and NSEC chains for the zone
// @Tags dnssec
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/dnssec/rectify [post]
func (h *Handler) RectifyZone(c *gin.Context) {
	zone, ok := h.dnssecZone(c)
	if !ok {
		return
	}
	if err := h.dnssec.RectifyZone(c.Request.Context(), zone.Name); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "rectified"})
}
