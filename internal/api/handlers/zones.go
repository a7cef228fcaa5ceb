package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/zonekeeper/internal/api/middleware"
	"github.com/jroosing/zonekeeper/internal/api/models"
	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/zones"
)

func zoneResponse(z *database.Zone) models.ZoneResponse {
	return models.ZoneResponse{
		ID:      z.ID,
		Name:    z.Name,
		Type:    z.Type,
		Master:  z.Master,
		Account: z.Account,
	}
}

// ListZones godoc
// @Summary List all zones
// @Description Returns all zones with their record counts
// @Tags zones
// @Produce json
// @Success 200 {object} models.ZoneListResponse
// @Security ApiKeyAuth
// @Router /zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	summaries, err := h.zones.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]models.ZoneResponse, 0, len(summaries))
	for _, z := range summaries {
		resp := zoneResponse(&z.Zone)
		resp.RecordCount = z.RecordCount
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, models.ZoneListResponse{Zones: out, Count: len(out)})
}

// CreateZone godoc
// @Summary Create a new zone
// @Description Creates a MASTER/NATIVE zone with generated SOA and NS records, or a SLAVE zone with a master address
// @Tags zones
// @Accept json
// @Produce json
// @Param zone body models.ZoneCreateRequest true "Zone to create"
// @Success 201 {object} models.ZoneResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones [post]
func (h *Handler) CreateZone(c *gin.Context) {
	var req models.ZoneCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	zone, err := h.zones.Create(c.Request.Context(), zones.CreateInput{
		Name:     req.Name,
		Kind:     req.Type,
		Master:   req.Master,
		Account:  req.Account,
		Actor:    middleware.Actor(c),
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, zoneResponse(zone))
}

// GetZone godoc
// @Summary Get zone details
// @Tags zones
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.ZoneResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id} [get]
func (h *Handler) GetZone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	zone, err := h.zones.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, zoneResponse(zone))
}

// DeleteZone godoc
// @Summary Delete a zone
// @Description Removes the zone and cascades to its records and comments
// @Tags zones
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id} [delete]
func (h *Handler) DeleteZone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.zones.Delete(c.Request.Context(), id, middleware.Actor(c), c.ClientIP()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "deleted"})
}

// ExportZone godoc
// @Summary Export a zone as a BIND zone file
// @Tags zones
// @Produce plain
// @Param id path int true "Zone ID"
// @Success 200 {string} string "zone file text"
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/export [get]
func (h *Handler) ExportZone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	text, err := h.zones.Export(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

// GetZoneComment godoc
// @Summary Get the zone-level comment
// @Tags zones
// @Produce json
// @Param id path int true "Zone ID"
// @Success 200 {object} models.ZoneCommentResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/comment [get]
func (h *Handler) GetZoneComment(c *gin.Context) {
	if !h.cfg.Interface.ShowZoneComments {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "zone comments are disabled"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	comment, err := h.zones.Comment(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ZoneCommentResponse{Comment: comment})
}

// SetZoneComment godoc
// @Summary Set the zone-level comment
// @Tags zones
// @Accept json
// @Produce json
// @Param id path int true "Zone ID"
// @Param comment body models.ZoneCommentRequest true "Comment text"
// @Success 200 {object} models.ZoneCommentResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /zones/{id}/comment [put]
func (h *Handler) SetZoneComment(c *gin.Context) {
	if !h.cfg.Interface.ShowZoneComments {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "zone comments are disabled"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.ZoneCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.zones.SetComment(c.Request.Context(), id, req.Comment, middleware.Actor(c), c.ClientIP()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ZoneCommentResponse{Comment: req.Comment})
}
