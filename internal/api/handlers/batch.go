package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/zonekeeper/internal/api/middleware"
	"github.com/jroosing/zonekeeper/internal/api/models"
	"github.com/jroosing/zonekeeper/internal/reverse"
)

func (h *Handler) networkInput(c *gin.Context, req models.NetworkRequest) reverse.NetworkInput {
	return reverse.NetworkInput{
		NetworkPrefix: req.NetworkPrefix,
		HostPrefix:    req.HostPrefix,
		Domain:        req.Domain,
		ZoneID:        req.ZoneID,
		Count:         req.Count,
		TTL:           req.TTL,
		Comment:       h.commentIfEnabled(req.Comment),
		Actor:         middleware.Actor(c),
		ClientIP:      c.ClientIP(),
	}
}

// BatchPTRIPv4 godoc
// @Summary Generate A+PTR pairs for an IPv4 /24
// @Description Enumerates host octets 1-254 of the prefix, creating a forward A and a PTR record for each. Existing pairs count as skipped; the run is best-effort, never atomic.
// @Tags batch
// @Accept json
// @Produce json
// @Param network body models.NetworkRequest true "Network to generate"
// @Success 200 {object} reverse.BatchResult
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /batch/ptr/ipv4 [post]
func (h *Handler) BatchPTRIPv4(c *gin.Context) {
	var req models.NetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := h.reverse.CreateIPv4Network(c.Request.Context(), h.networkInput(c, req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// BatchPTRIPv6 godoc
// @Summary Generate AAAA+PTR pairs for an IPv6 /64 slice
// @Description Enumerates the first count host addresses (default 256, max 1000) of the /64, creating an AAAA and a PTR record for each.
// @Tags batch
// @Accept json
// @Produce json
// @Param network body models.NetworkRequest true "Network to generate"
// @Success 200 {object} reverse.BatchResult
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /batch/ptr/ipv6 [post]
func (h *Handler) BatchPTRIPv6(c *gin.Context) {
	var req models.NetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := h.reverse.CreateIPv6Network(c.Request.Context(), h.networkInput(c, req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
