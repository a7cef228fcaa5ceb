package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/jroosing/zonekeeper/internal/api/models"
)

// Health godoc
// @Summary Health check
// @Description Returns server health including a datastore ping
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if err := h.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "datastore unavailable: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime statistics, host memory, and datastore counts
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)
	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
		Dnssec:        h.cfg.DNSSEC.Enabled,
	}

	// Host figures are best-effort; a failure leaves the fields empty.
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.SystemMemoryUsedPct = vm.UsedPercent
		resp.SystemMemoryTotalMB = float64(vm.Total) / 1024 / 1024
	}
	if info, err := host.Info(); err == nil {
		resp.Hostname = info.Hostname
		resp.Platform = info.Platform
	}

	if zones, err := h.db.ListZones(c.Request.Context()); err == nil {
		stats := &models.ZoneStatsResponse{ZoneCount: len(zones)}
		for _, z := range zones {
			stats.RecordCount += z.RecordCount
		}
		resp.Zones = stats
	}

	c.JSON(http.StatusOK, resp)
}
