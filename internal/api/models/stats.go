package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string    `json:"uptime"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	StartTime     time.Time `json:"start_time"`
	GoRoutines    int       `json:"goroutines"`
	MemoryAllocMB float64   `json:"memory_alloc_mb"`
	NumCPU        int       `json:"num_cpu"`
	// System-level figures come from the host, not the Go runtime.
	SystemMemoryUsedPct float64 `json:"system_memory_used_pct,omitempty"`
	SystemMemoryTotalMB float64 `json:"system_memory_total_mb,omitempty"`
	Hostname            string  `json:"hostname,omitempty"`
	Platform            string  `json:"platform,omitempty"`

	Zones   *ZoneStatsResponse `json:"zones,omitempty"`
	Dnssec  bool               `json:"dnssec_enabled"`
	Version string             `json:"version,omitempty"`
}

// ZoneStatsResponse summarizes the datastore contents.
type ZoneStatsResponse struct {
	ZoneCount   int `json:"zone_count"`
	RecordCount int `json:"record_count"`
}
