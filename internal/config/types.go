package config

// Config is the root configuration for zonekeeper.
type Config struct {
	API       APIConfig       `json:"api"`
	Database  DatabaseConfig  `json:"database"`
	DNS       DNSConfig       `json:"dns"`
	Records   RecordsConfig   `json:"records"`
	Interface InterfaceConfig `json:"interface"`
	DNSSEC    DNSSECConfig    `json:"dnssec"`
	Logging   LoggingConfig   `json:"logging"`
}

// APIConfig contains settings for the management REST API.
type APIConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	// APIKey protects all endpoints except /health when set.
	APIKey string `json:"api_key,omitempty"`
}

// DatabaseConfig locates the PowerDNS SQL backend.
type DatabaseConfig struct {
	// Path is the SQLite database file holding the domains/records/comments tables.
	Path string `json:"path"`
}

// DNSConfig carries the zone defaults used when creating zones and records.
type DNSConfig struct {
	// NS1/NS2 are the authoritative nameservers written into new zones.
	NS1 string `json:"ns1"`
	NS2 string `json:"ns2,omitempty"`
	// Hostmaster is the SOA contact (hostmaster.example.com form).
	Hostmaster string `json:"hostmaster"`
	// TTL is the default record TTL when none is given.
	TTL int `json:"ttl"`
	// SOA timer defaults for newly created zones.
	SOARefresh int `json:"soa_refresh"`
	SOARetry   int `json:"soa_retry"`
	SOAExpire  int `json:"soa_expire"`
	SOAMinimum int `json:"soa_minimum"`
}

// Serial conflict policies for concurrent zone edits.
const (
	ConflictLastWriterWins = "last_writer_wins"
	ConflictOnlyLatest     = "only_latest_version"
)

// RecordsConfig controls record mutation behavior.
type RecordsConfig struct {
	// ConflictPolicy decides what happens when an edit carries a stale
	// SOA serial snapshot: "last_writer_wins" (default) proceeds,
	// "only_latest_version" rejects the edit.
	ConflictPolicy string `json:"conflict_policy"`
}

// InterfaceConfig gates optional record-management features.
type InterfaceConfig struct {
	// AddReverseRecord allows paired PTR creation for A/AAAA records.
	AddReverseRecord bool `json:"add_reverse_record"`
	// ShowRecordComments enables the per-RRset comment feature.
	ShowRecordComments bool `json:"show_record_comments"`
	// ShowZoneComments enables the zone-level comment feature.
	ShowZoneComments bool `json:"show_zone_comments"`
}

// DNSSECConfig configures the PowerDNS HTTP API used for DNSSEC operations.
type DNSSECConfig struct {
	Enabled bool `json:"enabled"`
	// APIURL is the PowerDNS API base, e.g. "http://127.0.0.1:8081".
	APIURL string `json:"api_url,omitempty"`
	APIKey string `json:"api_key,omitempty"`
	// ServerID is the PowerDNS server instance, normally "localhost".
	ServerID string `json:"server_id,omitempty"`
	// Timeout bounds every DNSSEC API call (e.g. "5s").
	Timeout string `json:"timeout,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `json:"level"`
	Structured       bool              `json:"structured"`
	StructuredFormat string            `json:"structured_format"`
	IncludePID       bool              `json:"include_pid"`
	ExtraFields      map[string]string `json:"extra_fields,omitempty"`
}
