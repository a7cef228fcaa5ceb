package models

// RecordRequest describes a record create or edit. Name may be a relative
// label, "@" for the zone apex, or a full FQDN. TTL and Prio are strings
// so blank values can fall back to configured defaults.
type RecordRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Content string `json:"content" binding:"required"`
	TTL     string `json:"ttl,omitempty"`
	Prio    string `json:"prio,omitempty"`
	Comment string `json:"comment,omitempty"`
	// SerialSnapshot is the zone serial the caller's view was built from;
	// used for concurrent-edit detection on edits.
	SerialSnapshot string `json:"serial_snapshot,omitempty"`
	Disabled       bool   `json:"disabled,omitempty"`
}

// RecordResponse describes one stored record.
type RecordResponse struct {
	ID       int64  `json:"id"`
	ZoneID   int64  `json:"zone_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	TTL      int    `json:"ttl"`
	Prio     int    `json:"prio"`
	Disabled bool   `json:"disabled"`
	Comment  string `json:"comment,omitempty"`
}

// RecordListResponse lists a zone's records.
type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
	Count   int              `json:"count"`
}

// MutationResponse reports a committed record change. Warning carries a
// non-fatal post-commit problem, typically a DNSSEC rectify failure or a
// missing reverse zone.
type MutationResponse struct {
	Record  *RecordResponse `json:"record,omitempty"`
	NoOp    bool            `json:"no_op,omitempty"`
	Warning string          `json:"warning,omitempty"`
}

// BulkRecordsRequest carries a best-effort batch of record creations.
type BulkRecordsRequest struct {
	Records []RecordRequest `json:"records" binding:"required"`
}

// BulkRecordsResponse tallies a bulk add.
type BulkRecordsResponse struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// NetworkRequest describes a batch PTR network generation.
type NetworkRequest struct {
	// NetworkPrefix is "a.b.c" for IPv4 or four hextets for IPv6.
	NetworkPrefix string `json:"network_prefix" binding:"required"`
	HostPrefix    string `json:"host_prefix"`
	Domain        string `json:"domain" binding:"required"`
	ZoneID        int64  `json:"zone_id" binding:"required"`
	// Count bounds IPv6 expansion (default 256, max 1000); ignored for IPv4.
	Count   int    `json:"count,omitempty"`
	TTL     string `json:"ttl,omitempty"`
	Comment string `json:"comment,omitempty"`
}
