package models

// ZoneCreateRequest describes a new zone.
type ZoneCreateRequest struct {
	Name string `json:"name" binding:"required"`
	// Type is MASTER, NATIVE, or SLAVE.
	Type string `json:"type" binding:"required"`
	// Master is the transfer source address, required for SLAVE zones.
	Master  string `json:"master,omitempty"`
	Account string `json:"account,omitempty"`
}

// ZoneResponse describes one zone.
type ZoneResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Master  string `json:"master,omitempty"`
	Account string `json:"account,omitempty"`
	// RecordCount is filled in list responses.
	RecordCount int `json:"record_count,omitempty"`
}

// ZoneListResponse lists all zones.
type ZoneListResponse struct {
	Zones []ZoneResponse `json:"zones"`
	Count int            `json:"count"`
}

// ZoneCommentRequest sets the zone-level comment.
type ZoneCommentRequest struct {
	Comment string `json:"comment"`
}

// ZoneCommentResponse returns the zone-level comment.
type ZoneCommentResponse struct {
	Comment string `json:"comment"`
}
