package models

// DnssecKeyResponse describes one DNSSEC signing key.
type DnssecKeyResponse struct {
	ID        int      `json:"id"`
	KeyType   string   `json:"key_type"`
	Active    bool     `json:"active"`
	Published bool     `json:"published"`
	DNSKey    string   `json:"dnskey,omitempty"`
	DS        []string `json:"ds,omitempty"`
	Algorithm string   `json:"algorithm,omitempty"`
	Bits      int      `json:"bits,omitempty"`
}

// DnssecStatusResponse reports a zone's DNSSEC state.
type DnssecStatusResponse struct {
	Zone    string              `json:"zone"`
	Secured bool                `json:"secured"`
	Keys    []DnssecKeyResponse `json:"keys,omitempty"`
}
