package pdns

// Zone is the subset of the PowerDNS API zone object this client reads.
type Zone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Serial int64  `json:"serial"`
	DNSSEC bool   `json:"dnssec"`
}

// zonePatch is the body sent when toggling DNSSEC on a zone.
type zonePatch struct {
	DNSSEC      bool   `json:"dnssec"`
	APIRectify  bool   `json:"api_rectify"`
	NSEC3Params string `json:"nsec3param,omitempty"`
}

// CryptoKey is a DNSSEC signing key as reported by the cryptokeys
// endpoint.
type CryptoKey struct {
	ID        int      `json:"id"`
	KeyType   string   `json:"keytype"`
	Active    bool     `json:"active"`
	Published bool     `json:"published"`
	DNSKey    string   `json:"dnskey,omitempty"`
	DS        []string `json:"ds,omitempty"`
	Algorithm string   `json:"algorithm,omitempty"`
	Bits      int      `json:"bits,omitempty"`
}

// apiError is the error body the PowerDNS API returns on failures.
type apiError struct {
	Error string `json:"error"`
}

// rectifyResponse is the body of a successful rectify call.
type rectifyResponse struct {
	Result string `json:"result"`
}
