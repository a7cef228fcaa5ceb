// Package pdns is a client for the PowerDNS authoritative server HTTP
// API, covering the DNSSEC operations zonekeeper needs: securing and
// unsecuring zones, rectification after content changes, and key
// inspection. The server is treated as remote and possibly slow; every
// call carries a bounded timeout and failures surface as
// ExternalServiceError so callers can downgrade them to warnings.
package pdns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jroosing/zonekeeper/internal/records"
)

const serviceName = "powerdns api"

// Client talks to one PowerDNS server instance.
type Client struct {
	baseURL  string
	apiKey   string
	serverID string
	http     *http.Client
}

// NewClient builds a client for the PowerDNS API at baseURL (e.g.
// "http://127.0.0.1:8081"). serverID is normally "localhost".
func NewClient(baseURL, apiKey, serverID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		serverID: serverID,
		http:     &http.Client{Timeout: timeout},
	}
}

// RectifyZone re-establishes DNSSEC ordering and NSEC chains after zone
// content changed.
func (c *Client) RectifyZone(ctx context.Context, zone string) error {
	var out rectifyResponse
	return c.do(ctx, http.MethodPut, c.zonePath(zone)+"/rectify", nil, &out)
}

// SecureZone enables DNSSEC on a zone, letting the server generate keys.
func (c *Client) SecureZone(ctx context.Context, zone string) error {
	return c.do(ctx, http.MethodPut, c.zonePath(zone), zonePatch{DNSSEC: true, APIRectify: true}, nil)
}

// UnsecureZone disables DNSSEC on a zone and removes its keys.
func (c *Client) UnsecureZone(ctx context.Context, zone string) error {
	return c.do(ctx, http.MethodPut, c.zonePath(zone), zonePatch{DNSSEC: false}, nil)
}

// IsZoneSecured reports whether the zone currently has DNSSEC enabled.
func (c *Client) IsZoneSecured(ctx context.Context, zone string) (bool, error) {
	var z Zone
	if err := c.do(ctx, http.MethodGet, c.zonePath(zone), nil, &z); err != nil {
		return false, err
	}
	return z.DNSSEC, nil
}

// Keys lists the zone's DNSSEC signing keys.
func (c *Client) Keys(ctx context.Context, zone string) ([]CryptoKey, error) {
	var keys []CryptoKey
	if err := c.do(ctx, http.MethodGet, c.zonePath(zone)+"/cryptokeys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// zonePath builds the API path for a zone. PowerDNS zone IDs are the
// canonical name with the trailing dot.
func (c *Client) zonePath(zone string) string {
	if !strings.HasSuffix(zone, ".") {
		zone += "."
	}
	return fmt.Sprintf("/api/v1/servers/%s/zones/%s", url.PathEscape(c.serverID), url.PathEscape(zone))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &records.ExternalServiceError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return &records.ExternalServiceError{
				Service: serviceName,
				Err:     fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode),
			}
		}
		return &records.ExternalServiceError{
			Service: serviceName,
			Err:     fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &records.ExternalServiceError{
			Service: serviceName,
			Err:     fmt.Errorf("failed to decode %s response: %w", path, err),
		}
	}
	return nil
}
