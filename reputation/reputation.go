// Package reputation queries an optional external hash-reputation
// service. The collaborator is never a hard dependency: a nil client is
// a valid "absent" service and every failure degrades to "no signal".
package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"vakta/logger"
)

// Signal is one reputation verdict for a content hash.
type Signal struct {
	Hash      string `json:"hash"`
	Malicious bool   `json:"malicious"`
	Score     int    `json:"score"`
	Label     string `json:"label,omitempty"`
	Source    string `json:"source,omitempty"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a client for the service at baseURL. An empty baseURL
// yields a nil client, which Lookup treats as the service being absent.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup asks the service about a hash. The second return value reports
// whether a signal exists; an unknown hash is not an error.
func (c *Client) Lookup(ctx context.Context, hash string) (Signal, bool, error) {
	if c == nil || hash == "" {
		return Signal{}, false, nil
	}

	endpoint := fmt.Sprintf("%s/v1/hash/%s", c.baseURL, url.PathEscape(hash))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Signal{}, false, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Signal{}, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Signal{}, false, nil
	default:
		return Signal{}, false, fmt.Errorf("reputation service: unexpected status %s", resp.Status)
	}

	var sig Signal
	if err := json.NewDecoder(resp.Body).Decode(&sig); err != nil {
		return Signal{}, false, err
	}
	if sig.Score < 0 {
		sig.Score = 0
	}
	if sig.Score > 100 {
		sig.Score = 100
	}
	if sig.Hash == "" {
		sig.Hash = hash
	}
	logger.Debugf("Reputation signal for %s: malicious=%v score=%d", hash, sig.Malicious, sig.Score)
	return sig, true, nil
}
