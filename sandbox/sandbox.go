// Package sandbox is the client side of the isolated document-conversion
// collaborator: a resource-capped, network-isolated runner that turns a
// document plus a small script into structured JSON. Preview output is
// untrusted data for display only. It never feeds threat decisions.
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Converter produces a structured preview for a document.
type Converter interface {
	Convert(ctx context.Context, path string, script string) (json.RawMessage, error)
}

// maxPreviewBytes caps how much converter output is read back (1 MB).
const maxPreviewBytes = 1 << 20

type HTTPConverter struct {
	endpoint string
	http     *http.Client
}

// NewHTTPConverter returns a converter posting to endpoint. Empty
// endpoint yields nil, the absent collaborator.
func NewHTTPConverter(endpoint string, timeout time.Duration) *HTTPConverter {
	if endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPConverter{endpoint: endpoint, http: &http.Client{Timeout: timeout}}
}

// Convert uploads the file and script and returns the runner's JSON
// output verbatim. Output is validated to be JSON and size-capped,
// nothing more; interpreting it is the caller's problem.
func (c *HTTPConverter) Convert(ctx context.Context, path string, script string) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("sandbox converter not configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if err := mw.WriteField("script", script); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sandbox runner: unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPreviewBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxPreviewBytes {
		return nil, fmt.Errorf("sandbox output exceeds %d bytes", maxPreviewBytes)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("sandbox output is not valid JSON")
	}
	return json.RawMessage(raw), nil
}
