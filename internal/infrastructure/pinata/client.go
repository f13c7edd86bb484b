// Package pinata implements the content-addressed store client against a
// Pinata-compatible pinning gateway. Objects are pinned over the REST API and
// fetched back through the public gateway by CID.
package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/pintunes/pintunes-api/internal/api/metrics"
	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings required to reach the pinning gateway.
type Config struct {
	APIKey    string
	SecretKey string
	// BaseURL is the pinning API root, e.g. https://api.pinata.cloud.
	BaseURL string
	// GatewayURL is the public read gateway root, e.g.
	// https://gateway.pinata.cloud.
	GatewayURL string
	Timeout    time.Duration
}

// Client talks to the pinning gateway. Safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a store client. A default request timeout is applied when none
// is provided, so a hung gateway call cannot hang the request forever.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both gateway credentials are set.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.SecretKey != ""
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

type pinJSONRequest struct {
	PinataContent  any         `json:"pinataContent"`
	PinataMetadata pinMetadata `json:"pinataMetadata"`
}

type pinMetadata struct {
	Name      string            `json:"name,omitempty"`
	Keyvalues map[string]string `json:"keyvalues,omitempty"`
}

// PinJSON pins v as a JSON object and returns the resulting CID.
func (c *Client) PinJSON(ctx context.Context, name string, keyvalues map[string]string, v any) (string, error) {
	if err := c.requireCredentials(); err != nil {
		return "", err
	}

	body, err := json.Marshal(pinJSONRequest{
		PinataContent:  v,
		PinataMetadata: pinMetadata{Name: name, Keyvalues: keyvalues},
	})
	if err != nil {
		return "", fmt.Errorf("marshal pin payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/pinning/pinJSONToIPFS", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp pinResponse
	if err := c.do(req, "pin_json", &resp); err != nil {
		return "", err
	}
	return resp.IpfsHash, nil
}

// PinFile pins raw file content via multipart upload and returns the CID.
func (c *Client) PinFile(ctx context.Context, filename string, keyvalues map[string]string, r io.Reader) (string, error) {
	if err := c.requireCredentials(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}

	meta, err := json.Marshal(pinMetadata{Name: filename, Keyvalues: keyvalues})
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	if err := mw.WriteField("pinataMetadata", string(meta)); err != nil {
		return "", fmt.Errorf("write metadata field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/pinning/pinFileToIPFS", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp pinResponse
	if err := c.do(req, "pin_file", &resp); err != nil {
		return "", err
	}
	return resp.IpfsHash, nil
}

// FetchJSON retrieves the object behind cid from the read gateway. The
// gateway holds public content-addressed data, so no credentials are sent.
func (c *Client) FetchJSON(ctx context.Context, cid string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.GatewayURL+"/ipfs/"+url.PathEscape(cid), nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.StoreRequestDuration.WithLabelValues("fetch", "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("%w: %v", domain.ErrRecordNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.StoreRequestDuration.WithLabelValues("fetch", "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("%w: gateway returned %s", domain.ErrRecordNotFound, resp.Status)
	}

	metrics.StoreRequestDuration.WithLabelValues("fetch", "ok").Observe(time.Since(start).Seconds())
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

type pinListResponse struct {
	Rows []struct {
		IpfsPinHash string `json:"ipfs_pin_hash"`
		Metadata    struct {
			Name      string            `json:"name"`
			Keyvalues map[string]string `json:"keyvalues"`
		} `json:"metadata"`
	} `json:"rows"`
}

// List returns pinned entries whose metadata matches all given keyvalues.
func (c *Client) List(ctx context.Context, keyvalues map[string]string) ([]ports.PinEntry, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("status", "pinned")
	for k, v := range keyvalues {
		filter, err := json.Marshal(map[string]string{"value": v, "op": "eq"})
		if err != nil {
			return nil, fmt.Errorf("marshal keyvalue filter: %w", err)
		}
		q.Set(fmt.Sprintf("metadata[keyvalues][%s]", k), string(filter))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/data/pinList?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp pinListResponse
	if err := c.do(req, "list", &resp); err != nil {
		return nil, err
	}

	entries := make([]ports.PinEntry, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		entries = append(entries, ports.PinEntry{
			CID:       row.IpfsPinHash,
			Name:      row.Metadata.Name,
			Keyvalues: row.Metadata.Keyvalues,
		})
	}
	return entries, nil
}

// TestAuthentication verifies the gateway credentials.
func (c *Client) TestAuthentication(ctx context.Context) error {
	if err := c.requireCredentials(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/data/testAuthentication", nil)
	if err != nil {
		return err
	}
	return c.do(req, "test_auth", nil)
}

func (c *Client) requireCredentials() error {
	if !c.Configured() {
		return fmt.Errorf("%w: pinning gateway credentials are not set", domain.ErrConfiguration)
	}
	return nil
}

// do executes an authenticated API request and decodes the JSON response into
// out when non-nil. No retries: transient failures surface to the caller.
func (c *Client) do(req *http.Request, operation string, out any) error {
	req.Header.Set("pinata_api_key", c.cfg.APIKey)
	req.Header.Set("pinata_secret_api_key", c.cfg.SecretKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.StoreRequestDuration.WithLabelValues(operation, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.StoreRequestDuration.WithLabelValues(operation, "error").Observe(time.Since(start).Seconds())
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: gateway returned %s: %s", domain.ErrUpstream, resp.Status, bytes.TrimSpace(body))
	}

	metrics.StoreRequestDuration.WithLabelValues(operation, "ok").Observe(time.Since(start).Seconds())
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	return nil
}
