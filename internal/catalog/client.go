// Package catalog is the CameraHub API client. It exposes only the three
// record operations the reconciliation driver needs plus a startup
// credential check; wire details stay in here.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/camerahub/tagger/internal/logging"
)

// Client talks to one CameraHub server with one set of credentials. It is
// safe to reuse across files; no per-file state lives here.
type Client struct {
	http *resty.Client
	log  logging.Logger
}

// New builds a client for the given server base URL and basic-auth
// credentials.
func New(server, username, password string, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	http := resty.New().
		SetBaseURL(server).
		SetBasicAuth(username, password).
		SetHeader("Accept", "application/json")
	return &Client{http: http, log: log}
}

// TestCredentials checks the configured credentials against the catalog.
// Any failure here is fatal for the whole run: nothing can be reconciled
// without access.
func (c *Client) TestCredentials(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/camera")
	if err != nil {
		return fmt.Errorf("checking credentials: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("checking credentials: %w (status %d)", ErrUnauthorized, resp.StatusCode())
	}
	return nil
}

// listEnvelope is the shape of the catalog's list responses.
type listEnvelope struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

// ResolveNegative finds the negative slug for a film/frame pair. Exactly
// one match is required.
func (c *Client) ResolveNegative(ctx context.Context, film, frame string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("film", film).
		SetQueryParam("frame", frame).
		Get("/negative/")
	if err != nil {
		return "", fmt.Errorf("looking up negative %s-%s: %w", film, frame, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("looking up negative %s-%s: status %d", film, frame, resp.StatusCode())
	}

	var env listEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return "", fmt.Errorf("decoding negative lookup: %w", err)
	}
	if env.Count != 1 {
		return "", fmt.Errorf("negative %s-%s: %w (%d matches)", film, frame, ErrNotFound, env.Count)
	}
	c.log.Debug("negative lookup matched", "film", film, "frame", frame)

	var neg struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(env.Results[0], &neg); err != nil {
		return "", fmt.Errorf("decoding negative lookup: %w", err)
	}
	return neg.Slug, nil
}

// CreateScan creates a scan record tied to a negative and returns its
// uuid.
func (c *Client) CreateScan(ctx context.Context, negative, filename string, date time.Time) (string, error) {
	body := map[string]string{
		"negative": negative,
		"filename": filename,
		"date":     date.Format("2006-01-02"),
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post("/scan/")
	if err != nil {
		return "", fmt.Errorf("creating scan for %s: %w", negative, err)
	}
	if resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
		return "", fmt.Errorf("creating scan for %s: %w (status %d)", negative, ErrValidation, resp.StatusCode())
	}
	if resp.IsError() {
		return "", fmt.Errorf("creating scan for %s: status %d", negative, resp.StatusCode())
	}

	var scan struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(resp.Body(), &scan); err != nil {
		return "", fmt.Errorf("decoding scan creation: %w", err)
	}
	return scan.UUID, nil
}

// GetScan fetches the full nested record for a scan id. Numbers are kept
// as json.Number so coordinate fields survive with their exact decimal
// representation.
func (c *Client) GetScan(ctx context.Context, scanID string) (map[string]any, error) {
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("uuid", scanID).
		Get("/scan/")
	if err != nil {
		return nil, fmt.Errorf("fetching scan %s: %w", scanID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching scan %s: status %d", scanID, resp.StatusCode())
	}

	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	var env struct {
		Count   int              `json:"count"`
		Results []map[string]any `json:"results"`
	}
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding scan %s: %w", scanID, err)
	}
	if env.Count != 1 {
		return nil, fmt.Errorf("scan %s: %w (%d matches)", scanID, ErrNotFound, env.Count)
	}
	return env.Results[0], nil
}
