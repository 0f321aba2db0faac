// Package remote is the client for the hosted document store: a PostgREST
// style API holding the jobs collection, the settings singleton, and the
// photo-reference audit trail.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/babithbhoop/sparklespace/internal/domain"
)

// Config holds the caller-supplied connection info. Both values are
// required; a client built from empty values fails every call with
// ErrNotConfigured.
type Config struct {
	URL     string
	AnonKey string
}

// Client talks to the remote document store. All operations take a context
// and may fail; the sync layer decides what a failure means.
type Client struct {
	endpoint string
	anonKey  string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a remote client from explicit connection info.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.URL, "/"),
		anonKey:  cfg.AnonKey,
		http:     &http.Client{},
		logger:   logger,
	}
}

// Configured reports whether the client has connection info.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.anonKey != ""
}

type jobRow struct {
	ID        string `json:"id,omitempty"`
	Data      string `json:"data"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type settingsRow struct {
	Key       string `json:"key"`
	Data      string `json:"data"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// PhotoRef is one row of the photo audit trail. It is written when a photo
// is uploaded to the external folder and never read back by the sync path.
type PhotoRef struct {
	JobID     string `json:"job_id"`
	SpaceID   string `json:"space_id"`
	PhotoType string `json:"photo_type"` // before, after, assessment
	Filename  string `json:"filename"`
	DriveURL  string `json:"gdrive_url"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ConnectionStatus is the outcome of a connection test.
type ConnectionStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ListJobs fetches every job, newest-created first. Row ids land in
// Job.RemoteID.
func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var rows []jobRow
	if err := c.do(ctx, http.MethodGet, "jobs?select=*&order=created_at.desc", nil, &rows); err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, 0, len(rows))
	for _, row := range rows {
		job, err := decodeJobPayload(row.Data)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", row.ID, err)
		}
		job.RemoteID = row.ID
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// UpsertJob sends one job to the store. A job without a remote id is
// inserted and comes back carrying the store-assigned row id; a job with
// one is updated in place. The returned job keeps the caller's full photo
// payloads; only the transmitted copy is sanitized.
func (c *Client) UpsertJob(ctx context.Context, job domain.Job) (domain.Job, error) {
	data, err := encodeJobPayload(sanitizeForUpload(job))
	if err != nil {
		return job, err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if job.RemoteID == "" {
		body := jobRow{Data: data, CreatedAt: now, UpdatedAt: now}
		var rows []jobRow
		if err := c.do(ctx, http.MethodPost, "jobs", body, &rows); err != nil {
			return job, err
		}
		if len(rows) > 0 {
			job.RemoteID = rows[0].ID
		}
		return job, nil
	}

	body := jobRow{Data: data, UpdatedAt: now}
	var rows []jobRow
	if err := c.do(ctx, http.MethodPatch, "jobs?id=eq."+job.RemoteID, body, &rows); err != nil {
		return job, err
	}
	return job, nil
}

// DeleteJob removes a job row by its remote id.
func (c *Client) DeleteJob(ctx context.Context, remoteID string) error {
	return c.do(ctx, http.MethodDelete, "jobs?id=eq."+remoteID, nil, nil)
}

// LoadSettings reads the settings singleton. A store that has no settings
// row yet yields (nil, nil).
func (c *Client) LoadSettings(ctx context.Context) (*domain.Settings, error) {
	var rows []settingsRow
	if err := c.do(ctx, http.MethodGet, "app_settings?select=*&key=eq.main&limit=1", nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var settings domain.Settings
	if err := json.Unmarshal([]byte(rows[0].Data), &settings); err != nil {
		return nil, fmt.Errorf("decode settings payload: %w", err)
	}
	return &settings, nil
}

// SaveSettings upserts the settings singleton: an existence check followed
// by update or insert. Not atomic, which is fine for a singleton with no
// concurrent writers.
func (c *Client) SaveSettings(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings payload: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	row := settingsRow{Key: "main", Data: string(data), UpdatedAt: now}

	var existing []settingsRow
	if err := c.do(ctx, http.MethodGet, "app_settings?key=eq.main&select=key", nil, &existing); err != nil {
		return err
	}

	if len(existing) > 0 {
		return c.do(ctx, http.MethodPatch, "app_settings?key=eq.main", row, nil)
	}
	row.CreatedAt = now
	return c.do(ctx, http.MethodPost, "app_settings", row, nil)
}

// SavePhotoRef appends one row to the photo audit trail.
func (c *Client) SavePhotoRef(ctx context.Context, ref PhotoRef) error {
	if ref.CreatedAt == "" {
		ref.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return c.do(ctx, http.MethodPost, "photo_refs", ref, nil)
}

// TestConnection performs a minimal read to validate reachability and
// authorization without mutating anything.
func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	var rows []jobRow
	if err := c.do(ctx, http.MethodGet, "jobs?select=id&limit=1", nil, &rows); err != nil {
		return ConnectionStatus{OK: false, Error: err.Error()}
	}
	return ConnectionStatus{OK: true}
}

// do runs one request against {endpoint}/rest/v1/{path} with the api-key
// headers, decoding a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.endpoint + "/rest/v1/" + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if method == http.MethodPost || method == http.MethodPatch {
		// Have inserts and updates echo the persisted row back.
		req.Header.Set("Prefer", "return=representation")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("remote %s %s: read body: %w", method, path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &RequestError{Method: method, Path: path, Status: res.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("remote %s %s: decode response: %w", method, path, err)
	}
	return nil
}
