// Package backend is the REST client for the clinical media backend. Every
// domain read or write the gateway performs goes through it. Failures are
// terminal for the call: the dashboard surfaces them and the user retries by
// hand, so the client carries no retry or backoff logic.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// Config holds configuration for the backend client.
type Config struct {
	BaseURL           string        // Default: http://localhost:8000
	Timeout           time.Duration // Default: 10s
	RequestsPerSecond int           // Default: 20
	BurstSize         int           // Default: 5
	UserAgent         string        // Default: AnnotateGateway/1.0
}

// Client handles communication with the clinical backend.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string

	metrics clientMetrics
}

type clientMetrics struct {
	requests atomic.Int64
	errors   atomic.Int64
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 20
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 5
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "AnnotateGateway/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(
			rate.Every(time.Second/time.Duration(cfg.RequestsPerSecond)),
			cfg.BurstSize,
		),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// Annotations

// ListAnnotations fetches annotations, optionally filtered by video.
func (c *Client) ListAnnotations(ctx context.Context, videoID *int64) ([]models.Annotation, error) {
	query := url.Values{}
	if videoID != nil {
		query.Set("video_id", strconv.FormatInt(*videoID, 10))
	}

	var annotations []models.Annotation
	if err := c.doList(ctx, "/api/annotations/", query, &annotations); err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}
	return annotations, nil
}

// CreateAnnotation creates an annotation and returns the stored object.
func (c *Client) CreateAnnotation(ctx context.Context, annotation *models.Annotation) (*models.Annotation, error) {
	var created models.Annotation
	if err := c.do(ctx, http.MethodPost, "/api/annotations/", nil, annotation, &created); err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}
	return &created, nil
}

// UpdateAnnotation applies a partial update and returns the stored object.
func (c *Client) UpdateAnnotation(ctx context.Context, id string, updates map[string]any) (*models.Annotation, error) {
	var updated models.Annotation
	path := "/api/annotations/" + url.PathEscape(id) + "/"
	if err := c.do(ctx, http.MethodPatch, path, nil, updates, &updated); err != nil {
		return nil, fmt.Errorf("update annotation %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteAnnotation deletes an annotation.
func (c *Client) DeleteAnnotation(ctx context.Context, id string) error {
	path := "/api/annotations/" + url.PathEscape(id) + "/"
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete annotation %s: %w", id, err)
	}
	return nil
}

// BulkDeleteAnnotations deletes a batch of annotations in one call.
func (c *Client) BulkDeleteAnnotations(ctx context.Context, ids []string) error {
	body := BulkDeleteRequest{IDs: ids}
	if err := c.do(ctx, http.MethodPost, "/api/annotations/bulk-delete/", nil, body, nil); err != nil {
		return fmt.Errorf("bulk delete annotations: %w", err)
	}
	return nil
}

// ExportAnnotations streams the backend's annotation export in the given
// format (json, csv). The raw body and content type are passed through.
func (c *Client) ExportAnnotations(ctx context.Context, format string) ([]byte, string, error) {
	query := url.Values{}
	query.Set("format", format)

	resp, err := c.rawGet(ctx, "/api/annotations/export/", query)
	if err != nil {
		return nil, "", fmt.Errorf("export annotations: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("export annotations: read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// Video segments

// ListVideoSegments fetches all segments of a video.
func (c *Client) ListVideoSegments(ctx context.Context, videoID int64) ([]SegmentPayload, error) {
	query := url.Values{}
	query.Set("video_id", strconv.FormatInt(videoID, 10))

	var segments []SegmentPayload
	if err := c.doList(ctx, "/api/video-segments/", query, &segments); err != nil {
		return nil, fmt.Errorf("list segments for video %d: %w", videoID, err)
	}
	return segments, nil
}

// CreateVideoSegment creates a segment and returns the stored payload with
// server-computed times.
func (c *Client) CreateVideoSegment(ctx context.Context, req CreateSegmentRequest) (*SegmentPayload, error) {
	var created SegmentPayload
	if err := c.do(ctx, http.MethodPost, "/api/video-segments/", nil, req, &created); err != nil {
		return nil, fmt.Errorf("create segment: %w", err)
	}
	return &created, nil
}

// UpdateVideoSegment applies a partial update to a segment.
func (c *Client) UpdateVideoSegment(ctx context.Context, id int64, updates map[string]any) (*SegmentPayload, error) {
	var updated SegmentPayload
	path := fmt.Sprintf("/api/video-segments/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, updates, &updated); err != nil {
		return nil, fmt.Errorf("update segment %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteVideoSegment deletes a segment.
func (c *Client) DeleteVideoSegment(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/video-segments/%d/", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete segment %d: %w", id, err)
	}
	return nil
}

// GetLabelPrediction fetches the auto-generated prediction intervals for one
// label of a video.
func (c *Client) GetLabelPrediction(ctx context.Context, videoID int64, label string) (*LabelPrediction, error) {
	path := fmt.Sprintf("/api/video/%d/label/%s/", videoID, url.PathEscape(label))

	var prediction LabelPrediction
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &prediction); err != nil {
		return nil, fmt.Errorf("label prediction %s for video %d: %w", label, videoID, err)
	}
	return &prediction, nil
}

// Labels

// ListLabels fetches all known labels.
func (c *Client) ListLabels(ctx context.Context) ([]models.Label, error) {
	var labels []models.Label
	if err := c.doList(ctx, "/api/labels/", nil, &labels); err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	return labels, nil
}

// ResolveLabel looks a label up by name.
func (c *Client) ResolveLabel(ctx context.Context, name string) (*models.Label, error) {
	query := url.Values{}
	query.Set("name", name)

	var labels []models.Label
	if err := c.doList(ctx, "/api/labels/", query, &labels); err != nil {
		return nil, fmt.Errorf("resolve label %q: %w", name, err)
	}
	for i := range labels {
		if labels[i].Name == name {
			return &labels[i], nil
		}
	}
	return nil, fmt.Errorf("resolve label %q: %w", name, ErrNotFound)
}

// Videos

// ListVideos fetches all videos with their labels.
func (c *Client) ListVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := c.doList(ctx, "/api/videos/", nil, &videos); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// GetVideo fetches one video's metadata.
func (c *Client) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	var video models.Video
	path := fmt.Sprintf("/api/videos/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &video); err != nil {
		return nil, fmt.Errorf("get video %d: %w", id, err)
	}
	return &video, nil
}

// UpdateVideoStatus transitions a video's annotation status.
func (c *Client) UpdateVideoStatus(ctx context.Context, id int64, status models.VideoStatus) error {
	path := fmt.Sprintf("/api/videos/%d/status/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, UpdateStatusRequest{Status: status}, nil); err != nil {
		return fmt.Errorf("update status of video %d: %w", id, err)
	}
	return nil
}

// Sensitive metadata

// GetSensitiveMeta fetches the sensitive metadata attached to a file.
func (c *Client) GetSensitiveMeta(ctx context.Context, fileID int64) (*models.SensitiveMeta, error) {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(fileID, 10))

	var meta models.SensitiveMeta
	if err := c.do(ctx, http.MethodGet, "/api/video/sensitivemeta/", query, nil, &meta); err != nil {
		return nil, fmt.Errorf("get sensitive meta for file %d: %w", fileID, err)
	}
	return &meta, nil
}

// UpdateSensitiveMeta writes patient metadata back to the backend.
func (c *Client) UpdateSensitiveMeta(ctx context.Context, meta *models.SensitiveMeta) error {
	if err := c.do(ctx, http.MethodPatch, "/api/video/update_sensitivemeta/", nil, meta, nil); err != nil {
		return fmt.Errorf("update sensitive meta for file %d: %w", meta.FileID, err)
	}
	return nil
}

// Stats

// ExaminationStats fetches the examination annotation counts.
func (c *Client) ExaminationStats(ctx context.Context) (models.DomainStats, error) {
	var stats models.DomainStats
	if err := c.do(ctx, http.MethodGet, "/api/examinations/stats/", nil, nil, &stats); err != nil {
		return models.DomainStats{}, fmt.Errorf("examination stats: %w", err)
	}
	return stats, nil
}

// SegmentStats fetches the segment annotation counts.
func (c *Client) SegmentStats(ctx context.Context) (models.DomainStats, error) {
	var stats models.DomainStats
	if err := c.do(ctx, http.MethodGet, "/api/video-segments/stats/", nil, nil, &stats); err != nil {
		return models.DomainStats{}, fmt.Errorf("segment stats: %w", err)
	}
	return stats, nil
}

// SensitiveMetaStats fetches the sensitive metadata verification counts.
func (c *Client) SensitiveMetaStats(ctx context.Context) (models.DomainStats, error) {
	var stats models.DomainStats
	if err := c.do(ctx, http.MethodGet, "/api/video/sensitivemeta/stats/", nil, nil, &stats); err != nil {
		return models.DomainStats{}, fmt.Errorf("sensitive meta stats: %w", err)
	}
	return stats, nil
}

// Metrics returns request counters for the health endpoint.
func (c *Client) Metrics() map[string]int64 {
	return map[string]int64{
		"requests": c.metrics.requests.Load(),
		"errors":   c.metrics.errors.Load(),
	}
}

// do performs a single request and decodes a JSON response into out when out
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.execute(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.errors.Add(1)
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// doList decodes a list response that may be either a bare JSON array or a
// DRF pagination envelope with a results field.
func (c *Client) doList(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.execute(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.errors.Add(1)
		return fmt.Errorf("read body: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		envelope := struct {
			Results json.RawMessage `json:"results"`
		}{}
		if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Results == nil {
			c.metrics.errors.Add(1)
			return ErrInvalidResponse
		}
		trimmed = envelope.Results
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		c.metrics.errors.Add(1)
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// rawGet performs a GET and returns the raw response for pass-through
// endpoints. Callers must close the body.
func (c *Client) rawGet(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	return c.execute(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}
	c.metrics.requests.Add(1)

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("http request: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	c.metrics.errors.Add(1)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	var errBody errorBody
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.text() != "" {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, errBody.text())
	}
	return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
}
