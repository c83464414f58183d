// Package asr talks to the local transcription backend.
package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Fortyseven/vibevoice-fork-temp/internal/config"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/jsonpath"
)

// Client issues transcription and health requests. A failed transcription
// is not retried: the session is abandoned and the user re-records.
type Client struct {
	host       string
	textPath   string
	debug      bool
	httpClient *http.Client
}

// New creates a client for the configured backend.
func New(cfg config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}
	}
	return &Client{
		host:       strings.TrimRight(cfg.ServerHost, "/"),
		textPath:   cfg.TEXTPath,
		debug:      cfg.UPLOAD_DEBUG,
		httpClient: httpClient,
	}
}

// Transcribe sends one synchronous request referencing the WAV file on
// local disk and returns the recognized text plus the raw response body.
// Failures are classified as *TransportError, *ServiceError or *DecodeError.
func (c *Client) Transcribe(ctx context.Context, wavPath string) (string, []byte, error) {
	payload, err := json.Marshal(map[string]string{"file_path": wavPath})
	if err != nil {
		return "", nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/transcribe", bytes.NewReader(payload))
	if err != nil {
		return "", nil, fmt.Errorf("new request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.debug {
		fmt.Printf("[upload] transcribing %s -> %s\n", wavPath, c.host)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.debug {
		fmt.Printf("[upload] request duration: %v\n", time.Since(start))
	}
	if err != nil {
		return "", nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", body, &ServiceError{StatusCode: resp.StatusCode, Body: body}
	}

	text, err := jsonpath.Lookup(body, c.textPath)
	if err != nil {
		return "", body, &DecodeError{Err: err}
	}
	return text, body, nil
}

// Health probes the backend health endpoint once.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &ServiceError{StatusCode: resp.StatusCode}
	}
	return nil
}

// WaitHealthy polls Health until it succeeds or timeout elapses. A timeout
// here is the fatal startup condition: the caller should stop the backend
// and exit non-zero.
func (c *Client) WaitHealthy(ctx context.Context, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := c.Health(ctx); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("backend failed to become healthy within %v", timeout)
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
