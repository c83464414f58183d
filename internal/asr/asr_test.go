package asr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Fortyseven/vibevoice-fork-temp/internal/config"
)

func newTestClient(url string) *Client {
	cfg := config.DefaultConfig()
	cfg.ServerHost = url
	return New(cfg, &http.Client{Timeout: time.Second})
}

func TestTranscribeSuccess(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotPath = req["file_path"]
		_, _ = w.Write([]byte(`{"text": "hello world"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, raw, err := client.Transcribe(context.Background(), "/tmp/recording.wav")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("expected 'hello world', got %q", text)
	}
	if gotPath != "/tmp/recording.wav" {
		t.Fatalf("backend saw wrong file path: %q", gotPath)
	}
	if len(raw) == 0 {
		t.Fatalf("raw response body missing")
	}
}

func TestTranscribeEmptyTextIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": ""}`))
	}))
	defer server.Close()

	text, _, err := newTestClient(server.URL).Transcribe(context.Background(), "x.wav")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestTranscribeServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	_, _, err := newTestClient(server.URL).Transcribe(context.Background(), "x.wav")
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", se.StatusCode)
	}
}

func TestTranscribeDecodeError(t *testing.T) {
	for _, body := range []string{"not json", `{"result": "missing text field"}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		_, _, err := newTestClient(server.URL).Transcribe(context.Background(), "x.wav")
		server.Close()

		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("body %q: expected DecodeError, got %T: %v", body, err, err)
		}
	}
}

func TestTranscribeTransportError(t *testing.T) {
	// closed server: connection refused
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, _, err := newTestClient(url).Transcribe(context.Background(), "x.wav")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestHealth(t *testing.T) {
	healthy := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.Health(context.Background()); err == nil {
		t.Fatalf("expected unhealthy")
	}

	healthy = true
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
}

func TestWaitHealthyEventuallySucceeds(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.WaitHealthy(context.Background(), 5*time.Second, 5*time.Millisecond); err != nil {
		t.Fatalf("WaitHealthy failed: %v", err)
	}
	if calls < 3 {
		t.Fatalf("expected at least 3 polls, got %d", calls)
	}
}

func TestWaitHealthyTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.WaitHealthy(context.Background(), 30*time.Millisecond, 10*time.Millisecond); err == nil {
		t.Fatalf("expected timeout error")
	}
}
