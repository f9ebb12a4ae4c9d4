package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/climapyg/climapyg-dashboard/internal/config"
	"github.com/climapyg/climapyg-dashboard/pkg/api"
	"github.com/climapyg/climapyg-dashboard/pkg/sinks"
)

type backend struct {
	mu       sync.Mutex
	requests []string
	hook     []sinks.Event
}

func (b *backend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/weather/", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"department": "Itapúa", "temp_celsius": 27.6, "description": "Nubes dispersas",
			"humidity": 64, "wind_speed_kmh": 11.2,
		})
	})
	mux.HandleFunc("/api/v1/currency/convert", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var req api.ConversionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode conversion request: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"source_currency": req.FromCurrency, "target_currency": "PYG", "amount": req.Amount,
			"converted_amount": req.Amount * 1450.5, "rate": 1450.5, "timestamp": "2025-06-01T12:00:00",
		})
	})
	mux.HandleFunc("/api/v1/bitcoin/convert", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"detail": "rate provider down"})
	})
	mux.HandleFunc("/hook", func(w http.ResponseWriter, r *http.Request) {
		var evt sinks.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode hook event: %v", err)
		}
		b.mu.Lock()
		b.hook = append(b.hook, evt)
		b.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	})
	return mux
}

func (b *backend) record(r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	b.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig(t *testing.T, baseURL, sinksFile string) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:        "climapyg-test",
		APIBaseURL:     baseURL + "/api/v1",
		RequestTimeout: 2 * time.Second,
		CatalogFile:    filepath.Join(t.TempDir(), "missing-catalog.yaml"),
		SinksFile:      sinksFile,
	}
}

func TestSnapshotRunnerFetchesPrintsAndPublishes(t *testing.T) {
	b := &backend{}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	sinksFile := filepath.Join(t.TempDir(), "sinks.yaml")
	content := "sinks:\n  - id: hook\n    type: http\n    http:\n      url: " + srv.URL + "/hook\n"
	if err := os.WriteFile(sinksFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write sinks file: %v", err)
	}

	var out bytes.Buffer
	ctx := context.Background()
	runner, err := NewSnapshotRunner(ctx, testConfig(t, srv.URL, sinksFile), nil, &out)
	if err != nil {
		t.Fatalf("NewSnapshotRunner: %v", err)
	}
	defer runner.Close()

	snap, err := runner.Run(ctx, SnapshotOptions{City: "encarnacion", Currency: "brl", Amount: "2", BTCAmount: "0.5"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if snap.Weather.City != "Encarnación" || snap.Weather.Department != "Itapúa" || snap.Weather.Temperature != "28°C" {
		t.Fatalf("unexpected weather %+v", snap.Weather)
	}
	if snap.Currency.Code != "BRL" || snap.Currency.Result != "₲ 2.901" {
		t.Fatalf("unexpected currency %+v", snap.Currency)
	}
	if snap.Bitcoin.Error != "Error 503: rate provider down" {
		t.Fatalf("unexpected bitcoin error %q", snap.Bitcoin.Error)
	}
	if !snap.Failed() {
		t.Fatalf("expected snapshot to report a failed panel")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) != 3 {
		t.Fatalf("expected 3 backend requests, got %v", b.requests)
	}
	joined := strings.Join(b.requests, ",")
	if !strings.Contains(joined, "GET /api/v1/weather/ITAPUA") {
		t.Fatalf("weather request not routed by department: %v", b.requests)
	}
	if len(b.hook) != 1 || b.hook[0].Source != "climapyg-test" || b.hook[0].Snapshot.Currency.Code != "BRL" {
		t.Fatalf("unexpected hook deliveries %+v", b.hook)
	}

	printed := out.String()
	if !strings.Contains(printed, "department: Itapúa") || !strings.Contains(printed, "rate provider down") {
		t.Fatalf("unexpected printed snapshot:\n%s", printed)
	}
}

func TestSnapshotRunnerMissingSinksFile(t *testing.T) {
	b := &backend{}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	cfg := testConfig(t, srv.URL, filepath.Join(t.TempDir(), "none.yaml"))
	runner, err := NewSnapshotRunner(context.Background(), cfg, nil, io.Discard)
	if err != nil {
		t.Fatalf("NewSnapshotRunner: %v", err)
	}
	if runner.fanout.Size() != 0 {
		t.Fatalf("expected no sinks, got %d", runner.fanout.Size())
	}
	if _, err := runner.Run(context.Background(), SnapshotOptions{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestSnapshotRunnerUnknownSelection(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1", "")
	runner, err := NewSnapshotRunner(context.Background(), cfg, nil, io.Discard)
	if err != nil {
		t.Fatalf("NewSnapshotRunner: %v", err)
	}
	if _, err := runner.Run(context.Background(), SnapshotOptions{City: "atlantis"}); err == nil {
		t.Fatalf("expected unknown city error")
	}
	if _, err := runner.Run(context.Background(), SnapshotOptions{Currency: "XXX"}); err == nil {
		t.Fatalf("expected unknown currency error")
	}
}

func TestSnapshotRunnerConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	runner, err := NewSnapshotRunner(context.Background(), testConfig(t, base, ""), nil, io.Discard)
	if err != nil {
		t.Fatalf("NewSnapshotRunner: %v", err)
	}
	snap, err := runner.Run(context.Background(), SnapshotOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, msg := range []string{snap.Weather.Error, snap.Currency.Error, snap.Bitcoin.Error} {
		if msg != "Connection error. Make sure the API server is running." {
			t.Fatalf("expected connectivity error, got %q", msg)
		}
	}
}

func TestSnapshotRunnerWatchRepeatsUntilCancelled(t *testing.T) {
	b := &backend{}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	var out bytes.Buffer
	runner, err := NewSnapshotRunner(context.Background(), testConfig(t, srv.URL, ""), nil, &out)
	if err != nil {
		t.Fatalf("NewSnapshotRunner: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := runner.Watch(ctx, SnapshotOptions{}, 50*time.Millisecond); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if docs := strings.Count(out.String(), "taken_at:"); docs < 2 {
		t.Fatalf("expected repeated snapshots, got %d", docs)
	}
	if !strings.Contains(out.String(), "---\n") {
		t.Fatalf("expected document separators:\n%s", out.String())
	}
	if err := runner.Watch(context.Background(), SnapshotOptions{}, 0); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestSnapshotRunnerWatchCancelledMidRunPublishesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		weather  int
		hookHits int
	)
	b := &backend{}
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", b.handler(t))
	mux.HandleFunc("/api/v1/weather/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		weather++
		n := weather
		mu.Unlock()
		if n >= 2 {
			// shut down while the scheduled run is in flight
			cancel()
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"department": "Central", "temp_celsius": 30.0})
	})
	mux.HandleFunc("/hook", func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		hookHits++
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sinksFile := filepath.Join(t.TempDir(), "sinks.yaml")
	content := "sinks:\n  - id: hook\n    type: http\n    http:\n      url: " + srv.URL + "/hook\n"
	if err := os.WriteFile(sinksFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write sinks file: %v", err)
	}

	var out bytes.Buffer
	runner, err := NewSnapshotRunner(context.Background(), testConfig(t, srv.URL, sinksFile), nil, &out)
	if err != nil {
		t.Fatalf("NewSnapshotRunner: %v", err)
	}
	defer runner.Close()

	if err := runner.Watch(ctx, SnapshotOptions{}, 20*time.Millisecond); err != nil {
		t.Fatalf("Watch should exit cleanly on cancellation, got %v", err)
	}

	printed := out.String()
	if docs := strings.Count(printed, "taken_at:"); docs != 1 {
		t.Fatalf("expected only the completed snapshot, got %d documents:\n%s", docs, printed)
	}
	if strings.Contains(printed, "Connection error") {
		t.Fatalf("cancelled run leaked into output:\n%s", printed)
	}
	mu.Lock()
	defer mu.Unlock()
	if hookHits != 1 {
		t.Fatalf("expected 1 delivery, got %d", hookHits)
	}
}

func TestSnapshotRunnerRunReturnsContextError(t *testing.T) {
	b := &backend{}
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	var out bytes.Buffer
	runner, err := NewSnapshotRunner(context.Background(), testConfig(t, srv.URL, ""), nil, &out)
	if err != nil {
		t.Fatalf("NewSnapshotRunner: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Run(ctx, SnapshotOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing printed, got:\n%s", out.String())
	}
}
