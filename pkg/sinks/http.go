package sinks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/climapyg/climapyg-dashboard/pkg/httpclient"
)

// attributeHeaderPrefix namespaces event attributes sent as webhook headers,
// e.g. X-Snapshot-City.
const attributeHeaderPrefix = "X-Snapshot-"

// webhookSink posts events to an HTTP endpoint through the shared transport.
// Routing attributes travel as headers so receivers can filter without
// decoding the body.
type webhookSink struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  httpclient.Client
	log     Logger
}

func newHTTPSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("sink %q missing http configuration", cfg.ID)
	}
	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	return &webhookSink{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyClient("", timeout),
		log:     ensureLogger(log),
	}, nil
}

func (w *webhookSink) ID() string   { return w.id }
func (w *webhookSink) Type() string { return TypeHTTP }

func (w *webhookSink) Publish(ctx context.Context, evt Event) error {
	resp, err := w.client.Do(ctx, w.method, w.url, evt, w.requestHeaders(evt))
	if err != nil {
		return fmt.Errorf("deliver to %s: %w", w.url, err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		w.log.WarnObj("webhook rejected snapshot", "sink_http_rejected", map[string]any{
			"sink_id": w.id,
			"status":  status,
			"failed":  evt.Snapshot.Failed(),
		})
		return fmt.Errorf("webhook status %d: %s", status, truncate(resp.Body(), 512))
	}

	w.log.DebugObj("webhook accepted snapshot", "sink_http_delivery", map[string]any{
		"sink_id": w.id,
		"status":  status,
		"city":    evt.Snapshot.Weather.City,
	})
	return nil
}

// requestHeaders merges the configured headers with the event attributes.
// Configured headers win on conflict.
func (w *webhookSink) requestHeaders(evt Event) map[string]string {
	attrs := evt.attributes()
	out := make(map[string]string, len(attrs)+len(w.headers))
	for k, v := range attrs {
		if v == "" {
			continue
		}
		out[attributeHeaderPrefix+headerCase(k)] = v
	}
	for k, v := range w.headers {
		out[k] = v
	}
	return out
}

func headerCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		body = body[:limit]
	}
	return strings.TrimSpace(string(body))
}
