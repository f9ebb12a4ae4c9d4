package sinks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

type stubSink struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubSink) ID() string   { return s.id }
func (s *stubSink) Type() string { return s.typ }
func (s *stubSink) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}
func (s *stubSink) Close() error {
	s.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubSink{id: "ok", typ: TypeLog}
	bad := &stubSink{id: "bad", typ: TypeHTTP, err: errors.New("failed")}
	fanout := NewFanout([]Sink{ok, nil, bad})

	if fanout.Size() != 2 {
		t.Fatalf("expected nil sinks to be dropped, size %d", fanout.Size())
	}
	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("expected every sink to be called once, got %d and %d", ok.calls, bad.calls)
	}
}

func TestFanoutNilAndClose(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout should be a no-op, got %d %v", n, err)
	}

	s := &stubSink{id: "s", typ: TypeLog}
	if err := NewFanout([]Sink{s}).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !s.closed {
		t.Fatalf("expected sink to be closed")
	}
}

func TestBuildAllPreservesOrder(t *testing.T) {
	out, err := BuildAll(context.Background(), DefaultBuilders(), []SinkConfig{
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPSinkConfig{URL: "https://example.com", Method: "POST", TimeoutSeconds: 1}},
		{ID: "stdout", Type: TypeLog},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(out))
	}
	if out[1].Type() != TypeLog || out[1].ID() != "stdout" {
		t.Fatalf("unexpected sink %s/%s", out[1].Type(), out[1].ID())
	}
}

func TestBuildAllRejectsUnknownTypesBeforeBuilding(t *testing.T) {
	built := 0
	builders := Builders{
		TypeLog: func(_ context.Context, cfg SinkConfig, _ Logger) (Sink, error) {
			built++
			return &stubSink{id: cfg.ID, typ: TypeLog}, nil
		},
	}
	_, err := BuildAll(context.Background(), builders, []SinkConfig{
		{ID: "ok", Type: TypeLog},
		{ID: "x", Type: "kafka"},
		{ID: "y", Type: "nats"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unknown sink types")
	}
	if !strings.Contains(err.Error(), `"x"`) || !strings.Contains(err.Error(), `"y"`) {
		t.Fatalf("expected every bad entry reported, got %v", err)
	}
	if built != 0 {
		t.Fatalf("no sink should be built when the list is invalid, built %d", built)
	}
}

func TestBuildAllClosesBuiltSinksOnFailure(t *testing.T) {
	var mu sync.Mutex
	var made []*stubSink
	builders := Builders{
		TypeLog: func(_ context.Context, cfg SinkConfig, _ Logger) (Sink, error) {
			s := &stubSink{id: cfg.ID, typ: TypeLog}
			mu.Lock()
			made = append(made, s)
			mu.Unlock()
			return s, nil
		},
		TypeHTTP: func(context.Context, SinkConfig, Logger) (Sink, error) {
			return nil, errors.New("dial failed")
		},
	}
	out, err := BuildAll(context.Background(), builders, []SinkConfig{
		{ID: "a", Type: TypeLog},
		{ID: "b", Type: TypeHTTP},
		{ID: "c", Type: TypeLog},
	}, nil)
	if err == nil || out != nil {
		t.Fatalf("expected build failure, got %v %v", out, err)
	}
	mu.Lock()
	defer mu.Unlock()
	for _, s := range made {
		if !s.closed {
			t.Fatalf("sink %s was not closed", s.id)
		}
	}
}
