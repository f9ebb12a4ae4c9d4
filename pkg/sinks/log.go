package sinks

import "context"

// logSink writes snapshots to the structured logger. Useful when no broker
// is reachable.
type logSink struct {
	id  string
	log Logger
}

func newLogSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	return &logSink{id: cfg.ID, log: ensureLogger(log)}, nil
}

func (l *logSink) ID() string   { return l.id }
func (l *logSink) Type() string { return TypeLog }

func (l *logSink) Publish(_ context.Context, evt Event) error {
	l.log.InfoObj("snapshot", "snapshot", map[string]any{
		"sink_id":      l.id,
		"source":       evt.Source,
		"published_at": evt.PublishedAt,
		"weather":      evt.Snapshot.Weather,
		"currency":     evt.Snapshot.Currency,
		"bitcoin":      evt.Snapshot.Bitcoin,
		"failed":       evt.Snapshot.Failed(),
	})
	return nil
}
