package sinks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Builder creates a Sink from a config entry.
type Builder func(ctx context.Context, cfg SinkConfig, log Logger) (Sink, error)

// Builders maps a sink type to its constructor.
type Builders map[string]Builder

// DefaultBuilders returns constructors for every supported sink type.
func DefaultBuilders() Builders {
	return Builders{
		TypeHTTP:   newHTTPSink,
		TypeSQS:    newSQSSink,
		TypeSNS:    newSNSSink,
		TypePubSub: newPubSubSink,
		TypeLog:    newLogSink,
	}
}

func (b Builders) lookup(typ string) Builder {
	return b[strings.ToLower(strings.TrimSpace(typ))]
}

// check reports every entry that has no builder, so a bad file fails before
// any broker client is dialled.
func (b Builders) check(cfgs []SinkConfig) error {
	var errs []error
	for _, cfg := range cfgs {
		if b.lookup(cfg.Type) == nil {
			errs = append(errs, fmt.Errorf("sink %q: unsupported type %q", cfg.ID, cfg.Type))
		}
	}
	return errors.Join(errs...)
}

// BuildAll constructs the sinks concurrently, preserving config order. If any
// builder fails the sinks already built are closed.
func BuildAll(ctx context.Context, builders Builders, cfgs []SinkConfig, log Logger) ([]Sink, error) {
	if len(builders) == 0 || len(cfgs) == 0 {
		return nil, nil
	}
	if err := builders.check(cfgs); err != nil {
		return nil, err
	}

	out := make([]Sink, len(cfgs))
	// clients keep ctx for credential refresh, so it must outlive Wait
	var g errgroup.Group
	for i, cfg := range cfgs {
		build := builders.lookup(cfg.Type)
		g.Go(func() error {
			s, err := build(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("build sink %q: %w", cfg.ID, err)
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = NewFanout(out).Close()
		return nil, err
	}
	return out, nil
}
