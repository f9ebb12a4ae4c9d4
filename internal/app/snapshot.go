package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/climapyg/climapyg-dashboard/internal/config"
	"github.com/climapyg/climapyg-dashboard/internal/logger"
	"github.com/climapyg/climapyg-dashboard/pkg/panels"
	"github.com/climapyg/climapyg-dashboard/pkg/sinks"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SnapshotOptions selects what the one-shot snapshot fetches. Empty fields
// keep the panel defaults.
type SnapshotOptions struct {
	City      string
	Currency  string
	Amount    string
	BTCAmount string
}

// SnapshotRunner fetches all panels once, prints the result and forwards it
// to the configured sinks.
type SnapshotRunner struct {
	cfg    *config.Config
	panels *Panels
	fanout *sinks.Fanout
	out    io.Writer
	log    logger.Logger

	printed int
}

// NewSnapshotRunner builds the panels and the sink fan-out from config files.
func NewSnapshotRunner(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*SnapshotRunner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = os.Stdout
	}

	p, err := NewPanels(cfg, log)
	if err != nil {
		return nil, err
	}

	fanout, err := loadSinks(ctx, cfg.SinksFile, log)
	if err != nil {
		return nil, err
	}

	return &SnapshotRunner{
		cfg:    cfg,
		panels: p,
		fanout: fanout,
		out:    out,
		log:    log,
	}, nil
}

// loadSinks builds the enabled sinks. A missing sinks file yields an empty
// fan-out.
func loadSinks(ctx context.Context, path string, log logger.Logger) (*sinks.Fanout, error) {
	if path == "" {
		return sinks.NewFanout(nil), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.InfoObj("sinks file not found; snapshot will only be printed", "sinks_file", path)
		return sinks.NewFanout(nil), nil
	}

	reg, err := sinks.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}
	enabled := reg.Enabled()
	built, err := sinks.BuildAll(ctx, sinks.DefaultBuilders(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})
	return sinks.NewFanout(built), nil
}

// Run fetches the three panels concurrently, prints the snapshot as YAML and
// publishes it. Panel failures are part of the snapshot, not returned errors;
// sink failures are logged. If ctx is cancelled before the panels settle,
// nothing is printed or published and ctx.Err() is returned.
func (r *SnapshotRunner) Run(ctx context.Context, opts SnapshotOptions) (panels.Snapshot, error) {
	if r == nil || r.panels == nil {
		return panels.Snapshot{}, fmt.Errorf("snapshot runner is not initialized")
	}
	if err := r.apply(opts); err != nil {
		return panels.Snapshot{}, err
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.panels.Weather.Refresh(gctx)
		return nil
	})
	g.Go(func() error {
		r.panels.Currency.Convert(gctx)
		return nil
	})
	g.Go(func() error {
		r.panels.Bitcoin.Convert(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return panels.Snapshot{}, err
	}
	// cancelled requests read as connectivity failures; drop the snapshot
	if err := ctx.Err(); err != nil {
		r.log.InfoObj("snapshot discarded", "reason", err.Error())
		return panels.Snapshot{}, err
	}

	snap := r.panels.Snapshot()
	r.log.InfoObj("snapshot taken", "snapshot_meta", map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
		"failed":     snap.Failed(),
	})

	if err := r.print(snap); err != nil {
		return snap, err
	}
	r.publish(ctx, snap)
	return snap, nil
}

// apply pushes the selections into the panels without fetching.
func (r *SnapshotRunner) apply(opts SnapshotOptions) error {
	if opts.City != "" {
		if err := r.panels.Weather.SetSelected(opts.City); err != nil {
			return err
		}
	}
	if opts.Currency != "" {
		if err := r.panels.Currency.Select(opts.Currency); err != nil {
			return err
		}
	}
	if opts.Amount != "" {
		r.panels.Currency.SetAmount(opts.Amount)
	}
	if opts.BTCAmount != "" {
		r.panels.Bitcoin.SetAmount(opts.BTCAmount)
	}
	return nil
}

// Watch takes a snapshot right away and then once per interval until ctx is
// cancelled. Failed runs are logged and retried on the next tick; a run cut
// short by cancellation ends the loop cleanly.
func (r *SnapshotRunner) Watch(ctx context.Context, opts SnapshotOptions, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}
	if _, err := r.Run(ctx, opts); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	r.log.InfoObj("snapshot loop starting", "snapshot_loop", map[string]any{
		"interval": interval.String(),
		"sinks":    r.fanout.Size(),
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoObj("snapshot loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if _, err := r.Run(ctx, opts); err != nil {
				if ctx.Err() != nil {
					r.log.InfoObj("snapshot loop exiting", "reason", ctx.Err())
					return nil
				}
				r.log.ErrorObj("scheduled snapshot failed", "error", err)
			}
		}
	}
}

// print writes snap as a YAML document; later documents get a separator.
func (r *SnapshotRunner) print(snap panels.Snapshot) error {
	if r.printed > 0 {
		if _, err := io.WriteString(r.out, "---\n"); err != nil {
			return fmt.Errorf("write separator: %w", err)
		}
	}
	r.printed++

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

func (r *SnapshotRunner) publish(ctx context.Context, snap panels.Snapshot) {
	if r.fanout.Size() == 0 {
		return
	}
	delivered, err := r.fanout.Publish(ctx, sinks.NewEvent(r.cfg.AppName, snap))
	if err != nil {
		r.log.ErrorObj("snapshot delivery failed", "sink_errors", map[string]any{
			"delivered": delivered,
			"sinks":     r.fanout.Size(),
			"error":     err.Error(),
		})
		return
	}
	r.log.InfoObj("snapshot delivered", "sinks_delivered", delivered)
}

// Close releases sink connections.
func (r *SnapshotRunner) Close() error {
	if r == nil {
		return nil
	}
	return r.fanout.Close()
}
