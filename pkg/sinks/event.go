package sinks

import (
	"strconv"
	"time"

	"github.com/climapyg/climapyg-dashboard/pkg/panels"
)

// Event represents the payload published downstream.
type Event struct {
	Source      string          `json:"source"`
	Snapshot    panels.Snapshot `json:"snapshot"`
	PublishedAt time.Time       `json:"published_at"`
}

// NewEvent wraps a snapshot for publishing.
func NewEvent(source string, snap panels.Snapshot) Event {
	return Event{
		Source:      source,
		Snapshot:    snap,
		PublishedAt: time.Now().UTC(),
	}
}

// attributes returns the routing attributes queue and topic sinks attach.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"source":   e.Source,
		"city":     e.Snapshot.Weather.City,
		"currency": e.Snapshot.Currency.Code,
		"failed":   strconv.FormatBool(e.Snapshot.Failed()),
	}
}
