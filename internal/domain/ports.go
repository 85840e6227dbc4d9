package domain

import (
	"context"
	"time"
)

// Prober checks a single IP against a single DNSBL zone. Implementations must
// be safe for concurrent use; each call is independent.
type Prober interface {
	Check(ctx context.Context, ip, zone string) (Outcome, error)
}

// ReportSink is the per-run report. Append must serialize concurrent callers
// and flush the row before returning; Close is idempotent and a no-op when
// nothing was ever appended.
type ReportSink interface {
	Append(row ReportRow) error
	Close() error
}

// SinkFactory builds the report sink for a run starting at the given time.
type SinkFactory func(startedAt time.Time) ReportSink

// Notifier delivers the end-of-run alert for the listed IPs, returning one
// Delivery per recipient.
type Notifier interface {
	Send(listed []Listing) []Delivery
}

// HistoryStore records completed run summaries.
type HistoryStore interface {
	Record(sum RunSummary) error
}
