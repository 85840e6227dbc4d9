package domain

import "time"

// CheckTask is one probe of a single IP against a single DNSBL zone. Tasks
// carry no identity beyond their value pair; one task exists per (zone, ip)
// combination per run.
type CheckTask struct {
	IP   string
	Zone string
}

// Outcome is the result of a completed probe. Detail is only meaningful when
// Listed is true and carries the listing's DNS answer.
type Outcome struct {
	IP     string
	Zone   string
	Listed bool
	Detail string
}

// ReportRow is one line of the per-run CSV report.
type ReportRow struct {
	Timestamp time.Time
	IP        string
	Zone      string
	Detail    string
}

// Listing pairs an IP with the zones that flagged it, in the order the
// listings were observed.
type Listing struct {
	IP    string
	Zones []string
}

// Delivery reports the outcome of sending the alert mail to one recipient.
type Delivery struct {
	Recipient string
	Err       error
}

// RunSummary describes one full pass over the zone/IP cross product.
type RunSummary struct {
	RunID          string        `db:"run_id"`
	StartedAt      time.Time     `db:"started_at"`
	Duration       time.Duration `db:"duration_ns"`
	TasksGenerated int           `db:"tasks_generated"`
	Processed      int           `db:"processed"`
	ListedIPs      int           `db:"listed_ips"`
}
