// Package runner holds the check orchestrator: it fans the zone/IP cross
// product out over a bounded worker pool, aggregates outcomes in completion
// order into the report and the listed index, and honours the shared shutdown
// token at every generation and dispatch step.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"bytemomo/dnsblwatch/internal/domain"
	"bytemomo/dnsblwatch/internal/shutdown"
)

type Options struct {
	Threads      int
	EmailEnabled bool
}

// Runner executes one check run at a time. All collaborators are injected;
// the sink is rebuilt per run because the report file belongs to a single run.
type Runner struct {
	Log      *logrus.Entry
	Prober   domain.Prober
	NewSink  domain.SinkFactory
	Notifier domain.Notifier
	Token    *shutdown.Token
	Options  Options
}

// Run checks every IP against every zone and returns the run summary. A run
// that observes shutdown still drains in-flight probes and aggregates their
// outcomes; it only stops generating and dispatching new work. Per-probe
// failures are logged and skipped; only pool dispatch or report write
// failures surface as the returned error.
func (r *Runner) Run(ctx context.Context, zones, ips []string) (domain.RunSummary, error) {
	start := time.Now().UTC()
	sum := domain.RunSummary{RunID: uuid.NewString(), StartedAt: start}

	threads := r.Options.Threads
	if threads < 1 {
		threads = 1
	}

	log := r.Log.WithField("run_id", sum.RunID)
	log.WithFields(logrus.Fields{
		"zones":   len(zones),
		"ips":     len(ips),
		"threads": threads,
	}).Info("Starting blacklist check run")

	// Build the cross product, stopping as soon as shutdown is observed.
	// Tasks generated before the signal are still dispatched below.
	tasks := make([]domain.CheckTask, 0, len(zones)*len(ips))
generate:
	for _, zone := range zones {
		if r.Token.IsSet() {
			break
		}
		for _, ip := range ips {
			if r.Token.IsSet() {
				break generate
			}
			tasks = append(tasks, domain.CheckTask{IP: ip, Zone: zone})
		}
	}
	sum.TasksGenerated = len(tasks)

	sink := r.NewSink(start)
	index := NewListedIndex()
	agg := &aggregator{sink: sink, index: index}

	outcomes := make(chan domain.Outcome, threads)

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(threads, func(item interface{}) {
		task := item.(domain.CheckTask)
		defer wg.Done()
		if r.Token.IsSet() {
			return
		}
		out, err := r.Prober.Check(ctx, task.IP, task.Zone)
		if err != nil {
			log.WithFields(logrus.Fields{
				"ip":    task.IP,
				"zone":  task.Zone,
				"error": err,
			}).Error("Blacklist check failed")
			return
		}
		outcomes <- out
	})
	if err != nil {
		_ = sink.Close()
		return sum, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	// Dispatch from a separate goroutine so outcomes can be aggregated as
	// they complete rather than in submission order.
	var dispatchErr error
	go func() {
		defer close(outcomes)
		for _, task := range tasks {
			if r.Token.IsSet() {
				break
			}
			wg.Add(1)
			if err := pool.Invoke(task); err != nil {
				wg.Done()
				dispatchErr = fmt.Errorf("dispatch %s against %s: %w", task.IP, task.Zone, err)
				break
			}
		}
		wg.Wait()
	}()

	// Drain. Outcomes produced by probes that were already running when the
	// token fired are aggregated normally so no real hit is discarded.
	var reportErr error
	for out := range outcomes {
		sum.Processed++
		if !out.Listed {
			log.WithFields(logrus.Fields{"ip": out.IP, "zone": out.Zone}).Debug("Clean: not listed")
			continue
		}
		if err := agg.record(out); err != nil {
			if reportErr == nil {
				reportErr = err
				log.WithError(err).Error("Report write failed, dropping further rows")
			}
			continue
		}
		log.WithFields(logrus.Fields{
			"ip":     out.IP,
			"zone":   out.Zone,
			"detail": out.Detail,
		}).Info("Dirty: listed")
	}

	if err := sink.Close(); err != nil && reportErr == nil {
		reportErr = err
	}

	sum.ListedIPs = index.Len()
	sum.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"tasks":     sum.TasksGenerated,
		"processed": sum.Processed,
		"listed":    sum.ListedIPs,
		"duration":  sum.Duration,
	}).Info("Check run finished")

	if r.Options.EmailEnabled && r.Notifier != nil && index.Len() > 0 {
		for _, delivery := range r.Notifier.Send(index.Items()) {
			if delivery.Err != nil {
				log.WithFields(logrus.Fields{
					"recipient": delivery.Recipient,
					"error":     delivery.Err,
				}).Error("Mailer error")
			}
		}
	}

	if dispatchErr != nil {
		return sum, dispatchErr
	}
	return sum, reportErr
}

// aggregator is the run's single mutable critical section: a report row and
// its index entry are recorded under one lock so the two never diverge. After
// the first write failure it stops recording entirely, which keeps the
// row/index invariant, and keeps returning the latched error.
type aggregator struct {
	mu     sync.Mutex
	sink   domain.ReportSink
	index  *ListedIndex
	failed error
}

func (a *aggregator) record(out domain.Outcome) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failed != nil {
		return a.failed
	}

	row := domain.ReportRow{
		Timestamp: time.Now().UTC(),
		IP:        out.IP,
		Zone:      out.Zone,
		Detail:    out.Detail,
	}
	if err := a.sink.Append(row); err != nil {
		a.failed = err
		return err
	}
	a.index.record(out.IP, out.Zone)
	return nil
}
