// Package service drives the outer check loop: run, record, sleep, repeat,
// until the shutdown token fires or run-once mode ends the loop.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"bytemomo/dnsblwatch/internal/domain"
	"bytemomo/dnsblwatch/internal/shutdown"
)

// CheckRunner is one scheduled pass over the configured zones and IPs.
type CheckRunner interface {
	Run(ctx context.Context, zones, ips []string) (domain.RunSummary, error)
}

type Service struct {
	Log      *logrus.Entry
	Runner   CheckRunner
	History  domain.HistoryStore // optional
	Token    *shutdown.Token
	Interval time.Duration
	RunOnce  bool
}

// Run executes check runs until shutdown. A failed run is logged and the loop
// continues to its next scheduled run; the wait between runs is interruptible
// so shutdown never blocks on the interval.
func (s *Service) Run(ctx context.Context, zones, ips []string) {
	for !s.Token.IsSet() {
		sum, err := s.Runner.Run(ctx, zones, ips)
		if err != nil {
			s.Log.WithError(err).Error("Check run failed")
		}

		if s.History != nil {
			if err := s.History.Record(sum); err != nil {
				s.Log.WithError(err).Error("Failed to record run history")
			}
		}

		if s.RunOnce {
			s.Log.Debug("Run-once mode enabled, exiting")
			return
		}

		s.Log.WithField("interval", s.Interval.String()).Info("Sleeping until next run")
		timer := time.NewTimer(s.Interval)
		select {
		case <-s.Token.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
