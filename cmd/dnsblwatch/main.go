package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"bytemomo/dnsblwatch/internal/adapter/csvlists"
	"bytemomo/dnsblwatch/internal/adapter/csvreport"
	"bytemomo/dnsblwatch/internal/adapter/logger"
	"bytemomo/dnsblwatch/internal/adapter/smtpalert"
	"bytemomo/dnsblwatch/internal/adapter/sqlitehistory"
	"bytemomo/dnsblwatch/internal/checker"
	"bytemomo/dnsblwatch/internal/config"
	"bytemomo/dnsblwatch/internal/domain"
	"bytemomo/dnsblwatch/internal/runner"
	"bytemomo/dnsblwatch/internal/service"
	"bytemomo/dnsblwatch/internal/shutdown"
)

var version = "1.0.0"

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "Path to configuration YAML")
		once        = flag.Bool("once", false, "Run a single check pass and exit")
		versionFlag = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("dnsblwatch v%s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if *once {
		cfg.RunOnce = true
	}

	logger.SetLoggerToStructured(logger.ParseLevel(cfg.Log.Level), cfg.Log.File)

	if err := run(cfg); err != nil {
		logrus.WithError(err).Fatal("Service failed")
	}
}

func run(cfg *config.Config) error {
	log := logrus.WithField("service", "dnsblwatch")
	log.WithField("version", version).Info("DNSBL watch service started")

	zones, err := csvlists.Load(cfg.ServersFile)
	if err != nil {
		return fmt.Errorf("load server list: %w", err)
	}
	ips, err := csvlists.Load(cfg.IPsFile)
	if err != nil {
		return fmt.Errorf("load IP list: %w", err)
	}
	log.WithFields(logrus.Fields{"zones": len(zones), "ips": len(ips)}).Info("Loaded input lists")

	// The engine only consumes the token; signal registration stays out here.
	token := shutdown.NewToken()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("Shutdown requested")
		token.Signal()
	}()

	var notifier domain.Notifier
	if cfg.Email.Enabled {
		notifier = &smtpalert.Mailer{
			Host:       cfg.Email.Host,
			Port:       cfg.Email.Port,
			Username:   cfg.Email.Username,
			Password:   cfg.Email.Password,
			From:       cfg.Email.From,
			Recipients: cfg.Email.Recipients,
		}
	}

	var history domain.HistoryStore
	if cfg.HistoryFile != "" {
		store, err := sqlitehistory.Open(cfg.HistoryFile)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer store.Close()
		history = store
	}

	checks := &runner.Runner{
		Log:      log,
		Prober:   checker.New(cfg.Nameserver, cfg.QueryTimeout),
		NewSink:  csvreport.Factory(cfg.ReportDir),
		Notifier: notifier,
		Token:    token,
		Options: runner.Options{
			Threads:      cfg.ThreadCount,
			EmailEnabled: cfg.Email.Enabled,
		},
	}

	svc := &service.Service{
		Log:      log,
		Runner:   checks,
		History:  history,
		Token:    token,
		Interval: cfg.Interval,
		RunOnce:  cfg.RunOnce,
	}
	svc.Run(context.Background(), zones, ips)

	log.Info("DNSBL watch service shutdown complete")
	return nil
}
