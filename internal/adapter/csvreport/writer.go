// Package csvreport writes the per-run report file. The file is created
// lazily on the first appended row, so a clean run leaves no report behind.
package csvreport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bytemomo/dnsblwatch/internal/domain"
)

const (
	fileTimeLayout = "20060102150405"
	rowTimeLayout  = "02 Jan 2006 15:04:05"
)

type state int

const (
	stateUnopened state = iota
	stateOpen
	stateClosed
)

// Writer is a report sink backed by a CSV file named after the run's start
// time. Append serializes concurrent callers and flushes every row before
// returning, so a crash loses at most the row in flight.
type Writer struct {
	dir       string
	startedAt time.Time

	mu    sync.Mutex
	state state
	file  *os.File
	csv   *csv.Writer
	path  string
}

// New builds a writer for a run that started at the given time. No file is
// created until the first Append.
func New(dir string, startedAt time.Time) *Writer {
	return &Writer{dir: dir, startedAt: startedAt}
}

// Factory returns a SinkFactory creating one writer per run in dir.
func Factory(dir string) domain.SinkFactory {
	return func(startedAt time.Time) domain.ReportSink {
		return New(dir, startedAt)
	}
}

func (w *Writer) Append(row domain.ReportRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case stateClosed:
		return fmt.Errorf("report %s: append after close", w.path)
	case stateUnopened:
		if err := w.open(); err != nil {
			return err
		}
	}

	record := []string{
		row.Timestamp.UTC().Format(rowTimeLayout),
		row.IP,
		row.Zone,
		row.Detail,
	}
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("report %s: write row: %w", w.path, err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("report %s: flush row: %w", w.path, err)
	}
	return nil
}

// Close flushes and closes the report if one was opened. Idempotent; a writer
// that never received a row closes without touching the filesystem.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != stateOpen {
		w.state = stateClosed
		return nil
	}
	w.state = stateClosed

	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()
	if flushErr != nil {
		return fmt.Errorf("report %s: flush on close: %w", w.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("report %s: close: %w", w.path, closeErr)
	}
	return nil
}

// Path returns the report file path, empty until the first row opened it.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// open transitions Unopened -> Open. Caller holds the lock.
func (w *Writer) open() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir %s: %w", w.dir, err)
	}
	name := fmt.Sprintf("report_%s.csv", w.startedAt.UTC().Format(fileTimeLayout))
	path := filepath.Join(w.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	w.file = file
	w.csv = csv.NewWriter(file)
	w.path = path
	w.state = stateOpen
	return nil
}
