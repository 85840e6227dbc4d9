// Package sqlitehistory keeps an operational record of completed runs in a
// local sqlite database.
package sqlitehistory

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"bytemomo/dnsblwatch/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	started_at      TIMESTAMP NOT NULL,
	duration_ns     INTEGER NOT NULL,
	tasks_generated INTEGER NOT NULL,
	processed       INTEGER NOT NULL,
	listed_ips      INTEGER NOT NULL
);
`

type Store struct {
	db *sqlx.DB
}

// Open connects to (and if needed creates) the history database at path.
// Pass ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(sum domain.RunSummary) error {
	_, err := s.db.NamedExec(`
		INSERT INTO runs (run_id, started_at, duration_ns, tasks_generated, processed, listed_ips)
		VALUES (:run_id, :started_at, :duration_ns, :tasks_generated, :processed, :listed_ips)`,
		sum)
	if err != nil {
		return fmt.Errorf("record run %s: %w", sum.RunID, err)
	}
	return nil
}

// Recent returns up to n summaries, newest first.
func (s *Store) Recent(n int) ([]domain.RunSummary, error) {
	var runs []domain.RunSummary
	err := s.db.Select(&runs, `
		SELECT run_id, started_at, duration_ns, tasks_generated, processed, listed_ips
		FROM runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	for i := range runs {
		runs[i].StartedAt = runs[i].StartedAt.In(time.UTC)
	}
	return runs, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
