// Package backup periodically snapshots the sqlite database and ships
// it to object storage. It is best-effort: failures are logged and the
// next tick tries again.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"todo-server/internal/storage"
)

// Config controls snapshot destination and cadence.
type Config struct {
	Bucket    string
	KeyPrefix string
	Interval  time.Duration
	Logger    *logrus.Logger
}

// Runner drives the snapshot loop over an open sqlite handle.
type Runner struct {
	db      *sql.DB
	storage storage.Service
	cfg     Config
	done    chan struct{}
}

func NewRunner(db *sql.DB, store storage.Service, cfg Config) *Runner {
	return &Runner{
		db:      db,
		storage: store,
		cfg:     cfg,
		done:    make(chan struct{}),
	}
}

// Start launches the periodic snapshot loop. It returns immediately;
// the loop stops when ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	interval := r.cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := r.Snapshot(ctx); err != nil {
					r.cfg.Logger.Warnf("backup snapshot: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Wait blocks until the snapshot loop has exited.
func (r *Runner) Wait() {
	<-r.done
}

// Snapshot writes a consistent copy of the database via VACUUM INTO and
// uploads it under a timestamped key.
func (r *Runner) Snapshot(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "todo-backup-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	snapshotPath := filepath.Join(dir, "snapshot.db")
	if _, err := r.db.ExecContext(ctx, `VACUUM INTO ?`, snapshotPath); err != nil {
		return fmt.Errorf("vacuum into snapshot: %w", err)
	}

	file, err := os.Open(snapshotPath)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("todo-%s.db", time.Now().UTC().Format("20060102T150405Z"))
	location, err := r.storage.Upload(ctx, key, file, storage.UploadOptions{
		Bucket:    r.cfg.Bucket,
		KeyPrefix: r.cfg.KeyPrefix,
	})
	if err != nil {
		return err
	}

	r.cfg.Logger.Infof("database backed up to %s", location)
	return nil
}
