package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"mockupgen/internal/infra"
)

// Sweeper deletes persisted mockups once they outlive the retention window.
// It is an explicit scheduled task owned by the process lifecycle: Start
// launches the ticker goroutine and the context handed to it stops the
// sweeper on shutdown.
type Sweeper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   *infra.Logger
}

// NewSweeper configures a sweeper over dir removing files older than maxAge
// every interval.
func NewSweeper(dir string, maxAge, interval time.Duration, logger *infra.Logger) *Sweeper {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Sweeper{dir: dir, maxAge: maxAge, interval: interval, logger: logger}
}

// Start runs the periodic sweep in a background goroutine until ctx is
// canceled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("sweeper: stopped")
				return
			case <-ticker.C:
				s.Sweep(time.Now())
			}
		}
	}()
}

// Sweep removes every file in the directory whose modification time is older
// than the retention window, and reports how many were removed. The sweep is
// best-effort: per-file failures — including files another process deleted
// first — are logged and skipped without aborting the rest of the pass.
func (s *Sweeper) Sweep(now time.Time) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn().Err(err).Str("dir", s.dir).Msg("sweeper: list directory failed")
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) <= s.maxAge {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn().Err(err).Str("file", entry.Name()).Msg("sweeper: delete failed")
			}
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("sweeper: expired mockups deleted")
	}
	return removed
}
