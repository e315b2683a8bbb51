// Package seed generates bulk-load files for demos and load tests.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/hrm/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run generates the seed file and optionally verifies and imports it.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	people, err := Generate(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	stats.Employees = cfg.Employees
	stats.Managers = cfg.Managers

	filename := cfg.OutputFile
	if filename == "" {
		filename = "hrm_seed_" + time.Now().Format("20060102_150405") + ".txt"
		cfg.OutputFile = filename
	}
	if stats.Lines, err = save(ctx, filename, people, cfg.ManagerToken); err != nil {
		return nil, err
	}

	if cfg.Verify {
		if err := Verify(ctx, filename, people, cfg.ManagerToken); err != nil {
			return nil, err
		}
	}

	if cfg.URL != "" {
		res, err := Import(ctx, cfg.URL, filename, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		stats.Imported = res.Added
		stats.Rejected = res.Skipped
		for _, d := range res.Diagnostics {
			logger.Get().Warn(ctx, "import diagnostic", logger.String("diagnostic", d))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Get().Info(ctx, "seed completed",
		logger.String("file", filename),
		logger.Int("employees", stats.Employees),
		logger.Int("managers", stats.Managers),
		logger.Int("lines", stats.Lines),
		logger.Int("imported", stats.Imported),
		logger.Int("rejected", stats.Rejected),
		logger.String("duration", stats.Duration.String()))
	return stats, nil
}

// save writes people to filename, creating its directory.
func save(ctx context.Context, filename string, people []Person, managerToken string) (int, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close file", logger.Error(err))
		}
	}()

	lines, err := Write(file, people, managerToken)
	if err != nil {
		return lines, err
	}
	logger.Get().Info(ctx, "seed file written", logger.String("filename", filename))
	return lines, nil
}
