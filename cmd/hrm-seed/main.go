package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/hrm/internal/seed"
	"github.com/okian/hrm/pkg/logger"
)

// Default configuration constants.
const (
	defaultEmployees  = 100
	defaultManagers   = 10
	defaultPerManager = 5
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		employees  = flag.Int("employees", defaultEmployees, "Number of employees")
		managers   = flag.Int("managers", defaultManagers, "Number of managers")
		perManager = flag.Int("per-manager", defaultPerManager, "Employees assigned to each manager")
		token      = flag.String("token", "manager", "Manager marker in the third field")
		outputFile = flag.String("output", "", "Output file (default: hrm_seed_TIMESTAMP.txt)")
		baseURL    = flag.String("url", "", "Base URL of a running HRM API to import the file into")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verify     = flag.Bool("verify", false, "Bulk-load the file locally and check every record")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		Employees:    *employees,
		Managers:     *managers,
		PerManager:   *perManager,
		ManagerToken: *token,
		OutputFile:   *outputFile,
		URL:          *baseURL,
		Timeout:      *timeout,
		Verify:       *verify,
	}

	if _, err := seed.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
