package seed

import "os"

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`HRM Seed Tool
=============

Generates a bulk-load file of employees and managers.

Usage:
  go run ./cmd/hrm-seed [options]

Options:
  -employees int
        Number of employees (default 100)
  -managers int
        Number of managers (default 10)
  -per-manager int
        Employees assigned to each manager (default 5)
  -token string
        Manager marker in the third field (default "manager")
  -output string
        Output file (default: hrm_seed_TIMESTAMP.txt)
  -url string
        Base URL of a running HRM API to import the file into
  -timeout duration
        HTTP request timeout (default 30s)
  -verify
        Bulk-load the file locally and check every record
  -help
        Show this help message

Examples:
  go run ./cmd/hrm-seed -employees 1000 -managers 50 -verify
  go run ./cmd/hrm-seed -output seed.txt -url http://localhost:9080
`)
}
