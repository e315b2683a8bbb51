package seed

import "time"

// Config holds configuration for seed generation.
type Config struct {
	Employees    int           // Number of plain employees
	Managers     int           // Number of managers
	PerManager   int           // Employees assigned to each manager
	ManagerToken string        // Marker written in the third field of manager lines
	OutputFile   string        // Output file; generated when empty
	URL          string        // Base URL of a running HRM API; the file is imported when set
	Timeout      time.Duration // HTTP request timeout
	Verify       bool          // Bulk-load the file locally and check the result
}

// Person is one generated record.
type Person struct {
	Name    string
	Salary  int
	Manager bool
	Managed []string
}

// Stats holds generation statistics.
type Stats struct {
	Employees int
	Managers  int
	Lines     int
	Imported  int
	Rejected  int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
