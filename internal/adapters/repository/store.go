// Package repository defines the HRM record store interface and errors.
package repository

import (
	"context"
	"io"

	"github.com/okian/hrm/internal/adapters/snapshot"
	"github.com/okian/hrm/internal/domain/model"
)

// Store provides read/write access to the HRM records.
//
// Record numbers are 1-based positions in insertion order. They are computed
// when queried and never stored.
type Store interface {
	// AddManager appends a manager and returns its number.
	// Returns ErrDuplicateName if the name is taken.
	AddManager(ctx context.Context, name string, salary int) (int, error)
	// AddEmployee appends a plain employee and returns its number.
	// Returns ErrDuplicateName if the name is taken.
	AddEmployee(ctx context.Context, name string, salary int) (int, error)

	// AssignManager records employeeName as managed by managerName.
	// Returns ErrNotFound or ErrNotAManager.
	AssignManager(ctx context.Context, managerName, employeeName string) error

	// AddCompetence appends a competence with the level clamped to [0,2].
	// Returns ErrNotFound if the employee is unknown.
	AddCompetence(ctx context.Context, employeeName, competenceName string, level int) error

	// NumberOfEmployees counts all records, managers included.
	NumberOfEmployees(ctx context.Context) int
	// NumberOfManagers counts records with manager capability.
	NumberOfManagers(ctx context.Context) int
	// NumberOfEmployeesManagedByManager returns the size of a manager's managed list.
	NumberOfEmployeesManagedByManager(ctx context.Context, managerName string) (int, error)
	// ManagedEmployees returns the names a manager manages, in assignment order.
	ManagedEmployees(ctx context.Context, managerName string) ([]string, error)

	// Lookup returns the view of a single record. Returns ErrNotFound.
	Lookup(ctx context.Context, name string) (model.Entry, error)
	// Exists reports whether a record with name is present.
	Exists(ctx context.Context, name string) bool
	// Entries returns views of all records in insertion order.
	Entries(ctx context.Context) []model.Entry
	// Summary renders every record with its number and salary.
	Summary(ctx context.Context) string

	// BulkLoad reads records from a bulk-load file.
	// Returns an error wrapping snapshot.ErrUnreadable if the file cannot be opened.
	BulkLoad(ctx context.Context, path string) (snapshot.Result, error)
	// Import reads bulk-load content from r.
	Import(ctx context.Context, r io.Reader) (snapshot.Result, error)
	// WriteReport writes the competence report to path.
	WriteReport(ctx context.Context, path string) error
	// WriteWorkbook exports the records to an xlsx workbook at path.
	WriteWorkbook(ctx context.Context, path string) error
}
