package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/okian/hrm/internal/adapters/snapshot"
	"github.com/okian/hrm/internal/domain/model"
	"github.com/okian/hrm/pkg/metrics"
)

// Directory is the in-memory, append-only HRM record store.
//
// It is not safe for concurrent use; callers serialize access.
type Directory struct {
	employees []*model.Employee
	capacity  int
	loadOpts  []snapshot.Option
}

var _ Store = (*Directory)(nil)

// NewDirectory constructs an empty directory.
func NewDirectory(opts ...Option) *Directory {
	d := &Directory{}
	for _, opt := range opts {
		opt(d)
	}
	d.employees = make([]*model.Employee, 0, d.capacity)
	return d
}

// AddManager implements Store.AddManager.
func (d *Directory) AddManager(ctx context.Context, name string, salary int) (int, error) {
	return d.add(ctx, model.NewManager(name, salary))
}

// AddEmployee implements Store.AddEmployee.
func (d *Directory) AddEmployee(ctx context.Context, name string, salary int) (int, error) {
	return d.add(ctx, model.NewEmployee(name, salary))
}

func (d *Directory) add(_ context.Context, e *model.Employee) (int, error) {
	if d.find(e.Name) != nil {
		metrics.RecordOperation("add_"+e.Role.String(), metrics.ResultDuplicate)
		return 0, fmt.Errorf("%q: %w", e.Name, ErrDuplicateName)
	}
	d.employees = append(d.employees, e)
	metrics.RecordOperation("add_"+e.Role.String(), metrics.ResultOK)
	d.publishCounts()
	return len(d.employees), nil
}

// AssignManager implements Store.AssignManager.
func (d *Directory) AssignManager(_ context.Context, managerName, employeeName string) error {
	mgr, err := d.manager(managerName)
	if err != nil {
		metrics.RecordOperation("assign_manager", resultOf(err))
		return err
	}
	emp := d.find(employeeName)
	if emp == nil {
		metrics.RecordOperation("assign_manager", metrics.ResultNotFound)
		return fmt.Errorf("employee %q: %w", employeeName, ErrNotFound)
	}
	mgr.Manage(emp)
	metrics.RecordOperation("assign_manager", metrics.ResultOK)
	return nil
}

// AddCompetence implements Store.AddCompetence.
func (d *Directory) AddCompetence(_ context.Context, employeeName, competenceName string, level int) error {
	emp := d.find(employeeName)
	if emp == nil {
		metrics.RecordOperation("add_competence", metrics.ResultNotFound)
		return fmt.Errorf("employee %q: %w", employeeName, ErrNotFound)
	}
	emp.AddCompetence(model.NewCompetence(competenceName, level))
	metrics.RecordOperation("add_competence", metrics.ResultOK)
	return nil
}

// NumberOfEmployees implements Store.NumberOfEmployees.
func (d *Directory) NumberOfEmployees(_ context.Context) int {
	return len(d.employees)
}

// NumberOfManagers implements Store.NumberOfManagers.
func (d *Directory) NumberOfManagers(_ context.Context) int {
	count := 0
	for _, e := range d.employees {
		if e.IsManager() {
			count++
		}
	}
	return count
}

// NumberOfEmployeesManagedByManager implements Store.NumberOfEmployeesManagedByManager.
func (d *Directory) NumberOfEmployeesManagedByManager(_ context.Context, managerName string) (int, error) {
	mgr, err := d.manager(managerName)
	if err != nil {
		return 0, err
	}
	return len(mgr.Managed), nil
}

// ManagedEmployees implements Store.ManagedEmployees.
func (d *Directory) ManagedEmployees(_ context.Context, managerName string) ([]string, error) {
	mgr, err := d.manager(managerName)
	if err != nil {
		return nil, err
	}
	return mgr.ManagedNames(), nil
}

// Lookup implements Store.Lookup.
func (d *Directory) Lookup(_ context.Context, name string) (model.Entry, error) {
	for i, e := range d.employees {
		if e.Name == name {
			return e.View(i + 1), nil
		}
	}
	return model.Entry{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// Exists reports whether a record with name is present.
func (d *Directory) Exists(_ context.Context, name string) bool {
	return d.find(name) != nil
}

// Entries implements Store.Entries.
func (d *Directory) Entries(_ context.Context) []model.Entry {
	out := make([]model.Entry, 0, len(d.employees))
	for i, e := range d.employees {
		out = append(out, e.View(i+1))
	}
	return out
}

// Summary implements Store.Summary.
func (d *Directory) Summary(_ context.Context) string {
	var b strings.Builder
	b.WriteString("HRM System with ")
	b.WriteString(strconv.Itoa(len(d.employees)))
	b.WriteString(" employees\n")
	for i, e := range d.employees {
		fmt.Fprintf(&b, "%s (%d) with salary %d\n", e.Name, i+1, e.Salary)
	}
	return b.String()
}

// BulkLoad implements Store.BulkLoad.
func (d *Directory) BulkLoad(ctx context.Context, path string) (snapshot.Result, error) {
	return snapshot.Load(ctx, path, d, d.loadOpts...)
}

// Import implements Store.Import.
func (d *Directory) Import(ctx context.Context, r io.Reader) (snapshot.Result, error) {
	return snapshot.Read(ctx, r, d, d.loadOpts...)
}

// WriteReport implements Store.WriteReport.
func (d *Directory) WriteReport(ctx context.Context, path string) error {
	start := time.Now()
	err := snapshot.WriteReport(ctx, path, d.Entries(ctx))
	metrics.RecordReportWrite(snapshot.FormatText, err == nil, float64(time.Since(start).Milliseconds()))
	return err
}

// WriteWorkbook exports the records to an xlsx workbook at path.
func (d *Directory) WriteWorkbook(ctx context.Context, path string) error {
	start := time.Now()
	err := snapshot.WriteWorkbook(ctx, path, d.Entries(ctx))
	metrics.RecordReportWrite(snapshot.FormatWorkbook, err == nil, float64(time.Since(start).Milliseconds()))
	return err
}

// find returns the first record named name, or nil.
func (d *Directory) find(name string) *model.Employee {
	for _, e := range d.employees {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// manager resolves name to a record with manager capability.
func (d *Directory) manager(name string) (*model.Employee, error) {
	e := d.find(name)
	if e == nil {
		return nil, fmt.Errorf("manager %q: %w", name, ErrNotFound)
	}
	if !e.IsManager() {
		return nil, fmt.Errorf("%q: %w", name, ErrNotAManager)
	}
	return e, nil
}

func (d *Directory) publishCounts() {
	metrics.UpdateRecordsTotal(len(d.employees))
	metrics.UpdateManagersTotal(d.NumberOfManagers(context.Background()))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrNotAManager):
		return metrics.ResultNotAManager
	case errors.Is(err, ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrDuplicateName):
		return metrics.ResultDuplicate
	default:
		return metrics.ResultError
	}
}
