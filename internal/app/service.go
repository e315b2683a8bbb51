// Package service provides the HRM application service shared by the
// console menu and the HTTP API.
package service

import (
	"context"
	"io"
	"sync"

	repository "github.com/okian/hrm/internal/adapters/repository"
	"github.com/okian/hrm/internal/adapters/snapshot"
	"github.com/okian/hrm/internal/domain/model"
	"github.com/okian/hrm/pkg/logger"
)

// Service serializes access to the record store and logs every mutation.
// The store itself assumes a single caller.
type Service struct {
	mu sync.Mutex

	store repository.Store

	// Configuration
	seedFile     string
	reportFile   string
	workbookFile string
	managerToken string

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the default in-memory directory.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeedFile bulk-loads path when the service starts.
func WithSeedFile(path string) Option {
	return func(s *Service) { s.seedFile = path }
}

// WithReportFile sets the report destination used when no path is given.
func WithReportFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.reportFile = path
		}
	}
}

// WithWorkbookFile sets the workbook destination used when no path is given.
func WithWorkbookFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.workbookFile = path
		}
	}
}

// WithManagerToken sets the bulk-load marker for manager lines.
func WithManagerToken(token string) Option {
	return func(s *Service) {
		if token != "" {
			s.managerToken = token
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		reportFile:   "hrm_report.txt",
		workbookFile: "hrm_report.xlsx",
		managerToken: "manager",
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewDirectory(repository.WithLoadOptions(
			snapshot.WithLogger(s.logger),
			snapshot.WithManagerToken(s.managerToken),
		))
	}
	return s
}

// Start loads the seed file, if any. A missing or unreadable seed file is an error.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.seedFile != "" {
		res, err := s.store.BulkLoad(ctx, s.seedFile)
		if err != nil {
			s.logger.Error(ctx, "seed load failed", logger.String("path", s.seedFile), logger.Error(err))
			return err
		}
		s.logger.Info(ctx, "seed loaded",
			logger.String("path", s.seedFile),
			logger.Int("added", res.Added),
			logger.Int("rejected", len(res.Diagnostics)),
		)
	}
	s.started = true
	s.logger.Info(ctx, "hrm service started", logger.Int("employees", s.store.NumberOfEmployees(ctx)))
	return nil
}

// Stop marks the service stopped. Records stay in memory.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "hrm service stopped")
}

// AddManager adds a manager and returns its number.
func (s *Service) AddManager(ctx context.Context, name string, salary int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.AddManager(ctx, name, salary)
	s.logResult(ctx, "manager added", err, logger.String("name", name), logger.Int("number", n))
	return n, err
}

// AddEmployee adds a plain employee and returns its number.
func (s *Service) AddEmployee(ctx context.Context, name string, salary int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.AddEmployee(ctx, name, salary)
	s.logResult(ctx, "employee added", err, logger.String("name", name), logger.Int("number", n))
	return n, err
}

// AssignManager makes managerName the manager of employeeName.
func (s *Service) AssignManager(ctx context.Context, managerName, employeeName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.AssignManager(ctx, managerName, employeeName)
	s.logResult(ctx, "manager assigned", err, logger.String("manager", managerName), logger.String("employee", employeeName))
	return err
}

// AddCompetence adds a competence to an employee.
func (s *Service) AddCompetence(ctx context.Context, employeeName, competenceName string, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.AddCompetence(ctx, employeeName, competenceName, level)
	s.logResult(ctx, "competence added", err,
		logger.String("employee", employeeName),
		logger.String("competence", competenceName),
		logger.Int("level", model.ClampLevel(level)),
	)
	return err
}

// NumberOfEmployees counts all records.
func (s *Service) NumberOfEmployees(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.NumberOfEmployees(ctx)
}

// NumberOfManagers counts managers.
func (s *Service) NumberOfManagers(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.NumberOfManagers(ctx)
}

// NumberOfEmployeesManagedByManager counts the employees managed by managerName.
func (s *Service) NumberOfEmployeesManagedByManager(ctx context.Context, managerName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.NumberOfEmployeesManagedByManager(ctx, managerName)
}

// ManagedEmployees lists the employees managed by managerName.
func (s *Service) ManagedEmployees(ctx context.Context, managerName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ManagedEmployees(ctx, managerName)
}

// Lookup returns a single record view.
func (s *Service) Lookup(ctx context.Context, name string) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Lookup(ctx, name)
}

// Entries returns all record views.
func (s *Service) Entries(ctx context.Context) []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Entries(ctx)
}

// Summary renders all records with number and salary.
func (s *Service) Summary(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Summary(ctx)
}

// BulkLoad reads records from path.
func (s *Service) BulkLoad(ctx context.Context, path string) (snapshot.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.store.BulkLoad(ctx, path)
	if err != nil {
		s.logger.Warn(ctx, "bulk load failed", logger.String("path", path), logger.Error(err))
	}
	return res, err
}

// Import reads bulk-load content from r.
func (s *Service) Import(ctx context.Context, r io.Reader) (snapshot.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.store.Import(ctx, r)
	if err != nil {
		s.logger.Warn(ctx, "import failed", logger.Error(err))
	}
	return res, err
}

// WriteReport writes the competence report to path, or to the configured
// report file when path is empty. It returns the path written.
func (s *Service) WriteReport(ctx context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		path = s.reportFile
	}
	err := s.store.WriteReport(ctx, path)
	s.logResult(ctx, "report written", err, logger.String("path", path))
	return path, err
}

// WriteWorkbook exports an xlsx workbook to path, or to the configured
// workbook file when path is empty. It returns the path written.
func (s *Service) WriteWorkbook(ctx context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		path = s.workbookFile
	}
	err := s.store.WriteWorkbook(ctx, path)
	s.logResult(ctx, "workbook written", err, logger.String("path", path))
	return path, err
}

// RenderReport writes the competence report to w.
func (s *Service) RenderReport(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	entries := s.store.Entries(ctx)
	s.mu.Unlock()
	return snapshot.RenderReport(w, entries)
}

// GetStats returns record counts.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]interface{}{
		"employees": s.store.NumberOfEmployees(ctx),
		"managers":  s.store.NumberOfManagers(ctx),
		"started":   s.started,
	}
}

func (s *Service) logResult(ctx context.Context, msg string, err error, fields ...logger.Field) {
	if err != nil {
		s.logger.Warn(ctx, msg+" failed", append(fields, logger.Error(err))...)
		return
	}
	s.logger.Info(ctx, msg, fields...)
}
