// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	repository "github.com/okian/hrm/internal/adapters/repository"
	"github.com/okian/hrm/internal/adapters/snapshot"
	"github.com/okian/hrm/internal/domain/model"
	"github.com/okian/hrm/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AddEmployee(ctx context.Context, name string, salary int) (int, error)
	AddManager(ctx context.Context, name string, salary int) (int, error)
	AssignManager(ctx context.Context, managerName, employeeName string) error
	AddCompetence(ctx context.Context, employeeName, competenceName string, level int) error

	NumberOfEmployeesManagedByManager(ctx context.Context, managerName string) (int, error)
	ManagedEmployees(ctx context.Context, managerName string) ([]string, error)
	Lookup(ctx context.Context, name string) (model.Entry, error)
	Entries(ctx context.Context) []model.Entry
	Summary(ctx context.Context) string

	Import(ctx context.Context, r io.Reader) (snapshot.Result, error)
	RenderReport(ctx context.Context, w io.Writer) error
	WriteReport(ctx context.Context, path string) (string, error)
	WriteWorkbook(ctx context.Context, path string) (string, error)
}

// Server wires HTTP routes for the HRM API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	employeesHandler *EmployeesHandler
	managersHandler  *ManagersHandler
	filesHandler     *FilesHandler
	logger           logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		employeesHandler: NewEmployeesHandler(deps),
		managersHandler:  NewManagersHandler(deps),
		filesHandler:     NewFilesHandler(deps),
		logger:           log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	handle := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.logger))
	}

	handle("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	handle("GET /stats", "stats", s.statsHandler.HandleStats)

	handle("POST /employees", "employees", s.employeesHandler.HandleAdd)
	handle("GET /employees", "employees", s.employeesHandler.HandleList)
	handle("GET /employees/{name}", "employee", s.employeesHandler.HandleGet)
	handle("POST /employees/{name}/competences", "competences", s.employeesHandler.HandleAddCompetence)

	handle("POST /managers/{name}/employees", "managed", s.managersHandler.HandleAssign)
	handle("GET /managers/{name}/employees", "managed", s.managersHandler.HandleList)

	handle("GET /summary", "summary", s.filesHandler.HandleSummary)
	handle("GET /report", "report", s.filesHandler.HandleRenderReport)
	handle("POST /report", "report", s.filesHandler.HandleWriteReport)
	handle("POST /workbook", "workbook", s.filesHandler.HandleWriteWorkbook)
	handle("POST /import", "import", s.filesHandler.HandleImport)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps an error kind to its HTTP status.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrDuplicateName):
		writeError(w, http.StatusConflict, "duplicate_name", err)
	case errors.Is(err, repository.ErrNotAManager):
		writeError(w, http.StatusUnprocessableEntity, "not_a_manager", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, snapshot.ErrUnreadable), errors.Is(err, snapshot.ErrWriteReport):
		writeError(w, http.StatusInternalServerError, "io_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decodeJSON reads a single JSON object into v.
func decodeJSON(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
