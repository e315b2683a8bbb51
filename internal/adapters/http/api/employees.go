package api

import (
	"errors"
	"net/http"
	"strings"
)

// EmployeesHandler handles employee and competence requests.
type EmployeesHandler struct {
	deps Dependencies
}

// NewEmployeesHandler creates a new employees handler.
func NewEmployeesHandler(deps Dependencies) *EmployeesHandler {
	return &EmployeesHandler{deps: deps}
}

type addEmployeeRequest struct {
	Name    string `json:"name"`
	Salary  *int   `json:"salary"`
	Manager bool   `json:"manager"`
}

func (e addEmployeeRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return errors.New("missing name")
	case e.Salary == nil:
		return errors.New("missing salary")
	}
	return nil
}

type addEmployeeResponse struct {
	Number int `json:"number"`
}

type addCompetenceRequest struct {
	Name  string `json:"name"`
	Level *int   `json:"level"`
}

func (c addCompetenceRequest) validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return errors.New("missing competence name")
	case c.Level == nil:
		return errors.New("missing level")
	}
	return nil
}

// HandleAdd handles POST /employees. A true "manager" field adds a manager.
func (h *EmployeesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_employee"
	var req addEmployeeRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	add := h.deps.AddEmployee
	if req.Manager {
		add = h.deps.AddManager
	}
	n, err := add(r.Context(), req.Name, *req.Salary)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, addEmployeeResponse{Number: n})
}

// HandleList handles GET /employees.
func (h *EmployeesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Entries(r.Context()))
}

// HandleGet handles GET /employees/{name}.
func (h *EmployeesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.deps.Lookup(r.Context(), r.PathValue("name"))
	if err != nil {
		writeFailure(w, Wrap("api.get_employee", err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleAddCompetence handles POST /employees/{name}/competences.
func (h *EmployeesHandler) HandleAddCompetence(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_competence"
	var req addCompetenceRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.AddCompetence(r.Context(), r.PathValue("name"), req.Name, *req.Level); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
