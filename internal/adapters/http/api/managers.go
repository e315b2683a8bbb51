package api

import (
	"errors"
	"net/http"
	"strings"
)

// ManagersHandler handles manager assignment requests.
type ManagersHandler struct {
	deps Dependencies
}

// NewManagersHandler creates a new managers handler.
func NewManagersHandler(deps Dependencies) *ManagersHandler {
	return &ManagersHandler{deps: deps}
}

type assignRequest struct {
	Employee string `json:"employee"`
}

type managedResponse struct {
	Count     int      `json:"count"`
	Employees []string `json:"employees"`
}

// HandleAssign handles POST /managers/{name}/employees.
func (h *ManagersHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	const op = "api.assign_manager"
	var req assignRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	if strings.TrimSpace(req.Employee) == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing employee")))
		return
	}
	if err := h.deps.AssignManager(r.Context(), r.PathValue("name"), req.Employee); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /managers/{name}/employees.
func (h *ManagersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_managed"
	name := r.PathValue("name")
	count, err := h.deps.NumberOfEmployeesManagedByManager(r.Context(), name)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	names, err := h.deps.ManagedEmployees(r.Context(), name)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, managedResponse{Count: count, Employees: names})
}
