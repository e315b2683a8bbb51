package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

// maxImportBytes bounds POST /import bodies.
const maxImportBytes = 1 << 20

// FilesHandler handles summary, report and import requests.
type FilesHandler struct {
	deps Dependencies
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(deps Dependencies) *FilesHandler {
	return &FilesHandler{deps: deps}
}

type importResponse struct {
	Added       int      `json:"added"`
	Skipped     int      `json:"skipped"`
	Diagnostics []string `json:"diagnostics"`
}

type writeResponse struct {
	Path string `json:"path"`
}

// HandleSummary handles GET /summary.
func (h *FilesHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.deps.Summary(r.Context()))
}

// HandleRenderReport handles GET /report.
func (h *FilesHandler) HandleRenderReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.deps.RenderReport(r.Context(), &buf); err != nil {
		writeFailure(w, Wrap("api.render_report", err))
		return
	}
	writeText(w, http.StatusOK, buf.String())
}

// HandleWriteReport handles POST /report, writing to the configured report file.
func (h *FilesHandler) HandleWriteReport(w http.ResponseWriter, r *http.Request) {
	path, err := h.deps.WriteReport(r.Context(), "")
	if err != nil {
		writeFailure(w, Wrap("api.write_report", err))
		return
	}
	writeJSON(w, http.StatusOK, writeResponse{Path: path})
}

// HandleWriteWorkbook handles POST /workbook, writing to the configured workbook file.
func (h *FilesHandler) HandleWriteWorkbook(w http.ResponseWriter, r *http.Request) {
	path, err := h.deps.WriteWorkbook(r.Context(), "")
	if err != nil {
		writeFailure(w, Wrap("api.write_workbook", err))
		return
	}
	writeJSON(w, http.StatusOK, writeResponse{Path: path})
}

// HandleImport handles POST /import. The body uses the bulk-load file format.
// The body is read in full before any record is committed, so an oversized
// body is rejected with 413 and leaves the directory unchanged.
func (h *FilesHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import"
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, WrapKind(op, ErrTooLarge, err))
			return
		}
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Import(r.Context(), bytes.NewReader(body))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, importResponse{
		Added:       res.Added,
		Skipped:     res.Skipped,
		Diagnostics: res.Messages(),
	})
}
