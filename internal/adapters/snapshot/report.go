package snapshot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/hrm/internal/domain/model"
)

// Report formats, used as metric labels.
const (
	FormatText     = "text"
	FormatWorkbook = "xlsx"
)

// ReportHeader is the first line of every text report.
const ReportHeader = "### HRM System Summary ###"

// RenderReport writes the competence report for entries to w.
func RenderReport(w io.Writer, entries []model.Entry) error {
	if _, err := io.WriteString(w, ReportHeader+"\n"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := io.WriteString(w, reportLine(e)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func reportLine(e model.Entry) string {
	head := e.Name + " (" + strconv.Itoa(e.Number) + ")"
	if len(e.Competences) == 0 {
		return head + " has no competences"
	}
	parts := make([]string, len(e.Competences))
	for i, c := range e.Competences {
		parts[i] = c.String()
	}
	return head + " has competences: " + strings.Join(parts, ", ")
}

// WriteReport overwrites path with the competence report. The file is closed
// on every return path; failures wrap ErrWriteReport.
func WriteReport(_ context.Context, path string, entries []model.Entry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrWriteReport, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w: %w", path, ErrWriteReport, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := RenderReport(bw, entries); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrWriteReport, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrWriteReport, err)
	}
	return nil
}
