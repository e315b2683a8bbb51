package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hrm/internal/domain/model"
)

// Sheet names of the exported workbook.
const (
	SheetEmployees   = "Employees"
	SheetCompetences = "Competences"
)

var (
	employeeHeader   = []interface{}{"Number", "Name", "Salary", "Role", "Manages"}
	competenceHeader = []interface{}{"Number", "Employee", "Competence", "Level"}
)

// WriteWorkbook exports entries to an xlsx file with one sheet for the
// records and one for their competences. Failures wrap ErrWriteReport.
func WriteWorkbook(_ context.Context, path string, entries []model.Entry) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w: %w", path, ErrWriteReport, cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetEmployees); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	if _, err := f.NewSheet(SheetCompetences); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}

	if err := setRow(f, SheetEmployees, 1, employeeHeader); err != nil {
		return err
	}
	if err := setRow(f, SheetCompetences, 1, competenceHeader); err != nil {
		return err
	}

	compRow := 2
	for i, e := range entries {
		row := []interface{}{e.Number, e.Name, e.Salary, e.Role, strings.Join(e.Managed, ", ")}
		if err := setRow(f, SheetEmployees, i+2, row); err != nil {
			return err
		}
		for _, c := range e.Competences {
			if err := setRow(f, SheetCompetences, compRow, []interface{}{e.Number, e.Name, c.Name, c.Level}); err != nil {
				return err
			}
			compRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrWriteReport, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	return nil
}
