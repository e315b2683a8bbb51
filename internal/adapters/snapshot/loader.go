package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/hrm/pkg/logger"
	"github.com/okian/hrm/pkg/metrics"
)

const (
	fieldSeparator      = ","
	commentPrefix       = "#"
	defaultManagerToken = "manager"
)

// Target receives the records parsed from a bulk-load source.
type Target interface {
	AddEmployee(ctx context.Context, name string, salary int) (int, error)
	AddManager(ctx context.Context, name string, salary int) (int, error)
	AssignManager(ctx context.Context, managerName, employeeName string) error
	Exists(ctx context.Context, name string) bool
}

// Result summarizes a bulk load.
type Result struct {
	// Added counts lines that produced a record, managers and employees alike.
	Added int `json:"added"`
	// Skipped counts blank and comment lines.
	Skipped int `json:"skipped"`
	// Diagnostics lists the rejected lines in file order.
	Diagnostics []*LineError `json:"-"`
}

// Messages renders the diagnostics as "line N: reason" strings.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, d.Error())
	}
	return out
}

type loader struct {
	logger       logger.Logger
	managerToken string
}

// record is one parsed bulk-load line.
type record struct {
	name    string
	salary  int
	manager bool
	managed []string
}

// Load opens path and bulk-loads it into target. If the file cannot be
// opened or read the returned error wraps ErrUnreadable and nothing is added.
func Load(ctx context.Context, path string, target Target, opts ...Option) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		metrics.RecordBulkLoad(metrics.ResultUnreadable)
		return Result{}, fmt.Errorf("%s: %w: %w", path, ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()
	return Read(ctx, f, target, opts...)
}

// Read bulk-loads the line-oriented content of r into target.
// The input is read in full before any record is committed, so a read
// failure adds nothing. Malformed lines are skipped and reported in
// Result.Diagnostics. When ctx is cancelled the lines committed so far stay
// committed and the partial Result is returned with ctx's error.
func Read(ctx context.Context, r io.Reader, target Target, opts ...Option) (Result, error) {
	ld := &loader{managerToken: defaultManagerToken}
	for _, opt := range opts {
		opt(ld)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		metrics.RecordBulkLoad(metrics.ResultUnreadable)
		return Result{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	var res Result
	rest := string(data)
	for lineNo := 1; rest != ""; lineNo++ {
		if err := ctx.Err(); err != nil {
			metrics.RecordBulkLoad(metrics.ResultError)
			return res, fmt.Errorf("line %d: %w", lineNo, err)
		}

		var raw string
		raw, rest, _ = strings.Cut(rest, "\n")
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			res.Skipped++
			metrics.RecordBulkLine(metrics.LineSkipped)
			continue
		}

		if err := ld.processLine(ctx, target, line); err != nil {
			lerr := &LineError{Line: lineNo, Text: line, Err: err}
			res.Diagnostics = append(res.Diagnostics, lerr)
			metrics.RecordBulkLine(metrics.LineRejected)
			if ld.logger != nil {
				ld.logger.Warn(ctx, "bulk-load line rejected",
					logger.Int("line", lineNo), logger.String("content", line), logger.Error(err))
			}
			continue
		}
		res.Added++
		metrics.RecordBulkLine(metrics.LineAdded)
	}

	metrics.RecordBulkLoad(metrics.ResultOK)
	if ld.logger != nil {
		ld.logger.Info(ctx, "bulk load finished",
			logger.Int("added", res.Added), logger.Int("rejected", len(res.Diagnostics)), logger.Int("skipped", res.Skipped))
	}
	return res, nil
}

// processLine parses one data line and commits it to target. Managed names
// are resolved before the record is created so a rejected line changes nothing.
func (ld *loader) processLine(ctx context.Context, target Target, line string) error {
	rec, err := ld.parseLine(line)
	if err != nil {
		return err
	}

	if !rec.manager {
		_, err := target.AddEmployee(ctx, rec.name, rec.salary)
		return err
	}

	for _, sub := range rec.managed {
		if !target.Exists(ctx, sub) {
			return fmt.Errorf("%q: %w", sub, ErrUnknownEmployee)
		}
	}
	if _, err := target.AddManager(ctx, rec.name, rec.salary); err != nil {
		return err
	}
	for _, sub := range rec.managed {
		if err := target.AssignManager(ctx, rec.name, sub); err != nil {
			return err
		}
	}
	return nil
}

// parseLine splits name,salary[,manager[,sub]*] into a record.
func (ld *loader) parseLine(line string) (record, error) {
	fields := strings.Split(line, fieldSeparator)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	rec := record{name: fields[0]}
	if rec.name == "" {
		return record{}, ErrMissingName
	}
	if len(fields) < 2 || fields[1] == "" {
		return record{}, ErrMissingSalary
	}
	salary, err := strconv.Atoi(fields[1])
	if err != nil {
		return record{}, fmt.Errorf("%q: %w", fields[1], ErrInvalidSalary)
	}
	rec.salary = salary

	if len(fields) == 2 {
		return rec, nil
	}
	if fields[2] != ld.managerToken {
		return record{}, fmt.Errorf("%q: %w", fields[2], ErrBadMarker)
	}
	rec.manager = true
	for _, sub := range fields[3:] {
		if sub == "" {
			return record{}, ErrEmptyManagedName
		}
		rec.managed = append(rec.managed, sub)
	}
	return rec, nil
}
