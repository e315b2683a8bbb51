package seed

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/hrm/pkg/logger"
)

// Salary bands in whole currency units.
const (
	juniorMin      = 1800
	juniorRange    = 1200
	mediorMin      = 3000
	mediorRange    = 1500
	seniorMin      = 4500
	seniorRange    = 2500
	managerMin     = 5000
	managerRange   = 4000
	salaryBands    = 4
	caseJunior     = 0
	caseSenior     = 1
	nameSuffixSize = 8
)

var firstNames = []string{
	"Evert", "Ruud", "Anouk", "Bram", "Daan", "Fleur", "Lotte", "Sanne", "Thijs", "Joost",
}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// uniqueName returns a readable name with a UUID suffix.
func uniqueName(i int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return firstNames[i%len(firstNames)] + "-" + id[:nameSuffixSize]
}

func employeeSalary() int {
	switch randomInt(salaryBands) {
	case caseJunior:
		return juniorMin + randomInt(juniorRange)
	case caseSenior:
		return seniorMin + randomInt(seniorRange)
	default:
		return mediorMin + randomInt(mediorRange)
	}
}

// Validate checks the generation parameters.
func (c *Config) Validate() error {
	switch {
	case c.Employees < 0 || c.Managers < 0 || c.PerManager < 0:
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	case c.Managers > 0 && c.PerManager > c.Employees:
		return fmt.Errorf("%w: per-manager %d exceeds %d employees", ErrInvalidConfig, c.PerManager, c.Employees)
	case strings.TrimSpace(c.ManagerToken) == "":
		return fmt.Errorf("%w: empty manager token", ErrInvalidConfig)
	}
	return nil
}

// Generate creates cfg.Employees employees followed by cfg.Managers
// managers. Managers take PerManager employees each, round-robin over the
// employees generated before them.
func Generate(ctx context.Context, cfg *Config) ([]Person, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Get().Debug(ctx, "generating seed records",
		logger.Int("employees", cfg.Employees),
		logger.Int("managers", cfg.Managers))

	people := make([]Person, 0, cfg.Employees+cfg.Managers)
	for i := 0; i < cfg.Employees; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		people = append(people, Person{Name: uniqueName(i), Salary: employeeSalary()})
	}

	next := 0
	for i := 0; i < cfg.Managers; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		mgr := Person{
			Name:    uniqueName(cfg.Employees + i),
			Salary:  managerMin + randomInt(managerRange),
			Manager: true,
		}
		for j := 0; j < cfg.PerManager; j++ {
			mgr.Managed = append(mgr.Managed, people[next%cfg.Employees].Name)
			next++
		}
		people = append(people, mgr)
	}
	return people, nil
}

// Write renders people in the bulk-load file format, preceded by a comment
// header. It returns the number of lines written.
func Write(w io.Writer, people []Person, managerToken string) (int, error) {
	bw := bufio.NewWriter(w)
	lines := 0
	writeLine := func(s string) error {
		lines++
		_, err := bw.WriteString(s + "\n")
		return err
	}

	header := []string{
		"# HRM seed file generated " + time.Now().UTC().Format(time.RFC3339),
		"# name, salary[, " + managerToken + "[, managed...]]",
	}
	for _, h := range header {
		if err := writeLine(h); err != nil {
			return lines, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, p := range people {
		fields := []string{p.Name, strconv.Itoa(p.Salary)}
		if p.Manager {
			fields = append(fields, managerToken)
			fields = append(fields, p.Managed...)
		}
		if err := writeLine(strings.Join(fields, ", ")); err != nil {
			return lines, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return lines, fmt.Errorf("failed to flush seed file: %w", err)
	}
	return lines, nil
}
