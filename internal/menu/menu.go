// Package menu implements the interactive console front-end: a numbered
// command menu read line by line from an input stream.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/hrm/internal/adapters/snapshot"
	"github.com/okian/hrm/pkg/logger"
)

// Service is the subset of the application service the menu drives.
type Service interface {
	AddManager(ctx context.Context, name string, salary int) (int, error)
	AddEmployee(ctx context.Context, name string, salary int) (int, error)
	AddCompetence(ctx context.Context, employeeName, competenceName string, level int) error
	AssignManager(ctx context.Context, managerName, employeeName string) error
	NumberOfEmployees(ctx context.Context) int
	NumberOfManagers(ctx context.Context) int
	NumberOfEmployeesManagedByManager(ctx context.Context, managerName string) (int, error)
	Summary(ctx context.Context) string
	WriteReport(ctx context.Context, path string) (string, error)
	BulkLoad(ctx context.Context, path string) (snapshot.Result, error)
}

const separator = "-----------"

type command struct {
	label string
	run   func(ctx context.Context) error
}

// Menu reads numbered options and dispatches them to the service.
type Menu struct {
	svc    Service
	in     io.Reader
	out    io.Writer
	logger logger.Logger

	scanner  *bufio.Scanner
	commands []command
}

// New creates a menu on stdin/stdout unless overridden by options.
func New(svc Service, opts ...Option) (*Menu, error) {
	if svc == nil {
		return nil, ErrNilService
	}
	m := &Menu{
		svc:    svc,
		in:     os.Stdin,
		out:    os.Stdout,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.scanner = bufio.NewScanner(m.in)
	m.commands = []command{
		{"Add a manager", m.addManager},
		{"Add an employee", m.addEmployee},
		{"Add competences to employee", m.addCompetence},
		{"Assign manager for employee", m.assignManager},
		{"Print number of employees", m.numberOfEmployees},
		{"Print number of managers", m.numberOfManagers},
		{"Print employees managed by manager", m.managedByManager},
		{"Display details of employees", m.details},
		{"Write competence report to file", m.writeReport},
		{"Read file", m.readFile},
		{"Exit", func(context.Context) error { return errQuit }},
	}
	return m, nil
}

// Run shows the menu until the exit option is chosen, the input ends or
// ctx is cancelled. End of input is a clean exit.
func (m *Menu) Run(ctx context.Context) error {
	m.logger.Info(ctx, "console menu started")
	defer m.logger.Info(ctx, "console menu stopped")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		m.printf("Option: ")
		option, err := m.askNumber()
		if err == nil {
			m.println(separator)
			err = m.dispatch(ctx, option)
		}
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		default:
			return err
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, option int) error {
	if option < 1 || option > len(m.commands) {
		m.println("ERROR: Unknown option " + strconv.Itoa(option))
		return nil
	}
	return m.commands[option-1].run(ctx)
}

func (m *Menu) printMenu() {
	m.println("")
	m.println(separator)
	m.println("HRM System")
	m.println(separator)
	for i, c := range m.commands {
		m.printf("%-3s %s\n", strconv.Itoa(i+1)+".", c.label)
	}
	m.println("")
}

func (m *Menu) addManager(ctx context.Context) error {
	return m.add(ctx, "manager", m.svc.AddManager)
}

func (m *Menu) addEmployee(ctx context.Context) error {
	return m.add(ctx, "employee", m.svc.AddEmployee)
}

func (m *Menu) add(ctx context.Context, kind string, add func(context.Context, string, int) (int, error)) error {
	m.printf("Enter the name of the %s: ", kind)
	name, err := m.askString()
	if err != nil {
		return err
	}
	m.printf("Enter the salary of the %s: ", kind)
	salary, err := m.askNumber()
	if err != nil {
		return err
	}

	number, err := add(ctx, name, salary)
	if err != nil {
		m.printf("ERROR: The %s has not been added. %v\n", kind, err)
		return nil
	}
	m.printf("The %s has been added with number %d\n", kind, number)
	return nil
}

func (m *Menu) addCompetence(ctx context.Context) error {
	m.printf("Enter the name of the employee: ")
	employee, err := m.askString()
	if err != nil {
		return err
	}
	m.printf("Enter the name of the competence: ")
	competence, err := m.askString()
	if err != nil {
		return err
	}
	m.printf("Enter the level of the competence (0, 1 or 2): ")
	level, err := m.askNumber()
	if err != nil {
		return err
	}

	if err := m.svc.AddCompetence(ctx, employee, competence, level); err != nil {
		m.printf("ERROR: The competence has not been added. %v\n", err)
		return nil
	}
	m.println("The competence has been added")
	return nil
}

func (m *Menu) assignManager(ctx context.Context) error {
	m.printf("Enter the name of the manager: ")
	manager, err := m.askString()
	if err != nil {
		return err
	}
	m.printf("Enter the name of the employee: ")
	employee, err := m.askString()
	if err != nil {
		return err
	}

	if err := m.svc.AssignManager(ctx, manager, employee); err != nil {
		m.printf("ERROR: The manager has not been assigned. %v\n", err)
		return nil
	}
	m.println("The manager has been assigned")
	return nil
}

func (m *Menu) numberOfEmployees(ctx context.Context) error {
	m.printf("Number of employees: %d\n", m.svc.NumberOfEmployees(ctx))
	return nil
}

func (m *Menu) numberOfManagers(ctx context.Context) error {
	m.printf("Number of managers: %d\n", m.svc.NumberOfManagers(ctx))
	return nil
}

func (m *Menu) managedByManager(ctx context.Context) error {
	m.printf("Enter the name of the manager: ")
	manager, err := m.askString()
	if err != nil {
		return err
	}

	n, err := m.svc.NumberOfEmployeesManagedByManager(ctx, manager)
	if err != nil {
		m.printf("ERROR: %v\n", err)
		return nil
	}
	m.printf("Number of employees managed by this manager: %d\n", n)
	return nil
}

func (m *Menu) details(ctx context.Context) error {
	m.println(m.svc.Summary(ctx))
	return nil
}

func (m *Menu) writeReport(ctx context.Context) error {
	m.printf("Enter file name: ")
	path, err := m.askString()
	if err != nil {
		return err
	}

	if _, err := m.svc.WriteReport(ctx, path); err != nil {
		m.logger.Warn(ctx, "report not written", logger.String("path", path), logger.Error(err))
		m.println("ERROR: Could not write report")
		return nil
	}
	m.println("The report has been written successfully")
	return nil
}

func (m *Menu) readFile(ctx context.Context) error {
	m.printf("Enter file name: ")
	path, err := m.askString()
	if err != nil {
		return err
	}

	res, err := m.svc.BulkLoad(ctx, path)
	for _, msg := range res.Messages() {
		m.println("WARNING: " + msg)
	}
	if err != nil {
		m.println("ERROR: The file could not be read")
		return nil
	}
	m.printf("Done processing - %d persons have been added\n", res.Added)
	return nil
}

// askNumber reads lines until one parses as an integer.
func (m *Menu) askNumber() (int, error) {
	for {
		line, err := m.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil {
			return n, nil
		}
		m.printf("ERROR: Enter a number: ")
	}
}

// askString reads lines until one has at least one non-blank character.
func (m *Menu) askString() (string, error) {
	for {
		line, err := m.readLine()
		if err != nil {
			return "", err
		}
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		m.printf("ERROR: Please enter at least one character: ")
	}
}

// readLine returns errQuit at end of input.
func (m *Menu) readLine() (string, error) {
	if m.scanner.Scan() {
		return m.scanner.Text(), nil
	}
	if err := m.scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInput, err)
	}
	m.println("")
	return "", errQuit
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
