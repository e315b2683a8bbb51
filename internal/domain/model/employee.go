package model

// Role tags an Employee record with its capability set.
type Role int

const (
	// RoleEmployee is a plain employee.
	RoleEmployee Role = iota
	// RoleManager is an employee that also manages other employees.
	RoleManager
)

// String returns the lowercase role name used in logs and JSON.
func (r Role) String() string {
	if r == RoleManager {
		return "manager"
	}
	return "employee"
}

// Employee is a single HRM record. Managers are employees with RoleManager
// and a list of managed employees; the list is unused for plain employees.
//
// Managed holds references to records owned by the directory, not copies.
type Employee struct {
	Name        string
	Salary      int
	Role        Role
	Competences []Competence
	Managed     []*Employee
}

// NewEmployee creates a plain employee record.
func NewEmployee(name string, salary int) *Employee {
	return &Employee{Name: name, Salary: salary, Role: RoleEmployee}
}

// NewManager creates a manager record with an empty managed list.
func NewManager(name string, salary int) *Employee {
	return &Employee{Name: name, Salary: salary, Role: RoleManager}
}

// IsManager reports whether the record carries manager capability.
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}

// AddCompetence appends c, keeping insertion order.
func (e *Employee) AddCompetence(c Competence) {
	e.Competences = append(e.Competences, c)
}

// Manage appends a managed employee reference. It is a no-op for plain employees.
func (e *Employee) Manage(sub *Employee) bool {
	if !e.IsManager() {
		return false
	}
	e.Managed = append(e.Managed, sub)
	return true
}

// ManagedNames returns the names of managed employees in assignment order.
func (e *Employee) ManagedNames() []string {
	names := make([]string, 0, len(e.Managed))
	for _, m := range e.Managed {
		names = append(names, m.Name)
	}
	return names
}

// Entry is a read-only view of an Employee at a given 1-based position.
// Number is derived from the position at the time the view was taken.
type Entry struct {
	Number      int          `json:"number"`
	Name        string       `json:"name"`
	Salary      int          `json:"salary"`
	Role        string       `json:"role"`
	Competences []Competence `json:"competences"`
	Managed     []string     `json:"managed,omitempty"`
}

// View returns a detached Entry for e at the given position.
func (e *Employee) View(number int) Entry {
	comps := make([]Competence, len(e.Competences))
	copy(comps, e.Competences)
	entry := Entry{
		Number:      number,
		Name:        e.Name,
		Salary:      e.Salary,
		Role:        e.Role.String(),
		Competences: comps,
	}
	if e.IsManager() {
		entry.Managed = e.ManagedNames()
	}
	return entry
}
