package store

import (
	"golang.org/x/crypto/bcrypt"
)

const DefaultSeedPassword = "password123"

// Seed builds the first-run data set: one account per role, the employee
// account linked to employee 1, and a small employee roster.
func Seed(password string) (*Snapshot, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashed)

	linkedEmployee := int64(1)
	linkedUser := int64(3)

	return &Snapshot{
		Users: []User{
			{ID: 1, Email: "admin@example.com", PasswordHash: hash, Role: RoleAdmin},
			{ID: 2, Email: "hr@example.com", PasswordHash: hash, Role: RoleHR},
			{ID: 3, Email: "employee@example.com", PasswordHash: hash, Role: RoleEmployee, EmployeeID: &linkedEmployee},
		},
		Employees: []Employee{
			{ID: 1, UserID: &linkedUser, FirstName: "Jane", LastName: "Doe", Email: "employee@example.com", Department: "Engineering", Position: "Software Engineer", Salary: 90000},
			{ID: 2, FirstName: "John", LastName: "Smith", Email: "john.smith@example.com", Department: "Engineering", Position: "Senior Engineer", Salary: 120000},
			{ID: 3, FirstName: "Peter", LastName: "Jones", Email: "peter.jones@example.com", Department: "Marketing", Position: "Marketing Manager", Salary: 85000},
			{ID: 4, FirstName: "Mary", LastName: "Williams", Email: "mary.williams@example.com", Department: "Marketing", Position: "Content Creator", Salary: 65000},
			{ID: 5, FirstName: "David", LastName: "Brown", Email: "david.brown@example.com", Department: "Sales", Position: "Sales Executive", Salary: 75000},
		},
		Attendance: []AttendanceRecord{},
		Payslips:   []Payslip{},
		Outbox:     []OutboxEvent{},
		Sequences: Sequences{
			UserID:     3,
			EmployeeID: 5,
		},
	}, nil
}
