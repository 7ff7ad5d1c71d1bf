package rbac

import (
	"sort"

	"github.com/YugandharPise/SME-HR/internal/store"
)

type Operation string

const (
	OpMe               Operation = "me"
	OpListEmployees    Operation = "listEmployees"
	OpGetEmployee      Operation = "getEmployee"
	OpEmployeeOptions  Operation = "employeeOptions"
	OpCreateEmployee   Operation = "createEmployee"
	OpUpdateEmployee   Operation = "updateEmployee"
	OpDeleteEmployee   Operation = "deleteEmployee"
	OpCheckIn          Operation = "checkIn"
	OpCheckOut         Operation = "checkOut"
	OpEditAttendance   Operation = "editAttendance"
	OpListAttendance   Operation = "listAttendance"
	OpExportAttendance Operation = "exportAttendance"
	OpRunPayroll       Operation = "runPayroll"
	OpListPayslips     Operation = "listPayslips"
	OpListMyPayslips   Operation = "listMyPayslips"
	OpFetchArtifact    Operation = "fetchArtifact"
)

var (
	staff    = []store.Role{store.RoleAdmin, store.RoleHR}
	everyone = []store.Role{store.RoleAdmin, store.RoleHR, store.RoleEmployee}
	employee = []store.Role{store.RoleEmployee}
)

// AllowSets is the single source of truth for who may call what.
// Ownership of a payslip artifact is checked by the payroll service on top of this.
var AllowSets = map[Operation][]store.Role{
	OpMe:               everyone,
	OpListEmployees:    staff,
	OpGetEmployee:      staff,
	OpEmployeeOptions:  staff,
	OpCreateEmployee:   staff,
	OpUpdateEmployee:   staff,
	OpDeleteEmployee:   staff,
	OpCheckIn:          employee,
	OpCheckOut:         employee,
	OpEditAttendance:   staff,
	OpListAttendance:   staff,
	OpExportAttendance: staff,
	OpRunPayroll:       staff,
	OpListPayslips:     staff,
	OpListMyPayslips:   employee,
	OpFetchArtifact:    everyone,
}

// Operations lists every known operation in name order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(AllowSets))
	for op := range AllowSets {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
