package employee

import (
	"context"
	"strings"

	employeeerrors "github.com/YugandharPise/SME-HR/internal/employee/errors"
	"github.com/YugandharPise/SME-HR/internal/store"
)

// Repository reads employees from the latest snapshot and writes them into a
// commit draft. Writes never touch the published state directly.
type Repository interface {
	FindAll(ctx context.Context) ([]store.Employee, error)
	FindByID(ctx context.Context, id int64) (*store.Employee, error)
	Insert(draft *store.Snapshot, emp *store.Employee) error
	Update(draft *store.Snapshot, emp store.Employee) error
	Delete(draft *store.Snapshot, id int64) (store.Employee, error)
}

type repository struct {
	store store.Store
}

func NewRepository(st store.Store) Repository {
	return &repository{store: st}
}

func (r *repository) FindAll(ctx context.Context) ([]store.Employee, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Employees, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*store.Employee, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := snap.EmployeeIndex(id)
	if i < 0 {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	emp := snap.Employees[i]
	return &emp, nil
}

// Insert assigns the next employee id.
func (r *repository) Insert(draft *store.Snapshot, emp *store.Employee) error {
	if emailTaken(draft, emp.Email, 0) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	emp.ID = draft.NextEmployeeID()
	draft.Employees = append(draft.Employees, *emp)
	return nil
}

func (r *repository) Update(draft *store.Snapshot, emp store.Employee) error {
	i := draft.EmployeeIndex(emp.ID)
	if i < 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	if emailTaken(draft, emp.Email, emp.ID) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	draft.Employees[i] = emp
	return nil
}

// Delete leaves attendance and payslips in place; they keep the dangling id.
func (r *repository) Delete(draft *store.Snapshot, id int64) (store.Employee, error) {
	i := draft.EmployeeIndex(id)
	if i < 0 {
		return store.Employee{}, employeeerrors.ErrEmployeeNotFound
	}
	removed := draft.Employees[i]
	draft.Employees = append(draft.Employees[:i], draft.Employees[i+1:]...)
	return removed, nil
}

func emailTaken(snap *store.Snapshot, email string, exceptID int64) bool {
	for _, e := range snap.Employees {
		if e.ID != exceptID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}
