package payroll

import (
	"context"

	payrollerrors "github.com/YugandharPise/SME-HR/internal/payroll/errors"
	"github.com/YugandharPise/SME-HR/internal/store"
)

type Repository interface {
	FindAll(ctx context.Context) ([]store.Payslip, error)
	FindByEmployee(ctx context.Context, employeeID int64) ([]store.Payslip, error)
	FindByPeriod(ctx context.Context, period string) ([]store.Payslip, error)
	FindByArtifact(ctx context.Context, name string) (*store.Payslip, error)
	PeriodExists(draft *store.Snapshot, period string) bool
	Create(draft *store.Snapshot, p *store.Payslip)
}

type repository struct {
	store store.Store
}

func NewRepository(st store.Store) Repository {
	return &repository{store: st}
}

func (r *repository) filter(ctx context.Context, keep func(store.Payslip) bool) ([]store.Payslip, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]store.Payslip, 0, len(snap.Payslips))
	for _, p := range snap.Payslips {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *repository) FindAll(ctx context.Context) ([]store.Payslip, error) {
	return r.filter(ctx, func(store.Payslip) bool { return true })
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64) ([]store.Payslip, error) {
	return r.filter(ctx, func(p store.Payslip) bool { return p.EmployeeID == employeeID })
}

func (r *repository) FindByPeriod(ctx context.Context, period string) ([]store.Payslip, error) {
	return r.filter(ctx, func(p store.Payslip) bool { return p.Period == period })
}

func (r *repository) FindByArtifact(ctx context.Context, name string) (*store.Payslip, error) {
	slips, err := r.filter(ctx, func(p store.Payslip) bool { return p.ArtifactPath == name })
	if err != nil {
		return nil, err
	}
	if len(slips) == 0 {
		return nil, payrollerrors.ErrPayslipNotFound
	}
	return &slips[0], nil
}

func (r *repository) PeriodExists(draft *store.Snapshot, period string) bool {
	for _, p := range draft.Payslips {
		if p.Period == period {
			return true
		}
	}
	return false
}

// Create assigns the next payslip id.
func (r *repository) Create(draft *store.Snapshot, p *store.Payslip) {
	p.ID = draft.NextPayslipID()
	draft.Payslips = append(draft.Payslips, *p)
}
