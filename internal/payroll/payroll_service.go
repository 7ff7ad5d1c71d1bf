package payroll

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	payrollerrors "github.com/YugandharPise/SME-HR/internal/payroll/errors"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"
	"github.com/YugandharPise/SME-HR/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var periodPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context, actor rbac.Identity, period string) (RunPayrollResponse, error)
	ListAll(ctx context.Context) ([]PayslipResponse, error)
	ListMine(ctx context.Context, identity rbac.Identity) ([]PayslipResponse, error)
	FetchArtifact(ctx context.Context, identity rbac.Identity, filename string) ([]byte, error)
	EnsureArtifacts(ctx context.Context, period string) (int, error)
}

type service struct {
	store     store.Store
	repo      Repository
	outbox    kafka.OutboxRepository
	policy    DeductionPolicy
	renderer  ArtifactRenderer
	artifacts ArtifactStore
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

// NewService builds the engine without event publishing.
func NewService(
	st store.Store,
	repo Repository,
	policy DeductionPolicy,
	renderer ArtifactRenderer,
	artifacts ArtifactStore,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(st, repo, nil, policy, renderer, artifacts, logger...)
}

func NewServiceWithOutbox(
	st store.Store,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	policy DeductionPolicy,
	renderer ArtifactRenderer,
	artifacts ArtifactStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if policy == nil {
		policy = FlatRate{Rate: DefaultTaxRate}
	}
	return &service{
		store:     st,
		repo:      repo,
		outbox:    outboxRepo,
		policy:    policy,
		renderer:  renderer,
		artifacts: artifacts,
		sf:        &singleflight.Group{},
		now:       time.Now,
		logger:    l,
	}
}

func normalizePeriod(period string) (string, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return "", payrollerrors.ErrPeriodRequired
	}
	if !periodPattern.MatchString(period) {
		return "", payrollerrors.ErrInvalidPeriod
	}
	return period, nil
}

func (s *service) Run(ctx context.Context, actor rbac.Identity, period string) (RunPayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	period, err := normalizePeriod(period)
	if err != nil {
		return RunPayrollResponse{}, err
	}

	s.logger.Info("payroll run requested",
		zap.String("request_id", rid),
		zap.String("period", period),
		zap.Int64("requested_by", actor.UserID),
	)

	now := s.now().UTC()
	var created []store.Payslip
	_, err = s.store.Commit(ctx, func(draft *store.Snapshot) error {
		if s.repo.PeriodExists(draft, period) {
			return payrollerrors.ErrPeriodAlreadyProcessed
		}

		created = make([]store.Payslip, 0, len(draft.Employees))
		for _, emp := range draft.Employees {
			basic, allowances, deductions, net := computePayslip(emp.Salary, s.policy)
			p := store.Payslip{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName(),
				Period:       period,
				PayDate:      now,
				Basic:        basic,
				Allowances:   allowances,
				Deductions:   deductions,
				NetPay:       net,
				ArtifactPath: ArtifactName(emp.ID, period),
			}
			s.repo.Create(draft, &p)
			created = append(created, p)
		}

		if s.outbox == nil {
			return nil
		}
		event, err := newRunCompletedEvent(ctx, period, len(created), actor.UserID, now)
		if err != nil {
			return err
		}
		return s.outbox.Create(draft, event)
	})
	if err != nil {
		s.logger.Warn("payroll run failed",
			zap.String("request_id", rid),
			zap.String("period", period),
			zap.Error(err),
		)
		return RunPayrollResponse{}, err
	}

	for _, p := range created {
		if err := s.render(p); err != nil {
			s.logger.Error("render payslip failed",
				zap.String("request_id", rid),
				zap.Int64("payslip_id", p.ID),
				zap.String("artifact", p.ArtifactPath),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("payroll run completed",
		zap.String("request_id", rid),
		zap.String("period", period),
		zap.Int("payslips", len(created)),
	)
	return RunPayrollResponse{
		Message:           fmt.Sprintf("Payroll run for %s completed successfully.", period),
		Period:            period,
		PayslipsGenerated: len(created),
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]PayslipResponse, error) {
	slips, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list payslips failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(slips), nil
}

// ListMine only ever looks at the employee linked to the token.
func (s *service) ListMine(ctx context.Context, identity rbac.Identity) ([]PayslipResponse, error) {
	if identity.EmployeeID == nil {
		return []PayslipResponse{}, nil
	}
	slips, err := s.repo.FindByEmployee(ctx, *identity.EmployeeID)
	if err != nil {
		s.logger.Error("list own payslips failed",
			zap.Int64("employee_id", *identity.EmployeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(slips), nil
}

func (s *service) FetchArtifact(ctx context.Context, identity rbac.Identity, filename string) ([]byte, error) {
	slip, err := s.repo.FindByArtifact(ctx, filename)
	if err != nil {
		return nil, err
	}

	if identity.Role == store.RoleEmployee {
		if identity.EmployeeID == nil || *identity.EmployeeID != slip.EmployeeID {
			s.logger.Warn("foreign payslip requested",
				zap.Int64("user_id", identity.UserID),
				zap.String("artifact", filename),
			)
			return nil, payrollerrors.ErrPayslipForbidden
		}
	}

	data, err := s.artifacts.Open(slip.ArtifactPath)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("open payslip artifact failed", zap.String("artifact", filename), zap.Error(err))
		return nil, payrollerrors.ErrArtifactUnavailable
	}

	v, err, _ := s.sf.Do(slip.ArtifactPath, func() (interface{}, error) {
		data, err := s.renderer.Render(*slip)
		if err != nil {
			return nil, err
		}
		if err := s.artifacts.Save(slip.ArtifactPath, data); err != nil {
			s.logger.Warn("store re-rendered payslip failed", zap.String("artifact", filename), zap.Error(err))
		}
		return data, nil
	})
	if err != nil {
		s.logger.Error("re-render payslip failed", zap.String("artifact", filename), zap.Error(err))
		return nil, payrollerrors.ErrArtifactUnavailable
	}
	s.logger.Info("payslip artifact re-rendered", zap.String("artifact", filename))
	return v.([]byte), nil
}

// EnsureArtifacts renders every missing document of a period and reports how
// many were written.
func (s *service) EnsureArtifacts(ctx context.Context, period string) (int, error) {
	slips, err := s.repo.FindByPeriod(ctx, period)
	if err != nil {
		return 0, err
	}

	var (
		rendered int
		errs     []error
	)
	for _, p := range slips {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		ok, err := s.artifacts.Exists(p.ArtifactPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.ArtifactPath, err))
			continue
		}
		if ok {
			continue
		}
		if err := s.render(p); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.ArtifactPath, err))
			continue
		}
		rendered++
	}

	if rendered > 0 {
		s.logger.Info("missing payslip artifacts rendered",
			zap.String("period", period),
			zap.Int("rendered", rendered),
		)
	}
	return rendered, errors.Join(errs...)
}

func (s *service) render(p store.Payslip) error {
	data, err := s.renderer.Render(p)
	if err != nil {
		return err
	}
	return s.artifacts.Save(p.ArtifactPath, data)
}
