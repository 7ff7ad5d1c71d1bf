package employee

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	employeeerrors "github.com/YugandharPise/SME-HR/internal/employee/errors"
	"github.com/YugandharPise/SME-HR/internal/events"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store    store.Store
	repo     Repository
	outbox   kafka.OutboxRepository
	rdb      redis.Cmdable
	sf       *singleflight.Group
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

// NewService builds the service without event publishing. rdb may be nil.
func NewService(st store.Store, repo Repository, rdb redis.Cmdable, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(st, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	st store.Store,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb redis.Cmdable,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		store:    st,
		repo:     repo,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		validate: validator.New(),
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	emp := store.Employee{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		Salary:     req.Salary,
	}
	if err := s.validateEmployee(emp); err != nil {
		return EmployeeResponse{}, err
	}

	_, err := s.store.Commit(ctx, func(draft *store.Snapshot) error {
		if err := s.repo.Insert(draft, &emp); err != nil {
			return err
		}
		return s.enqueue(ctx, draft, events.EmployeeCreated, emp)
	})
	if err != nil {
		s.logger.Warn("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", emp.ID),
	)
	return mapToResponse(emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(emps), nil
}

// GetOptions serves the id/name list used by pickers. Cached in redis until
// the next employee mutation.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeOptionResponse, len(emps))
		for i, e := range emps {
			resp[i] = EmployeeOptionResponse{ID: e.ID, Name: e.FullName(), Department: e.Department}
		}
		sort.Slice(resp, func(i, j int) bool {
			return strings.ToLower(resp[i].Name) < strings.ToLower(resp[j].Name)
		})

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, data, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", id),
	)

	var updated store.Employee
	_, err := s.store.Commit(ctx, func(draft *store.Snapshot) error {
		i := draft.EmployeeIndex(id)
		if i < 0 {
			return employeeerrors.ErrEmployeeNotFound
		}
		emp := draft.Employees[i]
		applyUpdate(&emp, req)
		if err := s.validateEmployee(emp); err != nil {
			return err
		}
		if err := s.repo.Update(draft, emp); err != nil {
			return err
		}
		updated = emp
		return s.enqueue(ctx, draft, events.EmployeeUpdated, emp)
	})
	if err != nil {
		s.logger.Warn("update employee failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.Int64("employee_id", id))
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", id),
	)

	_, err := s.store.Commit(ctx, func(draft *store.Snapshot) error {
		removed, err := s.repo.Delete(draft, id)
		if err != nil {
			return err
		}
		return s.enqueue(ctx, draft, events.EmployeeDeleted, removed)
	})
	if err != nil {
		s.logger.Warn("delete employee failed", zap.Int64("employee_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("delete employee success", zap.Int64("employee_id", id))
	return nil
}

func (s *service) enqueue(ctx context.Context, draft *store.Snapshot, eventType string, emp store.Employee) error {
	if s.outbox == nil {
		return nil
	}
	event, err := newLifecycleEvent(ctx, eventType, emp, s.now())
	if err != nil {
		return err
	}
	return s.outbox.Create(draft, event)
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.String("key", EmployeeOptionsKey),
			zap.Error(err),
		)
	}
}

func (s *service) validateEmployee(emp store.Employee) error {
	switch {
	case emp.FirstName == "":
		return apperror.RequiredField("First Name")
	case emp.LastName == "":
		return apperror.RequiredField("Last Name")
	case emp.Email == "":
		return apperror.RequiredField("Email")
	case emp.Salary < 0:
		return employeeerrors.ErrNegativeSalary
	}
	if err := s.validate.Var(emp.Email, "email"); err != nil {
		return employeeerrors.ErrInvalidEmail
	}
	return nil
}

func applyUpdate(emp *store.Employee, req UpdateEmployeeRequest) {
	if req.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		emp.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		emp.Email = strings.TrimSpace(*req.Email)
	}
	if req.Department != nil {
		emp.Department = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		emp.Position = strings.TrimSpace(*req.Position)
	}
	if req.Salary != nil {
		emp.Salary = *req.Salary
	}
}
