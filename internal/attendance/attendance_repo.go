package attendance

import (
	"context"
	"sort"

	"github.com/YugandharPise/SME-HR/internal/store"
)

// Repository lookups that take a draft return pointers into it, so callers
// mutate the record that will be committed.
type Repository interface {
	FindAll(ctx context.Context) ([]AttendanceResponse, error)
	FindByEmployeeAndDate(draft *store.Snapshot, employeeID int64, date string) *store.AttendanceRecord
	FindByID(draft *store.Snapshot, id int64) *store.AttendanceRecord
	Create(draft *store.Snapshot, rec *store.AttendanceRecord)
}

type repository struct {
	store store.Store
}

func NewRepository(st store.Store) Repository {
	return &repository{store: st}
}

// FindAll returns every record newest first with the employee's display name.
func (r *repository) FindAll(ctx context.Context) ([]AttendanceResponse, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(snap.Employees))
	for _, e := range snap.Employees {
		names[e.ID] = e.FullName()
	}

	res := make([]AttendanceResponse, len(snap.Attendance))
	for i, rec := range snap.Attendance {
		res[i] = mapToResponse(rec)
		if name, ok := names[rec.EmployeeID]; ok {
			res[i].EmployeeName = name
		} else {
			res[i].EmployeeName = unknownEmployee
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Date != res[j].Date {
			return res[i].Date > res[j].Date
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

func (r *repository) FindByEmployeeAndDate(draft *store.Snapshot, employeeID int64, date string) *store.AttendanceRecord {
	i := draft.AttendanceIndexFor(employeeID, date)
	if i < 0 {
		return nil
	}
	return &draft.Attendance[i]
}

func (r *repository) FindByID(draft *store.Snapshot, id int64) *store.AttendanceRecord {
	i := draft.AttendanceIndex(id)
	if i < 0 {
		return nil
	}
	return &draft.Attendance[i]
}

// Create assigns the next attendance id.
func (r *repository) Create(draft *store.Snapshot, rec *store.AttendanceRecord) {
	rec.ID = draft.NextAttendanceID()
	draft.Attendance = append(draft.Attendance, *rec)
}
