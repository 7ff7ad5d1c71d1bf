package attendance

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	attendanceerrors "github.com/YugandharPise/SME-HR/internal/attendance/errors"
	"github.com/YugandharPise/SME-HR/internal/events"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service interface {
	CheckIn(ctx context.Context, employeeID int64) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID int64) (AttendanceResponse, error)
	Edit(ctx context.Context, editor rbac.Identity, recordID int64, req EditAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	Export(ctx context.Context) (*bytes.Buffer, string, error)
}

type service struct {
	store  store.Store
	repo   Repository
	outbox kafka.OutboxRepository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the engine. loc decides which calendar day "today" is;
// nil means UTC.
func NewService(st store.Store, repo Repository, loc *time.Location, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(st, repo, nil, loc, logger...)
}

func NewServiceWithOutbox(
	st store.Store,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		store:  st,
		repo:   repo,
		outbox: outboxRepo,
		loc:    loc,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID int64) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.now().UTC()
	today := now.In(s.loc).Format(dateLayout)

	var rec store.AttendanceRecord
	_, err := s.store.Commit(ctx, func(draft *store.Snapshot) error {
		if draft.EmployeeIndex(employeeID) < 0 {
			return attendanceerrors.ErrEmployeeNotFound
		}

		if existing := s.repo.FindByEmployeeAndDate(draft, employeeID, today); existing != nil {
			if existing.CheckInTime != nil {
				return attendanceerrors.ErrAlreadyCheckedIn
			}
			existing.CheckInTime = &now
			existing.CheckOutTime = nil
			existing.HoursWorked = 0
			rec = *existing
		} else {
			rec = store.AttendanceRecord{
				EmployeeID:  employeeID,
				Date:        today,
				CheckInTime: &now,
			}
			s.repo.Create(draft, &rec)
		}
		return s.enqueue(ctx, draft, events.AttendanceCheckedIn, rec, "", "")
	})
	if err != nil {
		s.logger.Warn("check in failed",
			zap.String("request_id", rid),
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	s.logger.Info("check in recorded",
		zap.String("request_id", rid),
		zap.Int64("employee_id", employeeID),
		zap.Int64("record_id", rec.ID),
		zap.String("date", today),
	)
	return mapToResponse(rec), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID int64) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.now().UTC()
	today := now.In(s.loc).Format(dateLayout)

	var rec store.AttendanceRecord
	_, err := s.store.Commit(ctx, func(draft *store.Snapshot) error {
		existing := s.repo.FindByEmployeeAndDate(draft, employeeID, today)
		if existing == nil || existing.CheckInTime == nil {
			return attendanceerrors.ErrNotCheckedIn
		}
		if existing.CheckOutTime != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}

		existing.CheckOutTime = &now
		existing.HoursWorked = hoursBetween(*existing.CheckInTime, now)
		rec = *existing
		return s.enqueue(ctx, draft, events.AttendanceCheckedOut, rec, "", "")
	})
	if err != nil {
		s.logger.Warn("check out failed",
			zap.String("request_id", rid),
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	s.logger.Info("check out recorded",
		zap.String("request_id", rid),
		zap.Int64("employee_id", employeeID),
		zap.Int64("record_id", rec.ID),
		zap.Float64("hours_worked", rec.HoursWorked),
	)
	return mapToResponse(rec), nil
}

func (s *service) Edit(ctx context.Context, editor rbac.Identity, recordID int64, req EditAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return AttendanceResponse{}, attendanceerrors.ErrReasonRequired
	}

	checkIn, err := parseTimestamp(req.CheckInTime)
	if err != nil {
		return AttendanceResponse{}, err
	}
	checkOut, err := parseTimestamp(req.CheckOutTime)
	if err != nil {
		return AttendanceResponse{}, err
	}

	now := s.now().UTC()
	var rec store.AttendanceRecord
	_, err = s.store.Commit(ctx, func(draft *store.Snapshot) error {
		existing := s.repo.FindByID(draft, recordID)
		if existing == nil {
			return attendanceerrors.ErrRecordNotFound
		}

		if checkIn != nil {
			existing.CheckInTime = checkIn
		}
		if checkOut != nil {
			existing.CheckOutTime = checkOut
		}
		if existing.CheckInTime != nil && existing.CheckOutTime != nil {
			existing.HoursWorked = hoursBetween(*existing.CheckInTime, *existing.CheckOutTime)
		}

		existing.LastEditBy = editorName(draft, editor)
		existing.LastEditReason = reason
		existing.LastEditAt = &now
		rec = *existing
		return s.enqueue(ctx, draft, events.AttendanceEdited, rec, rec.LastEditBy, reason)
	})
	if err != nil {
		s.logger.Warn("edit attendance failed",
			zap.String("request_id", rid),
			zap.Int64("record_id", recordID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance record edited",
		zap.String("request_id", rid),
		zap.Int64("record_id", recordID),
		zap.String("edited_by", rec.LastEditBy),
	)
	return mapToResponse(rec), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	res, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}
	return res, nil
}

var exportHeaders = []string{"ID", "Employee", "Date", "Check In", "Check Out", "Hours Worked", "Last Edit By", "Edit Reason"}

// Export renders GetAll as a single-sheet xlsx workbook.
func (s *service) Export(ctx context.Context) (*bytes.Buffer, string, error) {
	rows, err := s.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("create export sheet failed", zap.Error(err))
		return nil, "", attendanceerrors.ErrExportFailed
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 22)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 22)
	_ = f.SetColWidth(sheet, "F", "F", 13)
	_ = f.SetColWidth(sheet, "G", "H", 28)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for r, row := range rows {
		values := []any{
			row.ID,
			row.EmployeeName,
			row.Date,
			formatTime(row.CheckInTime, s.loc),
			formatTime(row.CheckOutTime, s.loc),
			row.HoursWorked,
			row.LastEditBy,
			row.LastEditReason,
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			s.logger.Error("write export row failed", zap.Int("row", r+2), zap.Error(err))
			return nil, "", attendanceerrors.ErrExportFailed
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write export workbook failed", zap.Error(err))
		return nil, "", attendanceerrors.ErrExportFailed
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", s.now().In(s.loc).Format("20060102"))
	return buf, filename, nil
}

func (s *service) enqueue(ctx context.Context, draft *store.Snapshot, eventType string, rec store.AttendanceRecord, editedBy, reason string) error {
	if s.outbox == nil {
		return nil
	}
	payload := events.AttendanceEvent{
		EventType:   eventType,
		RequestID:   contextutil.GetRequestID(ctx),
		RecordID:    rec.ID,
		EmployeeID:  rec.EmployeeID,
		Date:        rec.Date,
		HoursWorked: rec.HoursWorked,
		EditedBy:    editedBy,
		Reason:      reason,
		OccurredAt:  s.now().UTC(),
	}
	event, err := kafka.NewOutboxEvent(ctx, "attendance", strconv.FormatInt(rec.ID, 10), eventType, events.AttendanceTopic, payload)
	if err != nil {
		return err
	}
	return s.outbox.Create(draft, event)
}

// hoursBetween never goes negative and keeps two decimals.
func hoursBetween(in, out time.Time) float64 {
	h := out.Sub(in).Hours()
	if h < 0 {
		return 0
	}
	return math.Round(h*100) / 100
}

func parseTimestamp(v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*v))
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTimestamp
	}
	t = t.UTC()
	return &t, nil
}

func editorName(snap *store.Snapshot, editor rbac.Identity) string {
	if u, ok := snap.UserByID(editor.UserID); ok {
		return u.Email
	}
	return fmt.Sprintf("user:%d", editor.UserID)
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}
