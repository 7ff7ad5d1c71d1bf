package store

import "time"

// Snapshot is the complete persisted state. Version grows by one per commit.
type Snapshot struct {
	Version    int64              `json:"version"`
	Users      []User             `json:"users"`
	Employees  []Employee         `json:"employees"`
	Attendance []AttendanceRecord `json:"attendance"`
	Payslips   []Payslip          `json:"payslips"`
	Outbox     []OutboxEvent      `json:"outbox"`
	Sequences  Sequences          `json:"sequences"`
}

func (s *Snapshot) UserByEmail(email string) (User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

func (s *Snapshot) UserByID(id int64) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// EmployeeIndex returns -1 when the employee does not exist.
func (s *Snapshot) EmployeeIndex(id int64) int {
	for i, e := range s.Employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Snapshot) AttendanceIndex(id int64) int {
	for i, a := range s.Attendance {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Snapshot) AttendanceIndexFor(employeeID int64, date string) int {
	for i, a := range s.Attendance {
		if a.EmployeeID == employeeID && a.Date == date {
			return i
		}
	}
	return -1
}

func (s *Snapshot) NextEmployeeID() int64 {
	s.Sequences.EmployeeID++
	return s.Sequences.EmployeeID
}

func (s *Snapshot) NextAttendanceID() int64 {
	s.Sequences.AttendanceID++
	return s.Sequences.AttendanceID
}

func (s *Snapshot) NextPayslipID() int64 {
	s.Sequences.PayslipID++
	return s.Sequences.PayslipID
}

// Clone deep-copies the snapshot so drafts and readers never share memory
// with the published state.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Version:   s.Version,
		Sequences: s.Sequences,
	}

	out.Users = make([]User, len(s.Users))
	for i, u := range s.Users {
		u.EmployeeID = cloneInt64(u.EmployeeID)
		out.Users[i] = u
	}

	out.Employees = make([]Employee, len(s.Employees))
	for i, e := range s.Employees {
		e.UserID = cloneInt64(e.UserID)
		out.Employees[i] = e
	}

	out.Attendance = make([]AttendanceRecord, len(s.Attendance))
	for i, a := range s.Attendance {
		a.CheckInTime = cloneTime(a.CheckInTime)
		a.CheckOutTime = cloneTime(a.CheckOutTime)
		a.LastEditAt = cloneTime(a.LastEditAt)
		out.Attendance[i] = a
	}

	out.Payslips = make([]Payslip, len(s.Payslips))
	copy(out.Payslips, s.Payslips)

	out.Outbox = make([]OutboxEvent, len(s.Outbox))
	for i, e := range s.Outbox {
		e.Payload = append([]byte(nil), e.Payload...)
		out.Outbox[i] = e
	}

	return out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
