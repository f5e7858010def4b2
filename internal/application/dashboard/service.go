package dashboard

import (
	"context"
	"time"

	"github.com/hrms-lite/api/internal/domain"
)

// Summary is the landing-page aggregate: headcount plus today's attendance.
type Summary struct {
	TotalEmployees    int                 `json:"total_employees"`
	TodayPresentCount int                 `json:"today_present_count"`
	TodayAbsentCount  int                 `json:"today_absent_count"`
	TodayAttendance   []domain.Attendance `json:"today_attendance"`
	TodayDate         string              `json:"today_date"`
}

type EmployeeCounter interface {
	Count(ctx context.Context) (int, error)
}

type AttendanceLister interface {
	ListByDate(ctx context.Context, date string) ([]domain.Attendance, error)
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	employees  EmployeeCounter
	attendance AttendanceLister

	now func() time.Time // overridable in tests
}

func NewService(employees EmployeeCounter, attendance AttendanceLister) Service {
	return &service{employees: employees, attendance: attendance, now: time.Now}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	today := s.now().UTC().Format("2006-01-02")

	total, err := s.employees.Count(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.attendance.ListByDate(ctx, today)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalEmployees:  total,
		TodayAttendance: records,
		TodayDate:       today,
	}
	for _, a := range records {
		switch a.Status {
		case domain.StatusPresent:
			summary.TodayPresentCount++
		case domain.StatusAbsent:
			summary.TodayAbsentCount++
		}
	}
	return summary, nil
}
