package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hrms-lite/api/internal/domain"
	"github.com/hrms-lite/api/internal/pkg/validate"
)

// AttendanceStore is the minimal repository interface the service needs.
type AttendanceStore interface {
	Put(ctx context.Context, a *domain.Attendance) error
	UpdateStatus(ctx context.Context, employeeID, date, status string, updatedAt time.Time) error
	Get(ctx context.Context, employeeID, date string) (*domain.Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error)
	ListByDate(ctx context.Context, date string) ([]domain.Attendance, error)
	ListAll(ctx context.Context) ([]domain.Attendance, error)
}

// EmployeeStore resolves the employee records attached to responses.
type EmployeeStore interface {
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
}

type Service interface {
	// Mark records an employee's status for a day. Re-marking an already
	// marked day updates the status in place; the bool reports whether a new
	// record was created.
	Mark(ctx context.Context, req domain.MarkAttendanceRequest) (*domain.Attendance, bool, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, int, error)
	ListByDate(ctx context.Context, date string) ([]domain.Attendance, error)
	ListAll(ctx context.Context) ([]domain.Attendance, error)
}

type service struct {
	repo    AttendanceStore
	empRepo EmployeeStore
}

func NewService(repo AttendanceStore, empRepo EmployeeStore) Service {
	return &service{repo: repo, empRepo: empRepo}
}

func (s *service) Mark(ctx context.Context, req domain.MarkAttendanceRequest) (*domain.Attendance, bool, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, false, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	emp, err := s.empRepo.Get(ctx, req.EmployeeID)
	if err != nil {
		return nil, false, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	a := &domain.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Re-marking an already marked day updates the status in place rather
	// than rewriting the whole item, so created_at survives untouched.
	if existing, err := s.repo.Get(ctx, req.EmployeeID, req.Date); err == nil {
		if err := s.repo.UpdateStatus(ctx, req.EmployeeID, req.Date, req.Status, now); err != nil {
			return nil, false, err
		}
		a.CreatedAt = existing.CreatedAt
		a.Employee = emp
		return a, false, nil
	}

	if err := s.repo.Put(ctx, a); err != nil {
		return nil, false, err
	}
	a.Employee = emp
	return a, true, nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, int, error) {
	emp, err := s.empRepo.Get(ctx, employeeID)
	if err != nil {
		return nil, 0, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}

	records, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, 0, err
	}

	totalPresent := 0
	for i := range records {
		records[i].Employee = emp
		if records[i].Status == domain.StatusPresent {
			totalPresent++
		}
	}
	return records, totalPresent, nil
}

func (s *service) ListByDate(ctx context.Context, date string) ([]domain.Attendance, error) {
	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	s.attachEmployees(ctx, records)
	return records, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Attendance, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	// Newest day first; ties broken by most recently created.
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	s.attachEmployees(ctx, records)
	return records, nil
}

// attachEmployees resolves each record's employee, fetching every distinct
// id once. Records whose employee has been deleted keep a nil Employee.
func (s *service) attachEmployees(ctx context.Context, records []domain.Attendance) {
	cache := make(map[string]*domain.Employee)
	for i := range records {
		emp, ok := cache[records[i].EmployeeID]
		if !ok {
			emp, _ = s.empRepo.Get(ctx, records[i].EmployeeID)
			cache[records[i].EmployeeID] = emp
		}
		records[i].Employee = emp
	}
}
