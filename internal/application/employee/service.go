package employee

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hrms-lite/api/internal/domain"
	"github.com/hrms-lite/api/internal/pkg/id"
	"github.com/hrms-lite/api/internal/pkg/validate"
)

// EmployeeStore is the minimal repository interface the service needs.
type EmployeeStore interface {
	Put(ctx context.Context, e *domain.Employee) error
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	GetByCode(ctx context.Context, code string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Scan(ctx context.Context) ([]domain.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

type Service interface {
	Create(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

type service struct {
	repo EmployeeStore
}

func NewService(repo EmployeeStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	email := strings.ToLower(req.Email)

	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("employee code already exists: %w", domain.ErrConflict)
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already exists: %w", domain.ErrConflict)
	}

	now := time.Now().UTC()
	e := &domain.Employee{
		EmployeeID: id.New(),
		Code:       req.Code,
		FullName:   req.FullName,
		Email:      email,
		Department: req.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	// Newest first.
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].CreatedAt.After(employees[j].CreatedAt)
	})
	return employees, nil
}

func (s *service) Delete(ctx context.Context, employeeID string) error {
	if _, err := s.repo.Get(ctx, employeeID); err != nil {
		return fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}
	return s.repo.Delete(ctx, employeeID)
}
