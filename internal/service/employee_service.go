package service

import (
	"context"
	"strings"
	"time"

	"techcom/internal/domain"
	"techcom/internal/dto"
	"techcom/internal/logger"
	"techcom/internal/util"

	"go.uber.org/zap"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req dto.EmployeeRequest) (*dto.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	SearchEmployees(ctx context.Context, filter domain.SearchFilter) ([]dto.EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id string, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
	RestoreEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error)
}

type employeeService struct {
	employees domain.EmployeeRepository
	users     domain.UserRepository
}

func NewEmployeeService(employees domain.EmployeeRepository, users domain.UserRepository) EmployeeService {
	return &employeeService{employees: employees, users: users}
}

func parseHireDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ValidationErrors{domain.NewInvalidFormatError("hire_date", s)}
	}
	return t, nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, req dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	hireDate, err := parseHireDate(req.HireDate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	e := &domain.Employee{
		ID:         util.NewULID(),
		UserID:     strings.TrimSpace(req.UserID),
		FullName:   strings.TrimSpace(req.FullName),
		Email:      domain.NormalizeEmail(req.Email),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		HireDate:   hireDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, e.UserID); err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, passThrough("failed to save employee", err)
	}
	logger.Get().Info("Employee created", zap.String("employeeID", e.ID))
	resp := dto.ToEmployeeResponse(e)
	return &resp, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToEmployeeResponse(e)
	return &resp, nil
}

func (s *employeeService) SearchEmployees(ctx context.Context, filter domain.SearchFilter) ([]dto.EmployeeResponse, error) {
	employees, err := s.employees.Search(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to search employees", err)
	}
	return dto.ToEmployeeResponses(employees), nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id string, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Deleted {
		return nil, domain.NewNotFoundError("employee", id)
	}
	if req.UserID != nil && strings.TrimSpace(*req.UserID) != e.UserID {
		e.UserID = strings.TrimSpace(*req.UserID)
		if err := s.requireUser(ctx, e.UserID); err != nil {
			return nil, err
		}
	}
	setTrimmed(&e.FullName, req.FullName)
	setTrimmed(&e.Department, req.Department)
	setTrimmed(&e.Position, req.Position)
	if req.Email != nil {
		e.Email = domain.NormalizeEmail(*req.Email)
	}
	if req.HireDate != nil {
		if e.HireDate, err = parseHireDate(*req.HireDate); err != nil {
			return nil, err
		}
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.employees.Update(ctx, e); err != nil {
		return nil, passThrough("failed to save employee", err)
	}
	resp := dto.ToEmployeeResponse(e)
	return &resp, nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, id string) error {
	_, err := s.toggle(ctx, id, func(e *domain.Employee) error { return e.SoftDelete.Delete() })
	return err
}

func (s *employeeService) RestoreEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	return s.toggle(ctx, id, func(e *domain.Employee) error { return e.SoftDelete.Restore() })
}

func (s *employeeService) toggle(ctx context.Context, id string, apply func(*domain.Employee) error) (*dto.EmployeeResponse, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(e); err != nil {
		return nil, err
	}
	if err := s.employees.Update(ctx, e); err != nil {
		return nil, passThrough("failed to update employee", err)
	}
	resp := dto.ToEmployeeResponse(e)
	return &resp, nil
}

func (s *employeeService) find(ctx context.Context, id string) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get employee", err)
	}
	if e == nil {
		return nil, domain.NewNotFoundError("employee", id)
	}
	return e, nil
}

func (s *employeeService) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	_, err := findUser(ctx, s.users, userID)
	return err
}
