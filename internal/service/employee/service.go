package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	now := time.Now().UTC()
	emp := employee.Employee{
		ID:                 uuid.Must(uuid.NewV7()).String(),
		Name:               req.Name,
		IsActive:           true,
		WorkStart:          req.WorkStart,
		WorkEnd:            req.WorkEnd,
		WageType:           employee.WageType(req.WageType),
		BaseWage:           req.BaseWage,
		OvertimeHourlyRate: req.OvertimeHourlyRate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, includeInactive bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	if req.WorkStart != nil {
		emp.WorkStart = req.WorkStart
	}
	if req.WorkEnd != nil {
		emp.WorkEnd = req.WorkEnd
	}
	if req.WageType != nil {
		emp.WageType = employee.WageType(*req.WageType)
	}
	if req.BaseWage != nil {
		emp.BaseWage = *req.BaseWage
	}
	if req.OvertimeHourlyRate != nil {
		emp.OvertimeHourlyRate = *req.OvertimeHourlyRate
	}
	emp.UpdatedAt = time.Now().UTC()

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee.ToResponse(updated), nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return s.employeeRepo.Deactivate(ctx, id)
}

// EnrollFace implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EnrollFace(ctx context.Context, req employee.EnrollFaceRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Existence check first so a bad ID surfaces as not-found, not a
	// silent no-op update.
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	data, err := req.Embedding.JSON()
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateFaceEmbedding(ctx, req.EmployeeID, data); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to store face embedding: %w", err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}
