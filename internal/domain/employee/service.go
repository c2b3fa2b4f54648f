package employee

import "context"

// EmployeeService defines business logic for employee management
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, includeInactive bool) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Deactivate retires an employee without deleting history
	Deactivate(ctx context.Context, id string) error

	// EnrollFace stores or replaces the employee's face embedding
	EnrollFace(ctx context.Context, req EnrollFaceRequest) (EmployeeResponse, error)
}
