package employee

import "context"

// EmployeeRepository persists employees. Implementations must return
// ErrEmployeeNotFound for lookups that match nothing.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, includeInactive bool) ([]Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	Deactivate(ctx context.Context, id string) error
	UpdateFaceEmbedding(ctx context.Context, id string, embedding []byte) error

	// ListEnrolled returns active employees that have a face embedding,
	// the candidate set for kiosk recognition.
	ListEnrolled(ctx context.Context) ([]Employee, error)
}
