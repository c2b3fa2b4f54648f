// Package memory provides in-memory repository implementations for
// tests and ephemeral runs. Each store guards its maps with a RWMutex
// and enforces the same invariants as the SQL stores.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
)

type EmployeeStore struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeStore() *EmployeeStore {
	return &EmployeeStore{employees: make(map[string]employee.Employee)}
}

// Create implements employee.EmployeeRepository.
func (s *EmployeeStore) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees[emp.ID] = emp
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (s *EmployeeStore) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (s *EmployeeStore) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]employee.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		if !includeInactive && !emp.IsActive {
			continue
		}
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update implements employee.EmployeeRepository.
func (s *EmployeeStore) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[emp.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	s.employees[emp.ID] = emp
	return emp, nil
}

// Deactivate implements employee.EmployeeRepository.
func (s *EmployeeStore) Deactivate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = false
	s.employees[id] = emp
	return nil
}

// UpdateFaceEmbedding implements employee.EmployeeRepository.
func (s *EmployeeStore) UpdateFaceEmbedding(ctx context.Context, id string, embedding []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	parsed, err := facematch.ParseEmbedding(embedding)
	if err != nil {
		return err
	}
	emp.FaceEmbedding = parsed
	s.employees[id] = emp
	return nil
}

// ListEnrolled implements employee.EmployeeRepository.
func (s *EmployeeStore) ListEnrolled(ctx context.Context) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []employee.Employee
	for _, emp := range s.employees {
		if emp.IsActive && emp.Enrolled() {
			result = append(result, emp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
