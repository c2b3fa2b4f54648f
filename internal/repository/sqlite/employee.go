package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

const employeeColumns = `
	id, name, is_active, work_start, work_end,
	wage_type, base_wage, overtime_hourly_rate, face_embedding,
	created_at, updated_at
`

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var embedding *string
	if emp.Enrolled() {
		data, err := emp.FaceEmbedding.JSON()
		if err != nil {
			return employee.Employee{}, err
		}
		v := string(data)
		embedding = &v
	}

	_, err := r.store.db.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.IsActive, emp.WorkStart, emp.WorkEnd,
		string(emp.WageType), emp.BaseWage.String(), emp.OvertimeHourlyRate.String(), embedding,
		emp.CreatedAt, emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`

	emp, err := scanEmployee(r.store.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	query := `
		UPDATE employees SET
			name = ?, is_active = ?, work_start = ?, work_end = ?,
			wage_type = ?, base_wage = ?, overtime_hourly_rate = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.store.db.ExecContext(ctx, query,
		emp.Name, emp.IsActive, emp.WorkStart, emp.WorkEnd,
		string(emp.WageType), emp.BaseWage.String(), emp.OvertimeHourlyRate.String(), emp.UpdatedAt,
		emp.ID,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.GetByID(ctx, emp.ID)
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE employees SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateFaceEmbedding implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateFaceEmbedding(ctx context.Context, id string, embedding []byte) error {
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE employees SET face_embedding = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(embedding), id)
	if err != nil {
		return fmt.Errorf("failed to update face embedding: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListEnrolled implements employee.EmployeeRepository.
func (r *employeeRepository) ListEnrolled(ctx context.Context) ([]employee.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active = 1 AND face_embedding IS NOT NULL
		ORDER BY name ASC
	`

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var emp employee.Employee
	var wageType, baseWage, overtimeRate string
	var embedding *string

	err := row.Scan(
		&emp.ID, &emp.Name, &emp.IsActive, &emp.WorkStart, &emp.WorkEnd,
		&wageType, &baseWage, &overtimeRate, &embedding,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.WageType = employee.WageType(wageType)
	if emp.BaseWage, err = decimal.NewFromString(baseWage); err != nil {
		return employee.Employee{}, fmt.Errorf("corrupt base wage %q: %w", baseWage, err)
	}
	if emp.OvertimeHourlyRate, err = decimal.NewFromString(overtimeRate); err != nil {
		return employee.Employee{}, fmt.Errorf("corrupt overtime rate %q: %w", overtimeRate, err)
	}
	if embedding != nil {
		parsed, err := facematch.ParseEmbedding([]byte(*embedding))
		if err != nil {
			return employee.Employee{}, err
		}
		emp.FaceEmbedding = parsed
	}

	return emp, nil
}

func scanEmployees(rows *sql.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}
