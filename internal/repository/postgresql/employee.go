package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, name, is_active, work_start, work_end,
	wage_type, base_wage, overtime_hourly_rate, face_embedding,
	created_at, updated_at
`

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, name, is_active, work_start, work_end,
			wage_type, base_wage, overtime_hourly_rate, face_embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
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

	err := q.QueryRow(ctx, query,
		emp.ID, emp.Name, emp.IsActive, emp.WorkStart, emp.WorkEnd,
		emp.WageType, emp.BaseWage, emp.OvertimeHourlyRate, embedding,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			name = $2, is_active = $3, work_start = $4, work_end = $5,
			wage_type = $6, base_wage = $7, overtime_hourly_rate = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID, emp.Name, emp.IsActive, emp.WorkStart, emp.WorkEnd,
		emp.WageType, emp.BaseWage, emp.OvertimeHourlyRate,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return emp, nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateFaceEmbedding implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateFaceEmbedding(ctx context.Context, id string, embedding []byte) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET face_embedding = $2, updated_at = NOW() WHERE id = $1`,
		id, string(embedding))
	if err != nil {
		return fmt.Errorf("failed to update face embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListEnrolled implements employee.EmployeeRepository.
func (r *employeeRepository) ListEnrolled(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active AND face_embedding IS NOT NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func scanEmployee(row pgRow) (employee.Employee, error) {
	var emp employee.Employee
	var embedding *string

	err := row.Scan(
		&emp.ID, &emp.Name, &emp.IsActive, &emp.WorkStart, &emp.WorkEnd,
		&emp.WageType, &emp.BaseWage, &emp.OvertimeHourlyRate, &embedding,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
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

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
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
