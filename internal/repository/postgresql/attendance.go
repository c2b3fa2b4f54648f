package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) attendance.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Append implements attendance.LedgerRepository. The unique index on
// (employee_id, day, event_type) turns a lost insert race into
// ErrDuplicateEvent instead of a double row.
func (r *ledgerRepository) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, employee_id, ts, day, event_type, status,
			fine_amount, bonus_amount, admin_notes, photo_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.Timestamp,
		event.Day,
		event.Type,
		event.Status,
		event.FineAmount,
		event.BonusAmount,
		event.AdminNotes,
		event.PhotoURL,
	).Scan(&event.CreatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Event{}, attendance.ErrDuplicateEvent
		}
		return attendance.Event{}, fmt.Errorf("failed to append event: %w", err)
	}

	return event, nil
}

const eventColumns = `
	e.id, e.employee_id, e.ts, e.day, e.event_type, e.status,
	e.fine_amount, e.bonus_amount, e.admin_notes, e.photo_url, e.created_at,
	emp.name
`

// EventsForDay implements attendance.LedgerRepository.
func (r *ledgerRepository) EventsForDay(ctx context.Context, employeeID, day string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.employee_id = $1 AND e.day = $2
		ORDER BY e.ts ASC
	`

	rows, err := q.Query(ctx, query, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query day events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// EventsInRange implements attendance.LedgerRepository.
func (r *ledgerRepository) EventsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.ts >= $1 AND e.ts < $2
		  AND ($3 = '' OR e.employee_id = $3::uuid)
		ORDER BY e.ts ASC
	`

	rows, err := q.Query(ctx, query, start, end, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events in range: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// GetByID implements attendance.LedgerRepository.
func (r *ledgerRepository) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.id = $1
	`

	event, err := scanEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// UpdateAdjustment implements attendance.LedgerRepository. Only the
// adjustment columns are touched; everything else on a ledger row is
// immutable.
func (r *ledgerRepository) UpdateAdjustment(ctx context.Context, id string, adj attendance.Adjustment) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events SET
			fine_amount = COALESCE($2, fine_amount),
			bonus_amount = COALESCE($3, bonus_amount),
			admin_notes = COALESCE($4, admin_notes)
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, adj.FineAmount, adj.BonusAmount, adj.AdminNotes)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Event{}, attendance.ErrEventNotFound
	}

	return r.GetByID(ctx, id)
}

type pgRow interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row pgRow) (attendance.Event, error) {
	var event attendance.Event
	err := row.Scan(
		&event.ID, &event.EmployeeID, &event.Timestamp, &event.Day, &event.Type, &event.Status,
		&event.FineAmount, &event.BonusAmount, &event.AdminNotes, &event.PhotoURL, &event.CreatedAt,
		&event.EmployeeName,
	)
	if err != nil {
		return attendance.Event{}, err
	}
	event.Timestamp = event.Timestamp.UTC()
	return event, nil
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}
