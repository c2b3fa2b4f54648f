package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	store *Store
}

func NewLedgerRepository(store *Store) attendance.LedgerRepository {
	return &ledgerRepository{store: store}
}

// Append implements attendance.LedgerRepository.
func (r *ledgerRepository) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO attendance_events (
			id, employee_id, ts, day, event_type, status,
			fine_amount, bonus_amount, admin_notes, photo_url, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.store.db.ExecContext(ctx, query,
		event.ID,
		event.EmployeeID,
		event.Timestamp,
		event.Day,
		string(event.Type),
		string(event.Status),
		event.FineAmount.String(),
		event.BonusAmount.String(),
		event.AdminNotes,
		event.PhotoURL,
		event.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
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
	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.employee_id = ? AND e.day = ?
		ORDER BY e.ts ASC
	`

	rows, err := r.store.db.QueryContext(ctx, query, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query day events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// EventsInRange implements attendance.LedgerRepository.
func (r *ledgerRepository) EventsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.ts >= ? AND e.ts < ?
	`
	args := []interface{}{start.UTC(), end.UTC()}
	if employeeID != "" {
		query += ` AND e.employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY e.ts ASC`

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events in range: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByID implements attendance.LedgerRepository.
func (r *ledgerRepository) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.id = ?
	`

	event, err := scanEvent(r.store.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// UpdateAdjustment implements attendance.LedgerRepository.
func (r *ledgerRepository) UpdateAdjustment(ctx context.Context, id string, adj attendance.Adjustment) (attendance.Event, error) {
	query := `
		UPDATE attendance_events SET
			fine_amount = COALESCE(?, fine_amount),
			bonus_amount = COALESCE(?, bonus_amount),
			admin_notes = COALESCE(?, admin_notes)
		WHERE id = ?
	`

	var fine, bonus *string
	if adj.FineAmount != nil {
		v := adj.FineAmount.String()
		fine = &v
	}
	if adj.BonusAmount != nil {
		v := adj.BonusAmount.String()
		bonus = &v
	}

	result, err := r.store.db.ExecContext(ctx, query, fine, bonus, adj.AdminNotes, id)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to update adjustment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return attendance.Event{}, attendance.ErrEventNotFound
	}

	return r.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (attendance.Event, error) {
	var event attendance.Event
	var eventType, status, fine, bonus string

	err := row.Scan(
		&event.ID, &event.EmployeeID, &event.Timestamp, &event.Day, &eventType, &status,
		&fine, &bonus, &event.AdminNotes, &event.PhotoURL, &event.CreatedAt,
		&event.EmployeeName,
	)
	if err != nil {
		return attendance.Event{}, err
	}

	event.Type = attendance.EventType(eventType)
	event.Status = attendance.Status(status)
	if event.FineAmount, err = decimal.NewFromString(fine); err != nil {
		return attendance.Event{}, fmt.Errorf("corrupt fine amount %q: %w", fine, err)
	}
	if event.BonusAmount, err = decimal.NewFromString(bonus); err != nil {
		return attendance.Event{}, fmt.Errorf("corrupt bonus amount %q: %w", bonus, err)
	}
	event.Timestamp = event.Timestamp.UTC()

	return event, nil
}

func scanEvents(rows *sql.Rows) ([]attendance.Event, error) {
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
