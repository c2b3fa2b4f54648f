package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedEmployee(t *testing.T, store *Store, name string) employee.Employee {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	emp := employee.Employee{
		ID:                 uuid.Must(uuid.NewV7()).String(),
		Name:               name,
		IsActive:           true,
		WageType:           employee.WageMonthly,
		BaseWage:           decimal.NewFromInt(3_000_000),
		OvertimeHourlyRate: decimal.NewFromInt(20_000),
		FaceEmbedding:      facematch.Embedding{0.1, 0.2, 0.3},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	_, err := NewEmployeeRepository(store).Create(context.Background(), emp)
	require.NoError(t, err)
	return emp
}

func testEvent(employeeID, day, clock string, eventType attendance.EventType) attendance.Event {
	ts, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return attendance.Event{
		ID:          uuid.Must(uuid.NewV7()).String(),
		EmployeeID:  employeeID,
		Timestamp:   ts.UTC(),
		Day:         day,
		Type:        eventType,
		Status:      attendance.StatusOnTime,
		FineAmount:  decimal.Zero,
		BonusAmount: decimal.Zero,
	}
}

// The unique index is the last line of defense against duplicate scans
// racing past the policy pre-check.
func TestLedgerUniqueConstraint(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	repo := NewLedgerRepository(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Sari")

	_, err := repo.Append(ctx, testEvent(emp.ID, "2026-03-02", "07:00", attendance.EventCheckIn))
	require.NoError(t, err)

	_, err = repo.Append(ctx, testEvent(emp.ID, "2026-03-02", "07:30", attendance.EventCheckIn))
	assert.ErrorIs(t, err, attendance.ErrDuplicateEvent)

	// Other types on the same day still insert.
	_, err = repo.Append(ctx, testEvent(emp.ID, "2026-03-02", "15:00", attendance.EventCheckOut))
	assert.NoError(t, err)

	// Same type on another day still inserts.
	_, err = repo.Append(ctx, testEvent(emp.ID, "2026-03-03", "07:00", attendance.EventCheckIn))
	assert.NoError(t, err)
}

func TestLedgerEventsForDayRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	repo := NewLedgerRepository(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Sari")

	fine := decimal.RequireFromString("12500.50")
	event := testEvent(emp.ID, "2026-03-02", "07:20", attendance.EventCheckIn)
	event.Status = attendance.StatusLate
	event.FineAmount = fine

	_, err := repo.Append(ctx, event)
	require.NoError(t, err)

	events, err := repo.EventsForDay(ctx, emp.ID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, attendance.StatusLate, got.Status)
	assert.True(t, got.FineAmount.Equal(fine), "decimal survives the TEXT column: %s", got.FineAmount)
	assert.Equal(t, "Sari", got.EmployeeName)
	assert.True(t, got.Timestamp.Equal(event.Timestamp))
}

func TestLedgerEventsInRange(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	repo := NewLedgerRepository(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Sari")
	other := seedEmployee(t, store, "Budi")

	for _, day := range []string{"2026-03-02", "2026-03-03", "2026-03-10"} {
		_, err := repo.Append(ctx, testEvent(emp.ID, day, "07:00", attendance.EventCheckIn))
		require.NoError(t, err)
	}
	_, err := repo.Append(ctx, testEvent(other.ID, "2026-03-02", "07:05", attendance.EventCheckIn))
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	events, err := repo.EventsInRange(ctx, emp.ID, start, end)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	all, err := repo.EventsInRange(ctx, "", start, end)
	require.NoError(t, err)
	assert.Len(t, all, 3, "empty employee ID spans all employees")
}

func TestLedgerUpdateAdjustment(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	repo := NewLedgerRepository(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Sari")

	created, err := repo.Append(ctx, testEvent(emp.ID, "2026-03-02", "07:00", attendance.EventCheckIn))
	require.NoError(t, err)

	fine := decimal.NewFromInt(50_000)
	notes := "late without notice"
	updated, err := repo.UpdateAdjustment(ctx, created.ID, attendance.Adjustment{
		FineAmount: &fine,
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.True(t, updated.FineAmount.Equal(fine))
	require.NotNil(t, updated.AdminNotes)
	assert.Equal(t, notes, *updated.AdminNotes)
	assert.True(t, updated.BonusAmount.IsZero(), "nil fields stay untouched")

	_, err = repo.UpdateAdjustment(ctx, uuid.Must(uuid.NewV7()).String(), attendance.Adjustment{FineAmount: &fine})
	assert.ErrorIs(t, err, attendance.ErrEventNotFound)
}

func TestEmployeeRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	repo := NewEmployeeRepository(store)
	ctx := context.Background()
	emp := seedEmployee(t, store, "Sari")

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.Name, got.Name)
	assert.Equal(t, emp.FaceEmbedding, got.FaceEmbedding)
	assert.True(t, got.BaseWage.Equal(emp.BaseWage))

	require.NoError(t, repo.Deactivate(ctx, emp.ID))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	enrolled, err := repo.ListEnrolled(ctx)
	require.NoError(t, err)
	assert.Empty(t, enrolled, "deactivated employees leave the kiosk candidate set")

	_, err = repo.GetByID(ctx, uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
