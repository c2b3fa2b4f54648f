package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
)

type ledgerKey struct {
	employeeID string
	day        string
	eventType  attendance.EventType
}

// LedgerStore keeps events in a map keyed by (employee, day, type), so
// the one-event-per-day invariant holds by construction even under
// concurrent appends.
type LedgerStore struct {
	mu     sync.RWMutex
	events map[ledgerKey]attendance.Event
	byID   map[string]ledgerKey
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		events: make(map[ledgerKey]attendance.Event),
		byID:   make(map[string]ledgerKey),
	}
}

// Append implements attendance.LedgerRepository.
func (s *LedgerStore) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey{employeeID: event.EmployeeID, day: event.Day, eventType: event.Type}
	if _, exists := s.events[key]; exists {
		return attendance.Event{}, attendance.ErrDuplicateEvent
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	s.events[key] = event
	s.byID[event.ID] = key
	return event, nil
}

// EventsForDay implements attendance.LedgerRepository.
func (s *LedgerStore) EventsForDay(ctx context.Context, employeeID, day string) ([]attendance.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []attendance.Event
	for key, event := range s.events {
		if key.employeeID == employeeID && key.day == day {
			result = append(result, event)
		}
	}
	sortByTimestamp(result)
	return result, nil
}

// EventsInRange implements attendance.LedgerRepository.
func (s *LedgerStore) EventsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []attendance.Event
	for key, event := range s.events {
		if employeeID != "" && key.employeeID != employeeID {
			continue
		}
		if event.Timestamp.Before(start) || !event.Timestamp.Before(end) {
			continue
		}
		result = append(result, event)
	}
	sortByTimestamp(result)
	return result, nil
}

// GetByID implements attendance.LedgerRepository.
func (s *LedgerStore) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.byID[id]
	if !ok {
		return attendance.Event{}, attendance.ErrEventNotFound
	}
	return s.events[key], nil
}

// UpdateAdjustment implements attendance.LedgerRepository.
func (s *LedgerStore) UpdateAdjustment(ctx context.Context, id string, adj attendance.Adjustment) (attendance.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.byID[id]
	if !ok {
		return attendance.Event{}, attendance.ErrEventNotFound
	}

	event := s.events[key]
	if adj.FineAmount != nil {
		event.FineAmount = *adj.FineAmount
	}
	if adj.BonusAmount != nil {
		event.BonusAmount = *adj.BonusAmount
	}
	if adj.AdminNotes != nil {
		event.AdminNotes = adj.AdminNotes
	}
	s.events[key] = event
	return event, nil
}

func sortByTimestamp(events []attendance.Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}
