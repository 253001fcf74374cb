package alerts

import (
	"fmt"
	"sync"

	"stockguard/internal/common"
)

// Registry is the authoritative, insertion-ordered set of alerts. All
// status mutations funnel through SetStatus; every other field is immutable
// after insertion. Reads return copies so callers can never mutate the
// registry behind its back.
type Registry struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*Alert
}

func NewRegistry() *Registry {
	return &Registry{data: make(map[string]*Alert)}
}

// Insert adds an alert. IDs must be unique and confidence must be within
// [0,100]; violations are reported as validation errors.
func (r *Registry) Insert(a Alert) error {
	if a.ID == "" {
		return fmt.Errorf("%w: alert id is required", common.ErrValidation)
	}
	if a.Confidence < 0 || a.Confidence > 100 {
		return fmt.Errorf("%w: confidence %d out of range", common.ErrValidation, a.Confidence)
	}
	if !ValidStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", common.ErrValidation, a.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[a.ID]; exists {
		return fmt.Errorf("%w: duplicate alert id %q", common.ErrValidation, a.ID)
	}

	alertCopy := a
	r.data[a.ID] = &alertCopy
	r.order = append(r.order, a.ID)
	return nil
}

// ListAll returns all alerts in insertion order.
func (r *Registry) ListAll() []Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Alert, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.data[id])
	}
	return result
}

// Get returns the alert with the given id, or common.ErrNotFound.
func (r *Registry) Get(id string) (Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.data[id]
	if !exists {
		return Alert{}, fmt.Errorf("alert %q: %w", id, common.ErrNotFound)
	}
	return *a, nil
}

// SetStatus moves the alert to newStatus. Any status may move to any other
// status, identity transitions included; no business rule forbids
// re-opening a dismissed alert. On error nothing is mutated.
func (r *Registry) SetStatus(id string, newStatus Status) error {
	if !ValidStatus(newStatus) {
		return fmt.Errorf("%w: unknown status %q", common.ErrValidation, newStatus)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.data[id]
	if !exists {
		return fmt.Errorf("alert %q: %w", id, common.ErrNotFound)
	}

	a.Status = newStatus
	return nil
}

// Len reports the number of alerts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
