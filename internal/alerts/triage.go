package alerts

import (
	"fmt"
	"sync"

	"stockguard/internal/common"
)

// Filter selects which triage statuses a derived view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterNew       Filter = "new"
	FilterReviewed  Filter = "reviewed"
	FilterDismissed Filter = "dismissed"
)

// ValidFilter reports whether f is one of the four triage tabs.
func ValidFilter(f Filter) bool {
	switch f {
	case FilterAll, FilterNew, FilterReviewed, FilterDismissed:
		return true
	}
	return false
}

// Matches reports whether an alert with the given status is visible under
// the filter.
func (f Filter) Matches(s Status) bool {
	return f == FilterAll || string(f) == string(s)
}

// Summary holds the per-status counts for the dashboard tiles. It is always
// computed on demand from the registry, never cached, so it cannot go stale.
type Summary struct {
	All       int `json:"all"`
	New       int `json:"new"`
	Reviewed  int `json:"reviewed"`
	Dismissed int `json:"dismissed"`
}

// Triage is the presentation-facing view-model over a Registry: the active
// filter tab, the single selected alert, and the status-transition entry
// points. The selection is a weak reference by id, so an alert disappearing
// from the registry degrades to "nothing selected" rather than dangling.
type Triage struct {
	mu          sync.RWMutex
	registry    *Registry
	filter      Filter
	selectedID  string
	hasSelected bool
}

func NewTriage(registry *Registry) *Triage {
	return &Triage{registry: registry, filter: FilterAll}
}

// SetFilter switches the active tab. It is a pure view-model state change
// and never touches the registry.
func (t *Triage) SetFilter(f Filter) error {
	if !ValidFilter(f) {
		return fmt.Errorf("%w: unknown filter %q", common.ErrValidation, f)
	}
	t.mu.Lock()
	t.filter = f
	t.mu.Unlock()
	return nil
}

// ActiveFilter returns the current tab.
func (t *Triage) ActiveFilter() Filter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.filter
}

// VisibleAlerts returns the alerts matching the active filter, preserving
// registry insertion order. The result is recomputed on every call.
func (t *Triage) VisibleAlerts() []Alert {
	t.mu.RLock()
	filter := t.filter
	t.mu.RUnlock()

	all := t.registry.ListAll()
	visible := make([]Alert, 0, len(all))
	for _, a := range all {
		if filter.Matches(a.Status) {
			visible = append(visible, a)
		}
	}
	return visible
}

// Select points the selection at the given alert. An id absent from the
// registry fails with NotFound and leaves the previous selection intact.
func (t *Triage) Select(id string) error {
	if _, err := t.registry.Get(id); err != nil {
		return err
	}

	t.mu.Lock()
	t.selectedID = id
	t.hasSelected = true
	t.mu.Unlock()
	return nil
}

// Selected resolves the current selection. It returns false both when
// nothing was ever selected and when the selected id no longer resolves;
// the latter is deliberately not an error so registry deletions cannot
// strand the view.
func (t *Triage) Selected() (Alert, bool) {
	t.mu.RLock()
	id, ok := t.selectedID, t.hasSelected
	t.mu.RUnlock()

	if !ok {
		return Alert{}, false
	}

	a, err := t.registry.Get(id)
	if err != nil {
		return Alert{}, false
	}
	return a, true
}

// ClearSelection drops the selection.
func (t *Triage) ClearSelection() {
	t.mu.Lock()
	t.selectedID = ""
	t.hasSelected = false
	t.mu.Unlock()
}

// MarkReviewed is a convenience wrapper over Registry.SetStatus.
func (t *Triage) MarkReviewed(id string) error {
	return t.registry.SetStatus(id, StatusReviewed)
}

// Dismiss is a convenience wrapper over Registry.SetStatus.
func (t *Triage) Dismiss(id string) error {
	return t.registry.SetStatus(id, StatusDismissed)
}

// Counts computes the summary tiles from the registry.
func (t *Triage) Counts() Summary {
	var s Summary
	for _, a := range t.registry.ListAll() {
		s.All++
		switch a.Status {
		case StatusNew:
			s.New++
		case StatusReviewed:
			s.Reviewed++
		case StatusDismissed:
			s.Dismissed++
		}
	}
	return s
}
