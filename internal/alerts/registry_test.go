package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockguard/internal/common"
)

func testAlert(id string, status Status) Alert {
	return Alert{
		ID:          id,
		Symbol:      "TSLA",
		Category:    CategoryPumpAndDump,
		Severity:    SeverityHigh,
		Confidence:  90,
		Change:      5.0,
		DetectedAt:  time.Now().Add(-time.Hour),
		Description: "unusual volume",
		Status:      status,
	}
}

func TestRegistry_InsertAndListAll_PreservesOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(testAlert("a", StatusNew)))
	require.NoError(t, r.Insert(testAlert("b", StatusReviewed)))
	require.NoError(t, r.Insert(testAlert("c", StatusDismissed)))

	all := r.ListAll()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestRegistry_Insert_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Alert)
	}{
		{"empty id", func(a *Alert) { a.ID = "" }},
		{"confidence below range", func(a *Alert) { a.Confidence = -1 }},
		{"confidence above range", func(a *Alert) { a.Confidence = 101 }},
		{"unknown status", func(a *Alert) { a.Status = "archived" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			a := testAlert("a", StatusNew)
			tt.modify(&a)
			assert.ErrorIs(t, r.Insert(a), common.ErrValidation)
			assert.Zero(t, r.Len())
		})
	}
}

func TestRegistry_Insert_DuplicateID(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(testAlert("a", StatusNew)))
	assert.ErrorIs(t, r.Insert(testAlert("a", StatusNew)), common.ErrValidation)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Get_NotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegistry_SetStatus_RoundTrip(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(testAlert("a", StatusNew)))

	before, err := r.Get("a")
	require.NoError(t, err)

	require.NoError(t, r.SetStatus("a", StatusDismissed))

	after, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, StatusDismissed, after.Status)

	// only the status changed
	after.Status = before.Status
	assert.Equal(t, before, after)
}

func TestRegistry_SetStatus_AllTransitionsPermitted(t *testing.T) {
	transitions := []struct {
		from, to Status
	}{
		{StatusNew, StatusReviewed},
		{StatusNew, StatusDismissed},
		{StatusReviewed, StatusDismissed},
		{StatusDismissed, StatusReviewed}, // re-opening is allowed
		{StatusReviewed, StatusReviewed},  // identity transition
	}

	for _, tr := range transitions {
		r := NewRegistry()
		require.NoError(t, r.Insert(testAlert("a", tr.from)))
		require.NoError(t, r.SetStatus("a", tr.to))
		got, err := r.Get("a")
		require.NoError(t, err)
		assert.Equal(t, tr.to, got.Status)
	}
}

func TestRegistry_SetStatus_AbsentIDLeavesRegistryUnchanged(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(testAlert("a", StatusNew)))

	before := r.ListAll()
	err := r.SetStatus("ghost", StatusReviewed)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, before, r.ListAll())
}

func TestRegistry_SetStatus_InvalidStatus(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(testAlert("a", StatusNew)))

	assert.ErrorIs(t, r.SetStatus("a", "archived"), common.ErrValidation)
	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, StatusNew, got.Status)
}

func TestRegistry_ListAll_ReturnsCopies(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Insert(testAlert("a", StatusNew)))

	all := r.ListAll()
	all[0].Status = StatusDismissed

	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, StatusNew, got.Status)
}

func TestSeeded(t *testing.T) {
	now := time.Now()
	r := Seeded(now)

	all := r.ListAll()
	require.Len(t, all, 6)

	// canonical ordering and statuses
	wantIDs := []string{"alert-1", "alert-2", "alert-3", "alert-4", "alert-5", "alert-6"}
	for i, a := range all {
		assert.Equal(t, wantIDs[i], a.ID)
		assert.True(t, ValidStatus(a.Status))
		assert.GreaterOrEqual(t, a.Confidence, 0)
		assert.LessOrEqual(t, a.Confidence, 100)
	}

	first, err := r.Get("alert-1")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", first.Symbol)
	assert.Equal(t, StatusNew, first.Status)
	assert.Equal(t, "10 minutes ago", first.Age(now))
}

func TestAlert_Age(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "just now"},
		{"minutes", 45 * time.Minute, "45 minutes ago"},
		{"one hour", 90 * time.Minute, "1 hour ago"},
		{"hours", 5 * time.Hour, "5 hours ago"},
		{"one day", 26 * time.Hour, "1 day ago"},
		{"days", 3 * 24 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Alert{DetectedAt: now.Add(-tt.ago)}
			assert.Equal(t, tt.want, a.Age(now))
		})
	}
}
