// Package alerts owns the canonical set of fraud alerts and the triage
// workflow over them: the registry is the only mutation entry point for an
// alert's triage status, and the Triage view-model derives the filtered
// views the dashboard renders.
package alerts

import (
	"fmt"
	"time"
)

// Category classifies the detected anomaly.
type Category string

const (
	CategoryPumpAndDump    Category = "pump_dump"
	CategoryInsiderTrading Category = "insider_trading"
	CategorySpoofing       Category = "spoofing"
	CategoryWashTrading    Category = "wash_trading"
	CategoryManipulation   Category = "manipulation"
)

// Label returns the display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryPumpAndDump:
		return "Pump & Dump"
	case CategoryInsiderTrading:
		return "Insider Trading"
	case CategorySpoofing:
		return "Spoofing"
	case CategoryWashTrading:
		return "Wash Trading"
	case CategoryManipulation:
		return "Market Manipulation"
	default:
		return string(c)
	}
}

// Severity is the assessed risk level.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Status is the mutable triage classification of an alert. Every transition
// between statuses is permitted, including re-opening a dismissed alert;
// there is no terminal state.
type Status string

const (
	StatusNew       Status = "new"
	StatusReviewed  Status = "reviewed"
	StatusDismissed Status = "dismissed"
)

// ValidStatus reports whether s is one of the three triage statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusReviewed, StatusDismissed:
		return true
	}
	return false
}

// Alert is one detected market anomaly. Status is the only field that
// changes after creation.
type Alert struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	Confidence  int       `json:"confidence"` // 0–100
	Change      float64   `json:"change"`     // percent price change, signed
	DetectedAt  time.Time `json:"detected_at"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
}

// Age renders the detection time as a relative label ("45 minutes ago"),
// the way the dashboard presents it.
func (a Alert) Age(now time.Time) string {
	d := now.Sub(a.DetectedAt)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		if h := int(d.Hours()); h == 1 {
			return "1 hour ago"
		} else {
			return fmt.Sprintf("%d hours ago", h)
		}
	default:
		if days := int(d.Hours() / 24); days == 1 {
			return "1 day ago"
		} else {
			return fmt.Sprintf("%d days ago", days)
		}
	}
}
