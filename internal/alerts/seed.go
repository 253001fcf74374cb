package alerts

import "time"

// Seeded seeds a registry with the canonical detection set the product
// ships with. Detection times are anchored relative to now so the relative
// age labels come out right.
func Seeded(now time.Time) *Registry {
	r := NewRegistry()

	seed := []Alert{
		{
			ID:          "alert-1",
			Symbol:      "TSLA",
			Category:    CategoryPumpAndDump,
			Severity:    SeverityHigh,
			Confidence:  92,
			Change:      5.7,
			DetectedAt:  now.Add(-10 * time.Minute),
			Description: "Unusual trading volume detected with rapid price increase followed by sudden drop",
			Status:      StatusNew,
		},
		{
			ID:          "alert-2",
			Symbol:      "NVDA",
			Category:    CategoryInsiderTrading,
			Severity:    SeverityMedium,
			Confidence:  78,
			Change:      2.3,
			DetectedAt:  now.Add(-45 * time.Minute),
			Description: "Suspicious trading activity detected prior to earnings announcement",
			Status:      StatusNew,
		},
		{
			ID:          "alert-3",
			Symbol:      "AAPL",
			Category:    CategorySpoofing,
			Severity:    SeverityLow,
			Confidence:  65,
			Change:      0.8,
			DetectedAt:  now.Add(-2 * time.Hour),
			Description: "Multiple large orders placed and cancelled to influence market price",
			Status:      StatusReviewed,
		},
		{
			ID:          "alert-4",
			Symbol:      "GOOG",
			Category:    CategoryWashTrading,
			Severity:    SeverityMedium,
			Confidence:  81,
			Change:      1.6,
			DetectedAt:  now.Add(-3 * time.Hour),
			Description: "Simultaneous buy and sell orders potentially from related accounts",
			Status:      StatusDismissed,
		},
		{
			ID:          "alert-5",
			Symbol:      "AMC",
			Category:    CategoryPumpAndDump,
			Severity:    SeverityHigh,
			Confidence:  95,
			Change:      12.3,
			DetectedAt:  now.Add(-5 * time.Hour),
			Description: "Coordinated social media activity followed by unusual trading volume",
			Status:      StatusReviewed,
		},
		{
			ID:          "alert-6",
			Symbol:      "GME",
			Category:    CategoryManipulation,
			Severity:    SeverityHigh,
			Confidence:  88,
			Change:      8.7,
			DetectedAt:  now.Add(-24 * time.Hour),
			Description: "Potential coordinated trading activity to influence market price",
			Status:      StatusNew,
		},
	}

	for _, a := range seed {
		// seed data is static and valid by construction
		_ = r.Insert(a)
	}

	return r
}
