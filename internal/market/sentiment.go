package market

// NewsItem is one entry in the sentiment widget's news list.
type NewsItem struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Sentiment string `json:"sentiment"` // positive, negative, neutral
	Timestamp string `json:"timestamp"`
}

// Sentiment is the widget payload: a 0–100 score (above 50 reads positive)
// plus curated headlines.
type Sentiment struct {
	Score     int        `json:"score"`
	NewsItems []NewsItem `json:"newsItems"`
}

// CurrentSentiment returns the widget's sample payload. The score wobbles a
// little around the baseline so the gauge does not look frozen.
func (g *Generator) CurrentSentiment() Sentiment {
	g.mu.Lock()
	score := 62 + g.rng.Intn(11) - 5
	g.mu.Unlock()

	return Sentiment{
		Score: score,
		NewsItems: []NewsItem{
			{
				Source:    "Bloomberg",
				Title:     "Tech stocks rally on positive earnings forecasts",
				Sentiment: "positive",
				Timestamp: "38 min ago",
			},
			{
				Source:    "CNBC",
				Title:     "Market volatility increases as Fed considers rate hikes",
				Sentiment: "negative",
				Timestamp: "1 hour ago",
			},
			{
				Source:    "Twitter",
				Title:     "Trending discussions about potential cryptocurrency regulations",
				Sentiment: "neutral",
				Timestamp: "2 hours ago",
			},
		},
	}
}
