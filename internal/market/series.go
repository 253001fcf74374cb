// Package market generates the simulated price and sentiment data the
// dashboard renders. Nothing in here touches a real market feed: series are
// random walks with occasional injected spikes, matching the product's
// sample-data behavior.
package market

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Point is one chart sample. The renderer contract is a finite ordered
// sequence of these plus a loading flag; anomalous points get a marker.
type Point struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	IsAnomaly bool    `json:"isAnomaly"`
}

// anomalyChance is the per-point probability of an injected spike or dip.
const anomalyChance = 0.07

// Generator produces simulated series. It owns its randomness source so
// tests can seed it deterministically. rand.Rand is not safe for concurrent
// use and the generator is shared between the tick loop and request
// handlers, so every draw happens under the mutex.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// PriceSeries generates a daily random walk ending at now: points days long,
// starting between 150 and 250, drifting ±5 per step, with occasional ±40
// anomaly jumps.
func (g *Generator) PriceSeries(now time.Time, points int) []Point {
	g.mu.Lock()
	defer g.mu.Unlock()

	value := 150 + g.rng.Float64()*100
	base := now.AddDate(0, 0, -points)

	series := make([]Point, 0, points)
	for i := 0; i < points; i++ {
		isAnomaly := g.rng.Float64() < anomalyChance
		if isAnomaly {
			if g.rng.Float64() > 0.5 {
				value += 40
			} else {
				value -= 40
			}
		} else {
			value += g.rng.Float64()*10 - 5
		}

		day := base.AddDate(0, 0, i+1)
		series = append(series, Point{
			Label:     day.Format("Jan 2"),
			Value:     round2(value),
			IsAnomaly: isAnomaly,
		})
	}
	return series
}

// Tick is one live-market update pushed over the websocket stream.
type Tick struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"` // percent vs previous tick
	IsAnomaly bool      `json:"isAnomaly"`
	At        time.Time `json:"at"`
}

// liveSymbols is the watchlist the live-market page streams.
var liveSymbols = []string{"TSLA", "NVDA", "AAPL", "GOOG", "AMC", "GME"}

// NextTicks advances every watched symbol one step and returns the batch.
// Prices persist across calls so the walk is continuous.
func (g *Generator) NextTicks(now time.Time, prices map[string]float64) []Tick {
	g.mu.Lock()
	defer g.mu.Unlock()

	ticks := make([]Tick, 0, len(liveSymbols))
	for _, symbol := range liveSymbols {
		prev, ok := prices[symbol]
		if !ok {
			prev = 50 + g.rng.Float64()*400
		}

		isAnomaly := g.rng.Float64() < anomalyChance
		next := prev
		if isAnomaly {
			next *= 1 + (g.rng.Float64()*0.16 - 0.08)
		} else {
			next *= 1 + (g.rng.Float64()*0.02 - 0.01)
		}
		if next < 1 {
			next = 1
		}
		prices[symbol] = next

		ticks = append(ticks, Tick{
			Symbol:    symbol,
			Price:     round2(next),
			Change:    round2((next - prev) / prev * 100),
			IsAnomaly: isAnomaly,
			At:        now,
		})
	}
	return ticks
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
