// Package visualization turns a finished game into human-facing output:
// aggregate statistics, a terminal report, an SVG report card, and CSV
// exports.
package visualization

import (
	"time"

	"github.com/GaryBoone/GoStats/stats"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctionrunner"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
)

type Stat struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Total  float64
}

func NewStat(data []float64) Stat {
	if len(data) == 0 {
		return Stat{}
	}
	return Stat{
		Min:    stats.StatsMin(data),
		Max:    stats.StatsMax(data),
		Mean:   stats.StatsMean(data),
		StdDev: stats.StatsPopulationStandardDeviation(data),
		Total:  stats.StatsSum(data),
	}
}

type GameReport struct {
	Result   auctionrunner.GameResult
	Duration time.Duration
}

func NewGameReport(result auctionrunner.GameResult, duration time.Duration) *GameReport {
	return &GameReport{
		Result:   result,
		Duration: duration,
	}
}

func (r *GameReport) RoundsPlayed() int {
	return len(r.Result.Rounds)
}

func (r *GameReport) RoundsSold() int {
	sold := 0
	for _, round := range r.Result.Rounds {
		if round.Outcome == auctiontypes.RoundWon {
			sold++
		}
	}
	return sold
}

func (r *GameReport) RoundsUnsold() int {
	return r.RoundsPlayed() - r.RoundsSold()
}

// WinningBidStats aggregates the settlement prices of sold rounds.
func (r *GameReport) WinningBidStats() Stat {
	prices := []float64{}
	for _, round := range r.Result.Rounds {
		if round.Outcome == auctiontypes.RoundWon {
			prices = append(prices, float64(round.WinningBid))
		}
	}
	return NewStat(prices)
}

// IterationStats aggregates how many iterations each round took to close.
func (r *GameReport) IterationStats() Stat {
	iterations := []float64{}
	for _, round := range r.Result.Rounds {
		iterations = append(iterations, float64(round.Iterations))
	}
	return NewStat(iterations)
}

// DegradedBidStats aggregates per-round counts of bids that degraded to
// implicit zeros (malformed or absent responses).
func (r *GameReport) DegradedBidStats() Stat {
	counts := []float64{}
	for _, round := range r.Result.Rounds {
		count := 0.0
		for _, bid := range round.Bids {
			if bid.FailureReason != "" {
				count++
			}
		}
		counts = append(counts, count)
	}
	return NewStat(counts)
}

func (r *GameReport) SpendByTeam() map[string]int {
	spend := map[string]int{}
	for _, settlement := range r.Result.Log.Settlements {
		if settlement.Outcome == auctiontypes.RoundWon {
			spend[settlement.Winner] += settlement.Price
		}
	}
	return spend
}
