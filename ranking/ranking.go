// Package ranking turns final team ledgers into the ordered game result.
package ranking

import (
	"sort"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ledger"
)

type Entry struct {
	Rank            int      `json:"rank"`
	Team            string   `json:"team"`
	RequiredCount   int      `json:"required_count"`
	QualitySum      int      `json:"quality_sum"`
	RemainingBudget int      `json:"remaining_budget"`
	Tied            bool     `json:"tied,omitempty"`
	Items           []string `json:"items"`
}

// Calculate orders teams by acquired required count, then required quality
// sum, then remaining budget, all descending. Teams equal on all three
// criteria keep their input order and are flagged Tied rather than silently
// disambiguated.
func Calculate(ledgers []*ledger.TeamLedger) []Entry {
	entries := make([]Entry, 0, len(ledgers))
	for _, l := range ledgers {
		items := l.AcquiredItems()
		names := make([]string, 0, len(items))
		for _, item := range items {
			names = append(names, item.Name)
		}

		entries = append(entries, Entry{
			Team:            l.Team(),
			RequiredCount:   l.AcquiredRequiredCount(),
			QualitySum:      l.AcquiredRequiredQualitySum(),
			RemainingBudget: l.CurrentBudget(),
			Items:           names,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.RequiredCount != b.RequiredCount {
			return a.RequiredCount > b.RequiredCount
		}
		if a.QualitySum != b.QualitySum {
			return a.QualitySum > b.QualitySum
		}
		return a.RemainingBudget > b.RemainingBudget
	})

	for i := range entries {
		entries[i].Rank = i + 1
		if i > 0 && sameStanding(entries[i], entries[i-1]) {
			entries[i].Tied = true
			entries[i-1].Tied = true
		}
	}

	return entries
}

func sameStanding(a, b Entry) bool {
	return a.RequiredCount == b.RequiredCount &&
		a.QualitySum == b.QualitySum &&
		a.RemainingBudget == b.RemainingBudget
}
