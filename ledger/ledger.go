// Package ledger tracks per-team economic state for the length of a game:
// a budget that only ever decreases and a grow-only list of acquired items.
package ledger

import (
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
)

type TeamLedger struct {
	team     string
	budget   int
	acquired []auctiontypes.Item
}

func New(team string, startingBudget int) *TeamLedger {
	return &TeamLedger{
		team:   team,
		budget: startingBudget,
	}
}

func (l *TeamLedger) Team() string {
	return l.team
}

func (l *TeamLedger) CurrentBudget() int {
	return l.budget
}

// Charge debits the budget. The amount must be non-negative and within the
// remaining budget.
func (l *TeamLedger) Charge(amount int) error {
	if amount < 0 || amount > l.budget {
		return auctiontypes.ErrInsufficientBudget
	}
	l.budget -= amount
	return nil
}

// Award appends an item to the acquired list. Duplicates are legal; there is
// no upper bound on collection size.
func (l *TeamLedger) Award(item auctiontypes.Item) {
	l.acquired = append(l.acquired, item)
}

func (l *TeamLedger) AcquiredItems() []auctiontypes.Item {
	items := make([]auctiontypes.Item, len(l.acquired))
	copy(items, l.acquired)
	return items
}

func (l *TeamLedger) AcquiredRequiredCount() int {
	count := 0
	for _, item := range l.acquired {
		if item.IsRequired {
			count++
		}
	}
	return count
}

func (l *TeamLedger) AcquiredRequiredQualitySum() int {
	sum := 0
	for _, item := range l.acquired {
		if item.IsRequired {
			sum += item.Quality
		}
	}
	return sum
}

// Snapshot returns the externally visible view of this ledger.
func (l *TeamLedger) Snapshot() auctiontypes.TeamSnapshot {
	return auctiontypes.TeamSnapshot{
		Name:     l.team,
		Budget:   l.budget,
		Acquired: l.AcquiredItems(),
	}
}
