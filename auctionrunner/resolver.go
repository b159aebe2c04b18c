package auctionrunner

import (
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ledger"
)

// RoundState is the mutable state of one item's auction. It is owned by the
// round controller; decision sources only ever see copies.
type RoundState struct {
	Item           auctiontypes.Item
	HighestBid     *auctiontypes.Bid
	History        []auctiontypes.BidRecord
	Iteration      int
	IterationLimit int
}

func NewRoundState(item auctiontypes.Item, iterationLimit int) *RoundState {
	return &RoundState{
		Item:           item,
		Iteration:      1,
		IterationLimit: iterationLimit,
	}
}

// Evaluate applies one proposed bid to the round. The bid is appended to the
// history whatever the outcome; an accepted bid becomes the new leader.
// Budgets are never touched here, only at settlement.
func Evaluate(proposed auctiontypes.Bid, state *RoundState, l *ledger.TeamLedger) auctiontypes.BidOutcome {
	outcome := classify(proposed, state, l)

	state.History = append(state.History, auctiontypes.BidRecord{
		Bid:     proposed,
		Outcome: outcome,
	})

	if outcome == auctiontypes.BidAccepted {
		bid := proposed
		state.HighestBid = &bid
	}

	return outcome
}

func classify(proposed auctiontypes.Bid, state *RoundState, l *ledger.TeamLedger) auctiontypes.BidOutcome {
	if proposed.Amount > l.CurrentBudget() {
		return auctiontypes.BidRejectedOverBudget
	}

	if state.HighestBid != nil {
		if proposed.Amount <= state.HighestBid.Amount {
			return auctiontypes.BidRejectedLowBid
		}
		return auctiontypes.BidAccepted
	}

	// A first bid must be strictly positive.
	if proposed.Amount <= 0 {
		return auctiontypes.BidRejectedLowBid
	}
	return auctiontypes.BidAccepted
}
