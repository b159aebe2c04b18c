package auctiontypes

import (
	"context"
	"errors"
)

var ErrInvalidCatalog = errors.New("invalid catalog")
var ErrInsufficientBudget = errors.New("insufficient budget")
var ErrBudgetInvariantBroken = errors.New("budget invariant broken")

// Failure reasons recorded on degraded bids. A decision source that cannot
// produce a usable amount never aborts a round; its turn degrades to an
// implicit zero bid carrying one of these reasons.
const (
	ReasonMalformedResponse = "malformed-response"
	ReasonNoResponse        = "no-response"
)

type Item struct {
	Name       string `json:"name"`
	Quality    int    `json:"quality"`
	IsRequired bool   `json:"is_required"`
}

// Bid is one team's submission for the current iteration. SequenceIndex is
// the position the engine assigned the team in this iteration's processing
// order; among equal amounts it is the tie-break.
type Bid struct {
	Team          string `json:"team"`
	Amount        int    `json:"amount"`
	Iteration     int    `json:"iteration"`
	SequenceIndex int    `json:"sequence_index"`
}

type BidOutcome string

const (
	BidAccepted           BidOutcome = "accepted"
	BidRejectedLowBid     BidOutcome = "rejected-low-bid"
	BidRejectedOverBudget BidOutcome = "rejected-over-budget"
)

// BidRecord is the logged form of a bid: every submission is retained,
// rejected ones included, since they are diagnostic signal for analysis.
type BidRecord struct {
	Bid
	Outcome       BidOutcome `json:"outcome"`
	FailureReason string     `json:"failure_reason,omitempty"`
}

type RoundOutcome string

const (
	RoundWon    RoundOutcome = "closed-won"
	RoundUnsold RoundOutcome = "closed-unsold"
)

type RoundResult struct {
	Item       Item         `json:"item"`
	Outcome    RoundOutcome `json:"outcome"`
	Winner     string       `json:"winner,omitempty"`
	WinningBid int          `json:"winning_bid"`
	Iterations int          `json:"iterations"`
	Bids       []BidRecord  `json:"bids"`
}

type SettlementRecord struct {
	Item        Item         `json:"item"`
	Outcome     RoundOutcome `json:"outcome"`
	Winner      string       `json:"winner,omitempty"`
	Price       int          `json:"price"`
	Iterations  int          `json:"iterations"`
	BudgetAfter int          `json:"budget_after"`
}

// GameLog is the append-only record of a whole game: one entry per submitted
// bid plus one settlement record per round. Owned by the engine; everyone
// else sees copies.
type GameLog struct {
	GameID      string             `json:"game_id"`
	Bids        []BidRecord        `json:"bids"`
	Settlements []SettlementRecord `json:"settlements"`
}

// DecisionSource produces a bid amount for one team given that team's
// private view of the game. Returning an error signals inability to decide;
// the engine treats it as an implicit zero bid. Implementations must respect
// ctx cancellation.
type DecisionSource interface {
	BidFor(ctx context.Context, view GameView) (int, error)
}
