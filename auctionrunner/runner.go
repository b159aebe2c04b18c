package auctionrunner

import (
	"context"
	"fmt"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	"code.cloudfoundry.org/workpool"
	"github.com/google/uuid"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/catalog"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ledger"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ranking"
)

type GameResult struct {
	GameID   string                     `json:"game_id"`
	Rounds   []auctiontypes.RoundResult `json:"rounds"`
	Rankings []ranking.Entry            `json:"rankings"`
	Log      auctiontypes.GameLog       `json:"log"`
	Fatal    string                     `json:"fatal,omitempty"`
}

// AuctionRunner drives the catalog through one round at a time. Rounds are
// strictly sequential; all ledgers and the game log are owned here and
// never handed out mutably.
type AuctionRunner struct {
	gameID   string
	catalog  *catalog.Catalog
	teams    []*Team
	config   auctiontypes.GameConfig
	orderer  Orderer
	workPool *workpool.WorkPool
	clock    clock.Clock
	logger   lager.Logger

	remaining []auctiontypes.Item
	rounds    []auctiontypes.RoundResult
	log       auctiontypes.GameLog
}

func NewAuctionRunner(
	logger lager.Logger,
	cat *catalog.Catalog,
	teams []*Team,
	config auctiontypes.GameConfig,
	orderer Orderer,
	workPool *workpool.WorkPool,
	clk clock.Clock,
) *AuctionRunner {
	gameID := uuid.NewString()
	return &AuctionRunner{
		gameID:    gameID,
		catalog:   cat,
		teams:     teams,
		config:    config,
		orderer:   orderer,
		workPool:  workPool,
		clock:     clk,
		logger:    logger,
		remaining: cat.ItemsInAuctionOrder(),
		log:       auctiontypes.GameLog{GameID: gameID},
	}
}

func (r *AuctionRunner) GameID() string {
	return r.gameID
}

// Run plays every round and computes the final ranking. Expected per-bid
// failures are absorbed into the log. A settlement failure means the
// resolver and a ledger disagreed about money, which is fatal: the error is
// returned alongside the partial result rather than a silently truncated
// ranking.
func (r *AuctionRunner) Run(ctx context.Context) (GameResult, error) {
	logger := r.logger.Session("run-game", lager.Data{
		"game":  r.gameID,
		"items": r.catalog.Len(),
		"teams": len(r.teams),
	})
	logger.Info("starting")

	for i, item := range r.catalog.ItemsInAuctionOrder() {
		roundLogger := logger.Session("round", lager.Data{"round": i + 1, "item": item.Name})

		controller := NewRoundController(
			roundLogger,
			item,
			r.teams,
			r.orderer,
			r.workPool,
			r.clock,
			r.config.BidTimeout,
			r.config.IterationLimit,
			r.viewFor,
		)
		result := controller.Run(ctx)

		settlement, err := r.settle(roundLogger, result)
		if err != nil {
			return GameResult{
				GameID: r.gameID,
				Rounds: r.rounds,
				Log:    r.log,
				Fatal:  err.Error(),
			}, err
		}

		r.rounds = append(r.rounds, result)
		r.log.Bids = append(r.log.Bids, result.Bids...)
		r.log.Settlements = append(r.log.Settlements, settlement)
		r.removeRemaining(item.Name)
	}

	rankings := r.calculateRankings()
	logger.Info("finished", lager.Data{"winner": winnerOf(rankings)})

	return GameResult{
		GameID:   r.gameID,
		Rounds:   r.rounds,
		Rankings: rankings,
		Log:      r.log,
	}, nil
}

// Snapshot returns a copy of the game log; callers may read it mid-game but
// never mutate the engine's copy.
func (r *AuctionRunner) Snapshot() auctiontypes.GameLog {
	snapshot := auctiontypes.GameLog{GameID: r.log.GameID}
	snapshot.Bids = append(snapshot.Bids, r.log.Bids...)
	snapshot.Settlements = append(snapshot.Settlements, r.log.Settlements...)
	return snapshot
}

func (r *AuctionRunner) settle(logger lager.Logger, result auctiontypes.RoundResult) (auctiontypes.SettlementRecord, error) {
	record := auctiontypes.SettlementRecord{
		Item:       result.Item,
		Outcome:    result.Outcome,
		Winner:     result.Winner,
		Price:      result.WinningBid,
		Iterations: result.Iterations,
	}

	if result.Outcome != auctiontypes.RoundWon {
		logger.Info("item-discarded", lager.Data{"item": result.Item.Name})
		return record, nil
	}

	team := r.teamNamed(result.Winner)
	if team == nil {
		err := fmt.Errorf("%w: round won by unknown team %q", auctiontypes.ErrBudgetInvariantBroken, result.Winner)
		logger.Error("settlement-failed", err)
		return record, err
	}

	if err := team.Ledger.Charge(result.WinningBid); err != nil {
		err = fmt.Errorf("%w: charging %d to %q: %v",
			auctiontypes.ErrBudgetInvariantBroken, result.WinningBid, result.Winner, err)
		logger.Error("settlement-failed", err)
		return record, err
	}
	team.Ledger.Award(result.Item)

	record.BudgetAfter = team.Ledger.CurrentBudget()
	logger.Info("item-settled", lager.Data{
		"winner":       result.Winner,
		"price":        result.WinningBid,
		"budget-after": record.BudgetAfter,
	})
	return record, nil
}

// viewFor builds one team's private view: its own ledger in full, opponents
// as budget plus acquired list only.
func (r *AuctionRunner) viewFor(team *Team, state *RoundState) auctiontypes.GameView {
	opponents := make([]auctiontypes.TeamSnapshot, 0, len(r.teams)-1)
	for _, t := range r.teams {
		if t.Name != team.Name {
			opponents = append(opponents, t.Ledger.Snapshot())
		}
	}

	remaining := make([]auctiontypes.Item, 0, len(r.remaining))
	for _, item := range r.remaining {
		if item.Name != state.Item.Name {
			remaining = append(remaining, item)
		}
	}

	view := auctiontypes.GameView{
		CurrentItem:    state.Item,
		Iteration:      state.Iteration,
		IterationLimit: state.IterationLimit,
		MyTeam:         team.Ledger.Snapshot(),
		Opponents:      opponents,
		RemainingItems: remaining,
		PastRounds:     append([]auctiontypes.RoundResult(nil), r.rounds...),
		BidHistory:     append([]auctiontypes.BidRecord(nil), state.History...),
	}
	if state.HighestBid != nil {
		view.HighestBid = state.HighestBid.Amount
		view.HighestBidder = state.HighestBid.Team
	}
	return view
}

func (r *AuctionRunner) calculateRankings() []ranking.Entry {
	ledgers := make([]*ledger.TeamLedger, 0, len(r.teams))
	for _, team := range r.teams {
		ledgers = append(ledgers, team.Ledger)
	}
	return ranking.Calculate(ledgers)
}

func (r *AuctionRunner) teamNamed(name string) *Team {
	for _, team := range r.teams {
		if team.Name == name {
			return team
		}
	}
	return nil
}

func (r *AuctionRunner) removeRemaining(name string) {
	for i, item := range r.remaining {
		if item.Name == name {
			r.remaining = append(r.remaining[:i], r.remaining[i+1:]...)
			return
		}
	}
}

func winnerOf(entries []ranking.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Team
}
