package auctionrunner

import (
	"context"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	"code.cloudfoundry.org/workpool"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
)

// ViewFunc builds one team's private view of the game for the current
// iteration. Views are constructed before any of the iteration's bids are
// resolved, so every team sees the same frozen state.
type ViewFunc func(team *Team, state *RoundState) auctiontypes.GameView

// RoundController drives the auction of a single item: it derives a fresh
// processing order every iteration, gathers bids from all teams in
// parallel, folds them through the resolver strictly in processing order,
// and applies the stop rules.
type RoundController struct {
	state    *RoundState
	teams    []*Team
	orderer  Orderer
	workPool *workpool.WorkPool
	clock    clock.Clock
	timeout  time.Duration
	views    ViewFunc
	logger   lager.Logger
}

func NewRoundController(
	logger lager.Logger,
	item auctiontypes.Item,
	teams []*Team,
	orderer Orderer,
	workPool *workpool.WorkPool,
	clk clock.Clock,
	timeout time.Duration,
	iterationLimit int,
	views ViewFunc,
) *RoundController {
	return &RoundController{
		state:    NewRoundState(item, iterationLimit),
		teams:    teams,
		orderer:  orderer,
		workPool: workPool,
		clock:    clk,
		timeout:  timeout,
		views:    views,
		logger:   logger,
	}
}

// Run executes iterations until a stop rule fires and returns the round's
// outcome. A round always terminates: either an iteration passes with no
// accepted bid, or the iteration limit is reached.
func (rc *RoundController) Run(ctx context.Context) auctiontypes.RoundResult {
	logger := rc.logger.Session("run-round", lager.Data{
		"item":            rc.state.Item.Name,
		"iteration-limit": rc.state.IterationLimit,
	})

	for {
		iterLogger := logger.Session("iteration", lager.Data{"iteration": rc.state.Iteration})

		order := rc.orderer.Order(rc.teams)
		submissions := rc.collectBids(ctx, iterLogger, order)

		accepted := false
		for i, team := range order {
			sub := submissions[i]
			bid := auctiontypes.Bid{
				Team:          team.Name,
				Amount:        sub.amount,
				Iteration:     rc.state.Iteration,
				SequenceIndex: i,
			}

			outcome := Evaluate(bid, rc.state, team.Ledger)
			if sub.reason != "" {
				rc.state.History[len(rc.state.History)-1].FailureReason = sub.reason
			}
			if outcome == auctiontypes.BidAccepted {
				accepted = true
			}
		}

		if leader := rc.state.HighestBid; leader != nil {
			iterLogger.Info("iteration-complete", lager.Data{
				"highest-bid":    leader.Amount,
				"highest-bidder": leader.Team,
				"accepted":       accepted,
			})
		} else {
			iterLogger.Info("iteration-complete", lager.Data{"accepted": accepted})
		}

		// Stop rules: an iteration with no accepted bid closes the round
		// immediately; the iteration limit is a hard stop won by whoever
		// leads after the final iteration.
		if !accepted || rc.state.Iteration == rc.state.IterationLimit {
			return rc.conclude(logger)
		}

		rc.state.Iteration++
	}
}

func (rc *RoundController) conclude(logger lager.Logger) auctiontypes.RoundResult {
	result := auctiontypes.RoundResult{
		Item:       rc.state.Item,
		Iterations: rc.state.Iteration,
		Bids:       rc.state.History,
	}

	if rc.state.HighestBid == nil {
		result.Outcome = auctiontypes.RoundUnsold
		logger.Info("round-unsold", lager.Data{"iterations": result.Iterations})
		return result
	}

	result.Outcome = auctiontypes.RoundWon
	result.Winner = rc.state.HighestBid.Team
	result.WinningBid = rc.state.HighestBid.Amount
	logger.Info("round-won", lager.Data{
		"winner":     result.Winner,
		"price":      result.WinningBid,
		"iterations": result.Iterations,
	})
	return result
}

type submission struct {
	amount int
	reason string
}

// collectBids fans out the decision-source calls for one iteration. The
// calls may run concurrently; the results are folded back strictly in
// processing order by the caller, so concurrency never leaks into the
// tie-break.
func (rc *RoundController) collectBids(ctx context.Context, logger lager.Logger, order []*Team) []submission {
	submissions := make([]submission, len(order))

	wg := &sync.WaitGroup{}
	wg.Add(len(order))
	for i, team := range order {
		i, team := i, team
		view := rc.views(team, rc.state)
		rc.workPool.Submit(func() {
			defer wg.Done()
			submissions[i] = rc.obtainBid(ctx, logger, team, view)
		})
	}
	wg.Wait()

	return submissions
}

func (rc *RoundController) obtainBid(ctx context.Context, logger lager.Logger, team *Team, view auctiontypes.GameView) submission {
	logger = logger.Session("obtain-bid", lager.Data{"team": team.Name})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type answer struct {
		amount int
		err    error
	}
	done := make(chan answer, 1)
	go func() {
		amount, err := team.Source.BidFor(ctx, view)
		done <- answer{amount: amount, err: err}
	}()

	timer := rc.clock.NewTimer(rc.timeout)
	defer timer.Stop()

	select {
	case a := <-done:
		if a.err != nil {
			logger.Error("decision-failed", a.err)
			return submission{amount: 0, reason: auctiontypes.ReasonMalformedResponse}
		}
		if a.amount < 0 {
			logger.Info("negative-amount-degraded", lager.Data{"amount": a.amount})
			return submission{amount: 0, reason: auctiontypes.ReasonMalformedResponse}
		}
		logger.Debug("bid-obtained", lager.Data{"amount": a.amount})
		return submission{amount: a.amount}
	case <-timer.C():
		logger.Info("decision-timed-out", lager.Data{"timeout": rc.timeout.String()})
		return submission{amount: 0, reason: auctiontypes.ReasonNoResponse}
	}
}
