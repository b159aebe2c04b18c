// Package simulation provides in-process decision sources for games that
// do not need a model backend: fixed and scripted bidders for tests, and a
// simple sniping strategy for demo runs.
package simulation

import (
	"context"
	"errors"
	"sync"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
)

var ErrScriptExhausted = errors.New("scripted source has no bids left")

// FixedSource bids the same amount every time it is asked.
type FixedSource struct {
	Amount int
}

func (s FixedSource) BidFor(ctx context.Context, view auctiontypes.GameView) (int, error) {
	return s.Amount, nil
}

// ScriptedSource replays a fixed sequence of amounts, one per call, then
// signals inability to decide.
type ScriptedSource struct {
	lock    sync.Mutex
	amounts []int
	next    int
}

func NewScriptedSource(amounts ...int) *ScriptedSource {
	return &ScriptedSource{amounts: amounts}
}

func (s *ScriptedSource) BidFor(ctx context.Context, view auctiontypes.GameView) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.next >= len(s.amounts) {
		return 0, ErrScriptExhausted
	}
	amount := s.amounts[s.next]
	s.next++
	return amount, nil
}

// SniperSource outbids the current leader by one, bounded by a per-item
// ceiling and its own budget. It opens bidding at one when no leader exists.
type SniperSource struct {
	Ceiling int
}

func (s SniperSource) BidFor(ctx context.Context, view auctiontypes.GameView) (int, error) {
	if view.HighestBidder == view.MyTeam.Name {
		return 0, nil
	}

	bid := view.HighestBid + 1
	if bid > s.Ceiling || bid > view.MyTeam.Budget {
		return 0, nil
	}
	return bid, nil
}

// FailingSource always fails; it models a collaborator outage. The engine
// retries it every iteration like any other team.
type FailingSource struct {
	Err error
}

func (s FailingSource) BidFor(ctx context.Context, view auctiontypes.GameView) (int, error) {
	err := s.Err
	if err == nil {
		err = errors.New("decision source unavailable")
	}
	return 0, err
}

// StallingSource never answers until the context is cancelled; it models a
// hung backend and exercises the engine's timeout path.
type StallingSource struct{}

func (s StallingSource) BidFor(ctx context.Context, view auctiontypes.GameView) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}
