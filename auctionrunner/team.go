package auctionrunner

import (
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ledger"
)

// Team pairs a ledger with the decision source that bids on its behalf. The
// ledger is owned by the engine; the decision source only ever sees
// snapshots.
type Team struct {
	Name   string
	Ledger *ledger.TeamLedger
	Source auctiontypes.DecisionSource
}

func NewTeam(name string, l *ledger.TeamLedger, source auctiontypes.DecisionSource) *Team {
	return &Team{
		Name:   name,
		Ledger: l,
		Source: source,
	}
}
