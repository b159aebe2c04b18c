package auctionrunner_test

import (
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctionrunner"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ledger"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Evaluate", func() {
	var state *auctionrunner.RoundState
	var teamLedger *ledger.TeamLedger

	bid := func(team string, amount int) auctiontypes.Bid {
		return auctiontypes.Bid{Team: team, Amount: amount, Iteration: state.Iteration}
	}

	BeforeEach(func() {
		state = auctionrunner.NewRoundState(auctiontypes.Item{Name: "chalice", Quality: 80, IsRequired: true}, 10)
		teamLedger = ledger.New("team-a", 500)
	})

	Context("with no current leader", func() {
		It("accepts a strictly positive bid and installs it as the leader", func() {
			outcome := auctionrunner.Evaluate(bid("team-a", 100), state, teamLedger)

			Ω(outcome).Should(Equal(auctiontypes.BidAccepted))
			Ω(state.HighestBid).ShouldNot(BeNil())
			Ω(state.HighestBid.Amount).Should(Equal(100))
			Ω(state.HighestBid.Team).Should(Equal("team-a"))
		})

		It("rejects a zero opening bid", func() {
			outcome := auctionrunner.Evaluate(bid("team-a", 0), state, teamLedger)

			Ω(outcome).Should(Equal(auctiontypes.BidRejectedLowBid))
			Ω(state.HighestBid).Should(BeNil())
		})
	})

	Context("with a standing leader", func() {
		BeforeEach(func() {
			auctionrunner.Evaluate(bid("team-b", 100), state, ledger.New("team-b", 500))
		})

		It("rejects an equal amount as not strictly greater", func() {
			outcome := auctionrunner.Evaluate(bid("team-a", 100), state, teamLedger)

			Ω(outcome).Should(Equal(auctiontypes.BidRejectedLowBid))
			Ω(state.HighestBid.Team).Should(Equal("team-b"))
		})

		It("accepts a strictly greater amount", func() {
			outcome := auctionrunner.Evaluate(bid("team-a", 101), state, teamLedger)

			Ω(outcome).Should(Equal(auctiontypes.BidAccepted))
			Ω(state.HighestBid.Team).Should(Equal("team-a"))
			Ω(state.HighestBid.Amount).Should(Equal(101))
		})
	})

	Context("when the amount exceeds the bidder's budget", func() {
		It("rejects over budget even if it would beat the leader", func() {
			outcome := auctionrunner.Evaluate(bid("team-a", 501), state, teamLedger)

			Ω(outcome).Should(Equal(auctiontypes.BidRejectedOverBudget))
			Ω(state.HighestBid).Should(BeNil())
		})
	})

	It("retains every evaluated bid in the history with its outcome", func() {
		auctionrunner.Evaluate(bid("team-a", 100), state, teamLedger)
		auctionrunner.Evaluate(bid("team-a", 100), state, teamLedger)
		auctionrunner.Evaluate(bid("team-a", 600), state, teamLedger)

		Ω(state.History).Should(HaveLen(3))
		Ω(state.History[0].Outcome).Should(Equal(auctiontypes.BidAccepted))
		Ω(state.History[1].Outcome).Should(Equal(auctiontypes.BidRejectedLowBid))
		Ω(state.History[2].Outcome).Should(Equal(auctiontypes.BidRejectedOverBudget))
	})

	It("never touches the budget", func() {
		auctionrunner.Evaluate(bid("team-a", 100), state, teamLedger)
		Ω(teamLedger.CurrentBudget()).Should(Equal(500))
	})
})
