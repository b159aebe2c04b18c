package auctionrunner_test

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/lagertest"
	"code.cloudfoundry.org/workpool"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctionrunner"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ledger"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/simulation"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("RoundController", func() {
	var logger *lagertest.TestLogger
	var workPool *workpool.WorkPool
	var item auctiontypes.Item
	var views auctionrunner.ViewFunc

	newTeam := func(name string, budget int, source auctiontypes.DecisionSource) *auctionrunner.Team {
		return auctionrunner.NewTeam(name, ledger.New(name, budget), source)
	}

	runRound := func(clk clock.Clock, timeout time.Duration, limit int, order []string, teams ...*auctionrunner.Team) auctiontypes.RoundResult {
		controller := auctionrunner.NewRoundController(
			logger, item, teams, fixedOrderer{names: order}, workPool, clk, timeout, limit, views,
		)
		return controller.Run(context.Background())
	}

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("round")

		var err error
		workPool, err = workpool.NewWorkPool(4)
		Ω(err).ShouldNot(HaveOccurred())

		item = auctiontypes.Item{Name: "chalice", Quality: 80, IsRequired: true}

		views = func(team *auctionrunner.Team, state *auctionrunner.RoundState) auctiontypes.GameView {
			view := auctiontypes.GameView{
				CurrentItem:    state.Item,
				Iteration:      state.Iteration,
				IterationLimit: state.IterationLimit,
				MyTeam:         team.Ledger.Snapshot(),
			}
			if state.HighestBid != nil {
				view.HighestBid = state.HighestBid.Amount
				view.HighestBidder = state.HighestBid.Team
			}
			return view
		}
	})

	AfterEach(func() {
		workPool.Stop()
	})

	Context("when no team ever places a valid bid", func() {
		It("closes unsold after the first iteration", func() {
			result := runRound(clock.NewClock(), time.Minute, 10, []string{"team-a", "team-b"},
				newTeam("team-a", 500, simulation.FixedSource{Amount: 0}),
				newTeam("team-b", 500, simulation.FixedSource{Amount: 0}),
			)

			Ω(result.Outcome).Should(Equal(auctiontypes.RoundUnsold))
			Ω(result.Winner).Should(BeEmpty())
			Ω(result.Iterations).Should(Equal(1))
			Ω(result.Bids).Should(HaveLen(2))
		})
	})

	Describe("tie-breaking", func() {
		It("awards equal amounts to the team earliest in the processing order", func() {
			result := runRound(clock.NewClock(), time.Minute, 10, []string{"team-b", "team-a"},
				newTeam("team-a", 500, simulation.FixedSource{Amount: 100}),
				newTeam("team-b", 500, simulation.FixedSource{Amount: 100}),
			)

			Ω(result.Outcome).Should(Equal(auctiontypes.RoundWon))
			Ω(result.Winner).Should(Equal("team-b"))
			Ω(result.WinningBid).Should(Equal(100))
		})

		It("is decided only by the processing order, not identity", func() {
			result := runRound(clock.NewClock(), time.Minute, 10, []string{"team-a", "team-b"},
				newTeam("team-a", 500, simulation.FixedSource{Amount: 100}),
				newTeam("team-b", 500, simulation.FixedSource{Amount: 100}),
			)

			Ω(result.Winner).Should(Equal("team-a"))
		})
	})

	Describe("the iteration limit", func() {
		It("hard-stops an active round in favor of the current leader", func() {
			result := runRound(clock.NewClock(), time.Minute, 3, []string{"team-a", "team-b"},
				newTeam("team-a", 500, simulation.NewScriptedSource(10, 30, 50)),
				newTeam("team-b", 500, simulation.NewScriptedSource(20, 40, 60)),
			)

			Ω(result.Outcome).Should(Equal(auctiontypes.RoundWon))
			Ω(result.Winner).Should(Equal("team-b"))
			Ω(result.WinningBid).Should(Equal(60))
			Ω(result.Iterations).Should(Equal(3))
		})
	})

	Describe("failure degradation", func() {
		It("records a failing source as an implicit zero bid and keeps the round alive", func() {
			result := runRound(clock.NewClock(), time.Minute, 10, []string{"team-a", "team-b"},
				newTeam("team-a", 500, simulation.FailingSource{}),
				newTeam("team-b", 500, simulation.FixedSource{Amount: 100}),
			)

			Ω(result.Outcome).Should(Equal(auctiontypes.RoundWon))
			Ω(result.Winner).Should(Equal("team-b"))

			var degraded []auctiontypes.BidRecord
			for _, record := range result.Bids {
				if record.Team == "team-a" {
					degraded = append(degraded, record)
				}
			}
			Ω(degraded).ShouldNot(BeEmpty())
			for _, record := range degraded {
				Ω(record.Amount).Should(Equal(0))
				Ω(record.FailureReason).Should(Equal(auctiontypes.ReasonMalformedResponse))
			}
		})

		It("degrades negative amounts to zero", func() {
			result := runRound(clock.NewClock(), time.Minute, 10, []string{"team-a"},
				newTeam("team-a", 500, simulation.FixedSource{Amount: -5}),
			)

			Ω(result.Outcome).Should(Equal(auctiontypes.RoundUnsold))
			Ω(result.Bids[0].Amount).Should(Equal(0))
			Ω(result.Bids[0].FailureReason).Should(Equal(auctiontypes.ReasonMalformedResponse))
		})
	})

	Describe("decision timeouts", func() {
		It("degrades a stalled source to a no-response zero bid", func() {
			fakeClock := fakeclock.NewFakeClock(time.Now())
			results := make(chan auctiontypes.RoundResult, 1)

			go func() {
				results <- runRound(fakeClock, 30*time.Second, 10, []string{"team-a", "team-b"},
					newTeam("team-a", 500, simulation.StallingSource{}),
					newTeam("team-b", 500, simulation.StallingSource{}),
				)
			}()

			Eventually(fakeClock.WatcherCount).Should(Equal(2))
			fakeClock.Increment(31 * time.Second)

			var result auctiontypes.RoundResult
			Eventually(results).Should(Receive(&result))

			Ω(result.Outcome).Should(Equal(auctiontypes.RoundUnsold))
			Ω(result.Bids).Should(HaveLen(2))
			for _, record := range result.Bids {
				Ω(record.Amount).Should(Equal(0))
				Ω(record.FailureReason).Should(Equal(auctiontypes.ReasonNoResponse))
			}
		})
	})

	It("keeps the highest bid non-decreasing across a round", func() {
		result := runRound(clock.NewClock(), time.Minute, 20, []string{"team-a", "team-b"},
			newTeam("team-a", 500, simulation.SniperSource{Ceiling: 200}),
			newTeam("team-b", 500, simulation.SniperSource{Ceiling: 150}),
		)

		Ω(result.Outcome).Should(Equal(auctiontypes.RoundWon))

		last := 0
		for _, record := range result.Bids {
			if record.Outcome == auctiontypes.BidAccepted {
				Ω(record.Amount).Should(BeNumerically(">", last))
				last = record.Amount
			}
		}
		Ω(result.WinningBid).Should(Equal(last))
	})
})
