package sinkhandlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"code.cloudfoundry.org/lager/lagertest"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctionrunner"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/communication/http/sinkhandlers"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ranking"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handlers", func() {
	var server *httptest.Server

	result := auctionrunner.GameResult{
		GameID: "game-1",
		Rounds: []auctiontypes.RoundResult{
			{
				Item:       auctiontypes.Item{Name: "chalice", Quality: 80, IsRequired: true},
				Outcome:    auctiontypes.RoundWon,
				Winner:     "team-b",
				WinningBid: 150,
				Iterations: 3,
			},
		},
		Rankings: []ranking.Entry{
			{Rank: 1, Team: "team-b", RequiredCount: 1, QualitySum: 80, RemainingBudget: 350},
		},
		Log: auctiontypes.GameLog{
			GameID: "game-1",
			Settlements: []auctiontypes.SettlementRecord{
				{Outcome: auctiontypes.RoundWon, Winner: "team-b", Price: 150},
			},
		},
	}

	get := func(path string, into interface{}) *http.Response {
		resp, err := http.Get(server.URL + path)
		Ω(err).ShouldNot(HaveOccurred())
		defer resp.Body.Close()
		Ω(json.NewDecoder(resp.Body).Decode(into)).Should(Succeed())
		return resp
	}

	BeforeEach(func() {
		handler, err := sinkhandlers.New(result, lagertest.NewTestLogger("sink"))
		Ω(err).ShouldNot(HaveOccurred())
		server = httptest.NewServer(handler)
	})

	AfterEach(func() {
		server.Close()
	})

	It("serves the game log", func() {
		var log auctiontypes.GameLog
		resp := get("/game/log", &log)

		Ω(resp.Header.Get("Content-Type")).Should(Equal("application/json"))
		Ω(log.GameID).Should(Equal("game-1"))
		Ω(log.Settlements).Should(HaveLen(1))
	})

	It("serves the per-round results", func() {
		var rounds []auctiontypes.RoundResult
		get("/game/rounds", &rounds)

		Ω(rounds).Should(HaveLen(1))
		Ω(rounds[0].Winner).Should(Equal("team-b"))
		Ω(rounds[0].WinningBid).Should(Equal(150))
	})

	It("serves the final rankings", func() {
		var entries []ranking.Entry
		get("/game/rankings", &entries)

		Ω(entries).Should(HaveLen(1))
		Ω(entries[0].Team).Should(Equal("team-b"))
		Ω(entries[0].Rank).Should(Equal(1))
	})

	It("404s unknown paths", func() {
		resp, err := http.Get(server.URL + "/game/nope")
		Ω(err).ShouldNot(HaveOccurred())
		resp.Body.Close()
		Ω(resp.StatusCode).Should(Equal(http.StatusNotFound))
	})
})
