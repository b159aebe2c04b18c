// Package sinkhandlers serves the concluded game as read-only structured
// output: the full log, per-round results, and the final ranking.
package sinkhandlers

import (
	"encoding/json"
	"net/http"

	"code.cloudfoundry.org/lager"
	"github.com/tedsuo/rata"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctionrunner"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/communication/http/routes"
)

func New(result auctionrunner.GameResult, logger lager.Logger) (http.Handler, error) {
	handlers := rata.Handlers{
		routes.GameLog:      jsonHandler(logger, "game-log", result.Log),
		routes.GameRounds:   jsonHandler(logger, "game-rounds", result.Rounds),
		routes.GameRankings: jsonHandler(logger, "game-rankings", result.Rankings),
	}

	return rata.NewRouter(routes.SinkRoutes, handlers)
}

func jsonHandler(logger lager.Logger, name string, payload interface{}) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLogger := logger.Session(name)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			requestLogger.Error("failed-to-encode-response", err)
			return
		}
		requestLogger.Debug("served")
	})
}
