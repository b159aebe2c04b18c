package routes

import "github.com/tedsuo/rata"

const (
	ChatCompletions = "ChatCompletions"

	GameLog      = "GameLog"
	GameRounds   = "GameRounds"
	GameRankings = "GameRankings"
)

// LLMRoutes targets any OpenAI-compatible chat completions endpoint.
var LLMRoutes = rata.Routes{
	{Path: "/chat/completions", Method: "POST", Name: ChatCompletions},
}

// SinkRoutes is the read-only surface the engine exposes after a game:
// the full log, per-round results, and the final ranking.
var SinkRoutes = rata.Routes{
	{Path: "/game/log", Method: "GET", Name: GameLog},
	{Path: "/game/rounds", Method: "GET", Name: GameRounds},
	{Path: "/game/rankings", Method: "GET", Name: GameRankings},
}
