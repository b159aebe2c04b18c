package auctiontypes

// TeamSnapshot is the externally visible slice of a team's ledger: budget
// and acquired items, never bid intentions.
type TeamSnapshot struct {
	Name     string `json:"name"`
	Budget   int    `json:"budget"`
	Acquired []Item `json:"acquired_items"`
}

func (s TeamSnapshot) RequiredCount() int {
	count := 0
	for _, item := range s.Acquired {
		if item.IsRequired {
			count++
		}
	}
	return count
}

func (s TeamSnapshot) QualitySum() int {
	sum := 0
	for _, item := range s.Acquired {
		sum += item.Quality
	}
	return sum
}

// GameView is the read-only snapshot handed to a decision source. Every team
// in one iteration sees the same frozen state: the highest bid is the one
// standing at the end of the previous iteration.
type GameView struct {
	CurrentItem    Item           `json:"current_item"`
	Iteration      int            `json:"iteration"`
	IterationLimit int            `json:"iteration_limit"`
	HighestBid     int            `json:"highest_bid"`
	HighestBidder  string         `json:"highest_bidder,omitempty"`
	MyTeam         TeamSnapshot   `json:"my_team"`
	Opponents      []TeamSnapshot `json:"opponents"`
	RemainingItems []Item         `json:"remaining_items"`
	PastRounds     []RoundResult  `json:"past_rounds"`
	BidHistory     []BidRecord    `json:"bid_history"`
}
