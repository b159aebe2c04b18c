package auctionrunner

import (
	"math/rand"
	"sync"
	"time"
)

// Orderer establishes the processing order for one iteration. The order is
// the tie-break contract: among equal amounts submitted in the same
// iteration, the team processed first becomes leader.
type Orderer interface {
	Order(teams []*Team) []*Team
}

// shuffleOrderer derives a fresh order every call, so no team is ever
// guaranteed the same relative precedence by identity alone.
type shuffleOrderer struct {
	lock *sync.Mutex
	r    *rand.Rand
}

func NewShuffleOrderer(seed int64) Orderer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &shuffleOrderer{
		lock: &sync.Mutex{},
		r:    rand.New(rand.NewSource(seed)),
	}
}

func (o *shuffleOrderer) Order(teams []*Team) []*Team {
	shuffled := make([]*Team, len(teams))
	copy(shuffled, teams)

	o.lock.Lock()
	o.r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	o.lock.Unlock()

	return shuffled
}
