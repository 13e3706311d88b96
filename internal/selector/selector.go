// Package selector picks the next division with a stats-weighted random draw.
package selector

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/stats"
)

const (
	// ExplorationWeight is returned for divisions without any answers.
	ExplorationWeight = 6.5
	missRateFactor    = 4.0
	unseenBonus       = 0.4
	repeatPenalty     = 0.6
)

// ErrEmptyCandidates reports a draw over an empty candidate list.
var ErrEmptyCandidates = errors.New("no candidate divisions")

// Weight computes the sampling weight of id. The result is always > 0.
// An empty previous means there was no preceding division.
func Weight(data model.StatsData, id, previous model.DivisionID) float64 {
	entry := stats.Ensure(data, id)
	attempts := entry.Attempts()
	var w float64
	if attempts == 0 {
		w = ExplorationWeight
	} else {
		missRate := float64(entry.Wrong) / float64(attempts)
		freshness := 1 / float64(entry.Seen+1)
		w = 1 + missRate*missRateFactor + freshness
		if entry.Seen == 0 {
			w += unseenBonus
		}
	}
	if previous != "" && id == previous {
		w *= repeatPenalty
	}
	return w
}

// Weights returns Weight for each candidate, in candidate order.
func Weights(candidates []model.DivisionID, data model.StatsData, previous model.DivisionID) []float64 {
	weights := make([]float64, len(candidates))
	for i, id := range candidates {
		weights[i] = Weight(data, id, previous)
	}
	return weights
}

// Selector draws divisions using its own random source.
type Selector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Selector seeded with the current time.
func New() *Selector {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Selector drawing from src.
func NewWithSource(src rand.Source) *Selector {
	return &Selector{rnd: rand.New(src)}
}

// PickNext draws one candidate with probability proportional to its weight.
func (s *Selector) PickNext(candidates []model.DivisionID, data model.StatsData, previous model.DivisionID) (model.DivisionID, error) {
	if len(candidates) == 0 {
		return "", ErrEmptyCandidates
	}
	weights := Weights(candidates, data, previous)
	total := 0.0
	for _, w := range weights {
		total += w
	}

	threshold := s.float64() * total
	for i, w := range weights {
		threshold -= w
		if threshold <= 0 {
			return candidates[i], nil
		}
	}
	// Rounding can leave a tiny positive remainder past the last weight.
	return candidates[len(candidates)-1], nil
}

func (s *Selector) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}
