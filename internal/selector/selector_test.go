package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/geodrill/internal/model"
)

type fixedSource struct {
	v int64
}

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

func TestWeightUnseenIsExploration(t *testing.T) {
	data := model.StatsData{
		"seen-only": {Seen: 7},
	}
	assert.Equal(t, ExplorationWeight, Weight(data, "seen-only", ""))
	assert.Equal(t, ExplorationWeight, Weight(data, "absent", ""))
}

func TestWeightFormula(t *testing.T) {
	data := model.StatsData{
		"d1": {Seen: 5, Correct: 5},
		"d2": {Seen: 1, Correct: 1, Wrong: 3},
		"d3": {Seen: 0, Correct: 1, Wrong: 1},
	}
	assert.InDelta(t, 1+1.0/6, Weight(data, "d1", ""), 1e-12)
	assert.InDelta(t, 1+0.75*4+0.5, Weight(data, "d2", ""), 1e-12)
	assert.InDelta(t, 1+0.5*4+1+0.4, Weight(data, "d3", ""), 1e-12)
}

func TestWeightRepeatPenalty(t *testing.T) {
	data := model.StatsData{
		"d1": {Seen: 3, Correct: 1, Wrong: 2},
	}
	for _, id := range []model.DivisionID{"d1", "fresh"} {
		base := Weight(data, id, "")
		assert.InDelta(t, base*0.6, Weight(data, id, id), 1e-12, "id %s", id)
		assert.Equal(t, base, Weight(data, id, "other"), "id %s", id)
	}
	assert.InDelta(t, 3.9, Weight(data, "fresh", "fresh"), 1e-12)
}

func TestWeightPositiveAndMonotonicInMisses(t *testing.T) {
	prev := 0.0
	for wrong := 0; wrong <= 20; wrong++ {
		data := model.StatsData{"d": {Seen: 4, Correct: 5, Wrong: wrong}}
		w := Weight(data, "d", "")
		require.Greater(t, w, 0.0)
		require.Greater(t, Weight(data, "d", "d"), 0.0)
		if wrong > 0 {
			require.Greater(t, w, prev, "wrong=%d", wrong)
		}
		prev = w
	}
}

func TestPickNextEmpty(t *testing.T) {
	sel := NewWithSource(rand.NewSource(1))
	_, err := sel.PickNext(nil, model.StatsData{}, "")
	require.ErrorIs(t, err, ErrEmptyCandidates)
}

func TestPickNextWalksInOrder(t *testing.T) {
	candidates := []model.DivisionID{"a", "b", "c"}

	first := NewWithSource(fixedSource{v: 0})
	got, err := first.PickNext(candidates, model.StatsData{}, "")
	require.NoError(t, err)
	assert.Equal(t, model.DivisionID("a"), got)

	// Draw at 0.5 of 19.5 lands in b's interval [6.5, 13).
	middle := NewWithSource(fixedSource{v: 1 << 62})
	got, err = middle.PickNext(candidates, model.StatsData{}, "")
	require.NoError(t, err)
	assert.Equal(t, model.DivisionID("b"), got)
}

func TestPickNextSingleCandidate(t *testing.T) {
	sel := NewWithSource(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		got, err := sel.PickNext([]model.DivisionID{"only"}, model.StatsData{}, "only")
		require.NoError(t, err)
		require.Equal(t, model.DivisionID("only"), got)
	}
}

func TestPickNextFrequenciesMatchWeights(t *testing.T) {
	data := model.StatsData{
		"d1": {Seen: 5, Correct: 5},
		"d2": {},
		"d3": {Seen: 2, Correct: 1, Wrong: 1},
	}
	candidates := []model.DivisionID{"d1", "d2", "d3"}
	weights := Weights(candidates, data, "d1")
	total := 0.0
	for _, w := range weights {
		total += w
	}

	sel := NewWithSource(rand.NewSource(42))
	const draws = 200000
	counts := map[model.DivisionID]int{}
	for i := 0; i < draws; i++ {
		id, err := sel.PickNext(candidates, data, "d1")
		require.NoError(t, err)
		counts[id]++
	}
	for i, id := range candidates {
		want := weights[i] / total
		got := float64(counts[id]) / draws
		assert.InDelta(t, want, got, 0.01, "division %s", id)
	}
}

func TestScenarioUnseenDominatesAfterRepeat(t *testing.T) {
	data := model.StatsData{
		"d1": {Seen: 5, Correct: 5},
		"d2": {},
	}
	weights := Weights([]model.DivisionID{"d1", "d2"}, data, "d1")
	assert.InDelta(t, (1+1.0/6)*0.6, weights[0], 1e-12)
	assert.Equal(t, 6.5, weights[1])
	assert.InDelta(t, 0.903, weights[1]/(weights[0]+weights[1]), 0.001)
}
