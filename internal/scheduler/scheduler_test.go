package scheduler

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/geodrill/internal/language"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/selector"
	"github.com/verte-zerg/geodrill/internal/stats"
	"github.com/verte-zerg/geodrill/internal/store"
	"github.com/verte-zerg/geodrill/internal/taxonomy"
)

var errQuota = errors.New("quota exceeded")

type failingKV struct {
	store.KV
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errQuota
}

func newScheduler(kv store.KV, seed int64) *Scheduler {
	repo := stats.NewRepository(kv, "ns", nil)
	return New(repo, selector.NewWithSource(rand.NewSource(seed)), nil)
}

func TestAdvanceFromEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	sched := newScheduler(kv, 1)
	input := model.StatsData{}

	state, err := sched.Advance(ctx, "uk", input, []model.DivisionID{"d1", "d2"}, "")
	require.NoError(t, err)
	assert.Contains(t, []model.DivisionID{"d1", "d2"}, state.CurrentDivision)
	assert.Equal(t, model.StatsData{state.CurrentDivision: {Seen: 1}}, state.Stats)
	assert.Empty(t, input, "input stats must not be mutated")

	persisted := sched.Repository().Load(ctx, "uk")
	assert.Equal(t, state.Stats, persisted)
}

func TestAdvanceTouchesOnlySeenOfChosen(t *testing.T) {
	ctx := context.Background()
	sched := newScheduler(store.NewMemory(), 7)
	input := model.StatsData{
		"d1": {Seen: 3, Correct: 2, Wrong: 1},
		"d2": {Seen: 1, Wrong: 1},
	}
	state, err := sched.Advance(ctx, "uk", input, []model.DivisionID{"d1", "d2"}, "d1")
	require.NoError(t, err)

	chosen := state.CurrentDivision
	for id, before := range input {
		after := state.Stats[id]
		if id == chosen {
			before.Seen++
		}
		assert.Equal(t, before, after, "division %s", id)
	}
	assert.Len(t, state.Stats, 2)
}

func TestAdvanceEmptyCandidates(t *testing.T) {
	sched := newScheduler(store.NewMemory(), 1)
	_, err := sched.Advance(context.Background(), "uk", model.StatsData{}, nil, "")
	require.ErrorIs(t, err, selector.ErrEmptyCandidates)
}

func TestRecordAnswer(t *testing.T) {
	ctx := context.Background()
	sched := newScheduler(store.NewMemory(), 1)

	updated, err := sched.RecordAnswer(ctx, "uk", model.StatsData{}, "d1", false)
	require.NoError(t, err)
	assert.Equal(t, model.StatsData{"d1": {Wrong: 1}}, updated)

	input := model.StatsData{"d1": {Seen: 2, Correct: 1}, "d2": {Seen: 1}}
	updated, err = sched.RecordAnswer(ctx, "uk", input, "d1", true)
	require.NoError(t, err)
	assert.Equal(t, model.DivisionStats{Seen: 2, Correct: 2}, updated["d1"])
	assert.Equal(t, input["d2"], updated["d2"])
	assert.Equal(t, 1, input["d1"].Correct, "input stats must not be mutated")
	assert.Equal(t, updated, sched.Repository().Load(ctx, "uk"))
}

func TestPersistFailureStillReturnsUpdate(t *testing.T) {
	ctx := context.Background()
	sched := newScheduler(failingKV{KV: store.NewMemory()}, 1)

	state, err := sched.Advance(ctx, "uk", model.StatsData{}, []model.DivisionID{"d1"}, "")
	require.ErrorIs(t, err, ErrPersist)
	require.ErrorIs(t, err, errQuota)
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "uk-ns-stats", perr.Key)
	assert.Equal(t, model.DivisionID("d1"), state.CurrentDivision)
	assert.Equal(t, 1, state.Stats["d1"].Seen)

	updated, err := sched.RecordAnswer(ctx, "uk", state.Stats, "d1", true)
	require.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, model.DivisionStats{Seen: 1, Correct: 1}, updated["d1"])
}

func TestGroupsDoNotShareStats(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	sched := newScheduler(kv, 1)
	_, err := sched.RecordAnswer(ctx, "B", model.StatsData{}, "b1", true)
	require.NoError(t, err)
	_, err = sched.RecordAnswer(ctx, "A", model.StatsData{}, "a1", false)
	require.NoError(t, err)

	assert.Equal(t, model.StatsData{"b1": {Correct: 1}}, sched.Repository().Load(ctx, "B"))
	assert.Equal(t, model.StatsData{"a1": {Wrong: 1}}, sched.Repository().Load(ctx, "A"))
}

func TestRepeatedDrawsFavorUnseen(t *testing.T) {
	ctx := context.Background()
	sched := newScheduler(store.NewMemory(), 99)
	data := model.StatsData{
		"d1": {Seen: 5, Correct: 5},
		"d2": {},
	}
	const draws = 20000
	hits := 0
	for i := 0; i < draws; i++ {
		state, err := sched.Advance(ctx, "uk", data, []model.DivisionID{"d1", "d2"}, "d1")
		require.NoError(t, err)
		if state.CurrentDivision == "d2" {
			hits++
		}
	}
	assert.InDelta(t, 6.5/7.2, float64(hits)/draws, 0.01)
}

func openSQLiteScheduler(t *testing.T) (*Scheduler, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "geodrill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return newScheduler(st, 5), st
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	sched, _ := openSQLiteScheduler(t)
	catalog, err := taxonomy.Default()
	require.NoError(t, err)

	session := NewSession(sched, catalog, "uk", language.EN)
	_, err = session.Answer(ctx, true)
	require.ErrorIs(t, err, ErrNoCurrent)

	state, err := session.Start(ctx)
	require.NoError(t, err)
	first := state.CurrentDivision
	require.NotEmpty(t, first)
	assert.Equal(t, 1, session.Ensure(first).Seen)
	assert.NotEqual(t, string(first), session.Name(first), "expected a localized name")

	updated, err := session.Answer(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, updated[first].Wrong)
	assert.Equal(t, 1, updated[first].Seen)

	for i := 0; i < 10; i++ {
		_, err := session.Advance(ctx)
		require.NoError(t, err)
	}
	total := 0
	for _, entry := range session.State().Stats {
		total += entry.Seen
	}
	assert.Equal(t, 11, total)

	// A fresh session over the same store resumes from persisted stats.
	resumed := NewSession(sched, catalog, "uk", language.ZH)
	_, err = resumed.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resumed.Ensure(first).Wrong)
}

func TestSessionSwitchGroupResetsNamespace(t *testing.T) {
	ctx := context.Background()
	sched, _ := openSQLiteScheduler(t)
	catalog, err := taxonomy.Default()
	require.NoError(t, err)

	session := NewSession(sched, catalog, "uk", language.EN)
	_, err = session.Start(ctx)
	require.NoError(t, err)
	ukCurrent := session.Current()
	_, err = session.Answer(ctx, true)
	require.NoError(t, err)

	state, err := session.SwitchGroup(ctx, "cn")
	require.NoError(t, err)
	assert.Equal(t, model.GroupID("cn"), session.Group())
	assert.Len(t, state.Stats, 1)
	_, carried := state.Stats[ukCurrent]
	assert.False(t, carried)
	assert.Len(t, session.Candidates(), 33)

	_, err = session.SwitchGroup(ctx, "atlantis")
	require.ErrorIs(t, err, taxonomy.ErrUnknownGroup)
}

func TestSessionFailedSwitchKeepsGroup(t *testing.T) {
	ctx := context.Background()
	sched, _ := openSQLiteScheduler(t)
	catalog, err := taxonomy.Default()
	require.NoError(t, err)

	session := NewSession(sched, catalog, "uk", language.EN)
	_, err = session.Start(ctx)
	require.NoError(t, err)
	before := session.State()

	state, err := session.SwitchGroup(ctx, "atlantis")
	require.ErrorIs(t, err, taxonomy.ErrUnknownGroup)
	assert.Equal(t, before, state)
	assert.Equal(t, model.GroupID("uk"), session.Group())
	assert.Len(t, session.Candidates(), 4)
	assert.Equal(t, before.CurrentDivision, session.Current())

	_, err = session.Advance(ctx)
	require.NoError(t, err)
	assert.Contains(t, session.Candidates(), session.Current())
}
