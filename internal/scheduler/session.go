package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/geodrill/internal/language"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/stats"
)

// ErrNoCurrent reports an answer recorded before any division was presented.
var ErrNoCurrent = errors.New("no division presented")

// Provider supplies the divisions of a group and their display names.
type Provider interface {
	DivisionIDs(group model.GroupID) ([]model.DivisionID, error)
	DivisionName(group model.GroupID, id model.DivisionID, lang language.Code) string
}

// Session tracks one learner's progress through the active group. It is
// not safe for concurrent use.
type Session struct {
	sched    *Scheduler
	provider Provider

	group      model.GroupID
	lang       language.Code
	candidates []model.DivisionID
	stats      model.StatsData
	current    model.DivisionID
}

// NewSession prepares a session for group; call Start to load it.
func NewSession(sched *Scheduler, provider Provider, group model.GroupID, lang language.Code) *Session {
	return &Session{
		sched:    sched,
		provider: provider,
		group:    group,
		lang:     lang,
		stats:    model.StatsData{},
	}
}

// Start loads the group's stats and candidates and presents the first division.
func (s *Session) Start(ctx context.Context) (model.State, error) {
	return s.load(ctx, s.group)
}

// load validates group and replaces the session state with its stats. The
// session is left untouched when group has no divisions.
func (s *Session) load(ctx context.Context, group model.GroupID) (model.State, error) {
	candidates, err := s.provider.DivisionIDs(group)
	if err != nil {
		return s.State(), err
	}
	if len(candidates) == 0 {
		return s.State(), fmt.Errorf("group %q: no divisions", group)
	}
	s.group = group
	s.candidates = candidates
	s.stats = s.sched.Repository().Load(ctx, group)
	s.current = ""
	return s.Advance(ctx)
}

// Advance presents the next division, avoiding an immediate repeat where the
// weights allow. On a persistence error the session still moves on.
func (s *Session) Advance(ctx context.Context) (model.State, error) {
	state, err := s.sched.Advance(ctx, s.group, s.stats, s.candidates, s.current)
	if err != nil && !errors.Is(err, ErrPersist) {
		return s.State(), err
	}
	s.stats = state.Stats
	s.current = state.CurrentDivision
	return state, err
}

// Answer records the outcome for the current division.
func (s *Session) Answer(ctx context.Context, wasCorrect bool) (model.StatsData, error) {
	if s.current == "" {
		return s.stats, ErrNoCurrent
	}
	updated, err := s.sched.RecordAnswer(ctx, s.group, s.stats, s.current, wasCorrect)
	s.stats = updated
	return updated, err
}

// SwitchGroup replaces the stats namespace with group's and starts over.
// Nothing is carried over from the previous group. An unknown group leaves
// the session as it was.
func (s *Session) SwitchGroup(ctx context.Context, group model.GroupID) (model.State, error) {
	return s.load(ctx, group)
}

// SetLanguage changes the language used by Name.
func (s *Session) SetLanguage(lang language.Code) {
	s.lang = lang
}

// Ensure returns the counters of id in the active group.
func (s *Session) Ensure(id model.DivisionID) model.DivisionStats {
	return stats.Ensure(s.stats, id)
}

// Name returns the display name of id in the active language.
func (s *Session) Name(id model.DivisionID) string {
	return s.provider.DivisionName(s.group, id, s.lang)
}

// State returns the current snapshot.
func (s *Session) State() model.State {
	return model.State{Stats: s.stats, CurrentDivision: s.current}
}

func (s *Session) Group() model.GroupID           { return s.group }
func (s *Session) Language() language.Code        { return s.lang }
func (s *Session) Current() model.DivisionID      { return s.current }
func (s *Session) Candidates() []model.DivisionID { return s.candidates }
