// Package scheduler advances the quiz to the next division and records answers.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/geodrill/internal/logger"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/selector"
	"github.com/verte-zerg/geodrill/internal/stats"
)

// ErrPersist matches every failure to write updated stats.
var ErrPersist = errors.New("failed to persist stats")

// PersistError reports a failed write. The stats returned alongside it are
// still the updated in-memory value.
type PersistError struct {
	Group model.GroupID
	Key   string
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%v for group %q (key %q): %v", ErrPersist, e.Group, e.Key, e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{ErrPersist, e.Err}
}

// Scheduler combines the stats repository with the weighted selector.
type Scheduler struct {
	repo *stats.Repository
	sel  *selector.Selector
	log  *logger.Logger
}

// New returns a Scheduler. A nil sel uses a clock-seeded selector.
func New(repo *stats.Repository, sel *selector.Selector, log *logger.Logger) *Scheduler {
	if sel == nil {
		sel = selector.New()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{repo: repo, sel: sel, log: log}
}

// Repository returns the stats repository the scheduler writes through.
func (s *Scheduler) Repository() *stats.Repository {
	return s.repo
}

// Advance draws the next division, increments its seen counter and persists
// the result. data is not modified.
func (s *Scheduler) Advance(ctx context.Context, group model.GroupID, data model.StatsData, candidates []model.DivisionID, previous model.DivisionID) (model.State, error) {
	next, err := s.sel.PickNext(candidates, data, previous)
	if err != nil {
		return model.State{Stats: data, CurrentDivision: previous}, fmt.Errorf("group %q: %w", group, err)
	}
	updated := data.Clone()
	entry := stats.Ensure(updated, next)
	entry.Seen++
	updated[next] = entry

	state := model.State{Stats: updated, CurrentDivision: next}
	s.log.Debug("advanced", "group", group, "division", next, "previous", previous, "seen", entry.Seen)
	return state, s.persist(ctx, group, updated)
}

// RecordAnswer increments the correct or wrong counter of id and persists
// the result. The seen counter is left unchanged. data is not modified.
func (s *Scheduler) RecordAnswer(ctx context.Context, group model.GroupID, data model.StatsData, id model.DivisionID, wasCorrect bool) (model.StatsData, error) {
	updated := data.Clone()
	entry := stats.Ensure(updated, id)
	if wasCorrect {
		entry.Correct++
	} else {
		entry.Wrong++
	}
	updated[id] = entry
	s.log.Debug("answer recorded", "group", group, "division", id, "correct", wasCorrect)
	return updated, s.persist(ctx, group, updated)
}

func (s *Scheduler) persist(ctx context.Context, group model.GroupID, data model.StatsData) error {
	if err := s.repo.Save(ctx, group, data); err != nil {
		key := s.repo.Key(group)
		s.log.Error("failed to save stats", "group", group, "key", key, "error", err)
		return &PersistError{Group: group, Key: key, Err: err}
	}
	return nil
}
