// Package stats loads, persists and reports per-division performance counters.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/geodrill/internal/logger"
	"github.com/verte-zerg/geodrill/internal/model"
	"github.com/verte-zerg/geodrill/internal/store"
)

// DefaultNamespace is the key prefix used when none is configured.
const DefaultNamespace = "geo-regions"

// Ensure returns the counters for id, or zero counters when absent.
// It never writes to data.
func Ensure(data model.StatsData, id model.DivisionID) model.DivisionStats {
	if entry, ok := data[id]; ok {
		return entry
	}
	return model.DivisionStats{}
}

// Key returns the storage key holding the stats of group.
func Key(namespace string, group model.GroupID) string {
	return fmt.Sprintf("%s-%s-stats", group, namespace)
}

// Repository reads and writes StatsData, one key per group.
type Repository struct {
	kv        store.KV
	namespace string
	log       *logger.Logger
}

// NewRepository builds a Repository over kv using namespace as key prefix.
func NewRepository(kv store.KV, namespace string, log *logger.Logger) *Repository {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{kv: kv, namespace: namespace, log: log}
}

// Namespace returns the key prefix in use.
func (r *Repository) Namespace() string {
	return r.namespace
}

// Key returns the storage key for group.
func (r *Repository) Key(group model.GroupID) string {
	return Key(r.namespace, group)
}

// Load returns the stored stats for group. Missing, unreadable or malformed
// data yields an empty map; the problem is logged, not returned.
func (r *Repository) Load(ctx context.Context, group model.GroupID) model.StatsData {
	key := r.Key(group)
	var raw map[model.DivisionID]model.DivisionStats
	ok, err := store.GetJSON(ctx, r.kv, key, &raw)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		r.log.Warn("discarding corrupt stats", "group", group, "key", key, "error", err)
		return model.StatsData{}
	case err != nil:
		r.log.Error("failed to read stats", "group", group, "key", key, "error", err)
		return model.StatsData{}
	case !ok:
		return model.StatsData{}
	}

	data := make(model.StatsData, len(raw))
	for id, entry := range raw {
		if id == "" || entry.Seen < 0 || entry.Correct < 0 || entry.Wrong < 0 {
			r.log.Warn("dropping invalid stats entry", "group", group, "division", id, "entry", entry)
			continue
		}
		data[id] = entry
	}
	return data
}

// Save replaces the stored stats for group with data.
func (r *Repository) Save(ctx context.Context, group model.GroupID, data model.StatsData) error {
	if data == nil {
		data = model.StatsData{}
	}
	return store.SetJSON(ctx, r.kv, r.Key(group), data)
}

// Reset deletes the stored stats of group.
func (r *Repository) Reset(ctx context.Context, group model.GroupID) error {
	return r.kv.Delete(ctx, r.Key(group))
}

// Groups lists the groups that have stored stats in this namespace, sorted.
func (r *Repository) Groups(ctx context.Context) ([]model.GroupID, error) {
	keys, err := r.kv.Keys(ctx, "")
	if err != nil {
		return nil, err
	}
	suffix := "-" + r.namespace + "-stats"
	var groups []model.GroupID
	for _, key := range keys {
		if group, ok := strings.CutSuffix(key, suffix); ok && group != "" {
			groups = append(groups, model.GroupID(group))
		}
	}
	return groups, nil
}
