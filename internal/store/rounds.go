package store

import (
	"context"
	"time"

	"github.com/verte-zerg/geodrill/internal/model"
)

// InsertRound stores a completed round.
func (s *Store) InsertRound(ctx context.Context, r model.RoundResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (id, group_id, started_at, ended_at, correct, wrong)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID,
		string(r.Group),
		r.StartedAt.Format(time.RFC3339Nano),
		r.EndedAt.Format(time.RFC3339Nano),
		r.Correct,
		r.Wrong,
	)
	return err
}

// ListRounds returns the most recent rounds for a group, oldest first.
// A non-positive limit returns every round.
func (s *Store) ListRounds(ctx context.Context, group model.GroupID, limit int) ([]model.RoundResult, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, started_at, ended_at, correct, wrong FROM (
			SELECT * FROM rounds
			WHERE group_id = ?
			ORDER BY ended_at DESC
			LIMIT ?
		) ORDER BY ended_at ASC`, string(group), limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundResult
	for rows.Next() {
		var r model.RoundResult
		var groupID, startedAt, endedAt string
		if err := rows.Scan(&r.ID, &groupID, &startedAt, &endedAt, &r.Correct, &r.Wrong); err != nil {
			return nil, err
		}
		r.Group = model.GroupID(groupID)
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}
