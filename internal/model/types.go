// Package model defines shared data structures.
package model

import "time"

// GroupID identifies a top-level geographic collection such as a country.
type GroupID string

// DivisionID identifies a quizzable subdivision, unique within its group.
type DivisionID string

// DivisionStats holds the performance counters for one division.
type DivisionStats struct {
	Seen    int `json:"seen"`
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// Attempts returns the number of completed answers.
func (s DivisionStats) Attempts() int {
	return s.Correct + s.Wrong
}

// Accuracy returns the share of correct answers, or 0 without attempts.
func (s DivisionStats) Accuracy() float64 {
	attempts := s.Attempts()
	if attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(attempts)
}

// StatsData maps each encountered division of one group to its counters.
type StatsData map[DivisionID]DivisionStats

// Clone returns a shallow copy that can be mutated independently.
func (d StatsData) Clone() StatsData {
	out := make(StatsData, len(d)+1)
	for id, entry := range d {
		out[id] = entry
	}
	return out
}

// State is the snapshot returned after advancing to the next division.
type State struct {
	Stats           StatsData
	CurrentDivision DivisionID
}

// Config defines quiz settings.
type Config struct {
	CatalogPath string
	Group       GroupID
	Lang        string
	Namespace   string
	RoundSize   int
	DBPath      string
	LogMode     string
}

// RoundResult captures a completed round of questions.
type RoundResult struct {
	ID        string
	Group     GroupID
	StartedAt time.Time
	EndedAt   time.Time
	Correct   int
	Wrong     int
}

// Percent returns the share of correct answers in the round as 0-100.
func (r RoundResult) Percent() float64 {
	total := r.Correct + r.Wrong
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total) * 100
}

// Duration returns the wall time spent on the round.
func (r RoundResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
