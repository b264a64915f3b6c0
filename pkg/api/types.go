package api

import (
	"encoding/json"
	"time"
)

// Section is the stored form of one editable block of page content.
// Record holds the snake_case document written by the content mapper.
type Section struct {
	Kind      Kind            `json:"kind"`
	Version   int64           `json:"version"`
	Record    json.RawMessage `json:"record"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SectionSummary is the listing view of a section.
type SectionSummary struct {
	Kind      Kind      `json:"kind"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
	Hash      string    `json:"hash,omitempty"`
}

func (s Section) Summary() SectionSummary {
	return SectionSummary{Kind: s.Kind, Version: s.Version, UpdatedAt: s.UpdatedAt, Hash: s.Hash()}
}

type EventType string

const (
	EventUpsert EventType = "upsert"
	EventDelete EventType = "delete"
)

// Event records one accepted write to a section.
type Event struct {
	Time    time.Time `json:"time"`
	Type    EventType `json:"type"`
	Kind    Kind      `json:"kind"`
	Version int64     `json:"version"`
}

// Cursor pages through the event log. Seq breaks ties between events that
// share a timestamp; zero means every event at After is excluded.
type Cursor struct {
	After time.Time `json:"after"`
	Seq   int64     `json:"seq,omitempty"`
}
