// Package session persists per-conversation dialogue state behind a
// small Store interface with in-memory and Redis drivers. One session
// ID maps to one conversation.State; turns within a session must be
// serialized by the caller, independent sessions are fully concurrent.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/natib-dev/tripwise/internal/conversation"
	"github.com/natib-dev/tripwise/internal/prompts"
)

var (
	// ErrNotFound is returned by Update when the session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrVersionConflict is returned by Update when another writer has
	// advanced the session since it was read.
	ErrVersionConflict = errors.New("session version conflict")
)

// Data is the serializable state of one conversation session.
type Data struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Version   int64               `json:"version"` // monotonically increasing, for optimistic locking
	State     *conversation.State `json:"state"`
	History   []prompts.Message   `json:"history,omitempty"`

	// ConsecutiveErrors counts LLM failures in a row for this session.
	ConsecutiveErrors int `json:"consecutive_errors,omitempty"`
}

// Store defines the interface for session persistence.
type Store interface {
	// Create creates a new session with Version set to 1.
	Create(ctx context.Context, data *Data) error

	// Get retrieves a session by ID. A missing session returns
	// (nil, nil), not an error.
	Get(ctx context.Context, id string) (*Data, error)

	// Update updates an existing session with optimistic locking:
	// the stored Version must match data.Version, which is then
	// incremented. Returns ErrVersionConflict on a mismatch and
	// ErrNotFound when the session does not exist.
	Update(ctx context.Context, data *Data) error

	// Delete removes a session by ID. Deleting a missing session is
	// not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
