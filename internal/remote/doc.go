// Package remote synchronizes a game session through a shared
// persisted document: one document per session, mutated only by
// read-modify-write cycles guarded by a revision check.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"minigames/internal/engine"
)

var (
	// ErrNotFound reports a missing session document.
	ErrNotFound = errors.New("session not found")
	// ErrExists reports a create against an existing id.
	ErrExists = errors.New("session already exists")
	// ErrConflict reports a conditional update that lost the race; the
	// caller re-reads and the move is treated as not having happened.
	ErrConflict = errors.New("session revision conflict")
)

// MoveEntry is one append-only move-log record.
type MoveEntry struct {
	Action string    `json:"action"`
	Player string    `json:"player"`
	At     time.Time `json:"at"`
}

// Doc is the persisted form of a remote session. Rev increments on
// every accepted write and backs the conditional update.
type Doc struct {
	ID        string          `json:"id"`
	GameKey   string          `json:"gameKey"`
	Players   [2]string       `json:"players"` // participant uids by slot
	State     json.RawMessage `json:"state"`
	Current   string          `json:"currentPlayer"`
	Gameover  *engine.Result  `json:"gameover"`
	Moves     []MoveEntry     `json:"moves"`
	Rev       int64           `json:"rev"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Slot returns the slot index for a participant uid, or false if the
// uid is not one of the two players.
func (d *Doc) Slot(uid string) (engine.Player, bool) {
	switch uid {
	case d.Players[0]:
		return engine.PlayerX, true
	case d.Players[1]:
		return engine.PlayerO, true
	}
	return engine.PlayerX, false
}

// DocStore is the document store the adapter runs against. Timestamps
// (CreatedAt, UpdatedAt, and any zero MoveEntry.At) are assigned by the
// store on write; only their ordering matters to callers.
type DocStore interface {
	// Create persists a new document, failing with ErrExists if the id
	// is taken.
	Create(ctx context.Context, doc *Doc) error
	// Get reads the latest document, or ErrNotFound.
	Get(ctx context.Context, id string) (*Doc, error)
	// Update writes doc only if the stored revision still equals
	// expectRev, otherwise ErrConflict. On success the stored revision
	// becomes expectRev+1.
	Update(ctx context.Context, doc *Doc, expectRev int64) error
	// Watch delivers every accepted write for id until ctx is done.
	// A slow receiver may miss intermediate revisions but always
	// eventually observes the newest one.
	Watch(ctx context.Context, id string) (<-chan *Doc, error)
}
