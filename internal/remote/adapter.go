package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"minigames/internal/engine"
)

// Snapshot is the caller-facing view of a remote session.
type Snapshot struct {
	State    json.RawMessage
	Current  engine.Player
	Gameover *engine.Result
	History  []MoveEntry
	Loading  bool
}

// Session adapts the turn controller to a shared document: it keeps a
// cached snapshot current via a store watch and applies moves with a
// conditional read-modify-write.
type Session struct {
	store DocStore
	entry engine.Entry
	id    string
	uid   string

	mu       sync.Mutex
	doc      *Doc
	loading  bool
	onChange func(Snapshot)
	feedback func()

	cancel context.CancelFunc
	done   chan struct{}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOnChange registers a callback invoked with a fresh snapshot on
// every observed document change.
func WithOnChange(fn func(Snapshot)) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

// WithSessionFeedback registers a fire-and-forget callback invoked
// after each accepted local move.
func WithSessionFeedback(fn func()) SessionOption {
	return func(s *Session) { s.feedback = fn }
}

// Open joins session id as uid, creating the document from the game's
// Setup if no participant created it yet. players fixes the slot order
// for a new document; for an existing one it is ignored in favor of the
// persisted order.
func Open(ctx context.Context, store DocStore, entry engine.Entry, id string, players [2]string, uid string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		store:   store,
		entry:   entry,
		id:      id,
		uid:     uid,
		loading: true,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, err := store.Get(ctx, id)
	if err == ErrNotFound {
		doc, err = s.createDoc(ctx, players)
	}
	if err != nil {
		return nil, err
	}
	s.doc = doc
	s.loading = false

	watchCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	updates, err := store.Watch(watchCtx, id)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch session %s: %w", id, err)
	}
	go s.watch(updates)

	return s, nil
}

func (s *Session) createDoc(ctx context.Context, players [2]string) (*Doc, error) {
	state, err := json.Marshal(s.entry.Def.Setup())
	if err != nil {
		return nil, fmt.Errorf("marshal initial state: %w", err)
	}
	doc := &Doc{
		ID:      s.id,
		GameKey: s.entry.Key,
		Players: players,
		State:   state,
		Current: engine.PlayerX.String(),
	}
	if err := s.store.Create(ctx, doc); err == ErrExists {
		// The other participant created it first.
		return s.store.Get(ctx, s.id)
	} else if err != nil {
		return nil, fmt.Errorf("create session %s: %w", s.id, err)
	}
	return s.store.Get(ctx, s.id)
}

func (s *Session) watch(updates <-chan *Doc) {
	defer close(s.done)
	for doc := range updates {
		s.mu.Lock()
		if s.doc == nil || doc.Rev >= s.doc.Rev {
			s.doc = doc
		}
		fn := s.onChange
		snap := s.snapshotLocked()
		s.mu.Unlock()
		if fn != nil {
			fn(snap)
		}
	}
}

// Snapshot returns the cached view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Loading: s.loading}
	if s.doc == nil {
		return snap
	}
	current, _ := engine.ParsePlayer(s.doc.Current)
	snap.State = s.doc.State
	snap.Current = current
	snap.Gameover = s.doc.Gameover
	snap.History = s.doc.Moves
	return snap
}

// SendMove applies one move as this participant. It checks membership,
// turn, and termination against the cached snapshot, runs the move
// through the turn controller on a copy, and persists the result with a
// revision check. On any rejection nothing is written and the cached
// snapshot is left for the watch to refresh.
func (s *Session) SendMove(ctx context.Context, name string, args ...any) error {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()

	if doc == nil {
		return fmt.Errorf("session %s not loaded: %w", s.id, engine.ErrInvalidMove)
	}
	slot, ok := doc.Slot(s.uid)
	if !ok {
		return fmt.Errorf("%s is not a participant: %w", s.uid, engine.ErrInvalidMove)
	}
	if doc.Gameover != nil {
		return fmt.Errorf("session %s is over: %w", s.id, engine.ErrInvalidMove)
	}
	if doc.Current != slot.String() {
		return fmt.Errorf("not %s's turn: %w", s.uid, engine.ErrInvalidMove)
	}

	st := s.entry.Def.Setup()
	if err := json.Unmarshal(doc.State, st); err != nil {
		return fmt.Errorf("decode session state: %w", err)
	}
	match := engine.Resume(s.entry.Def, st, slot, nil)
	if err := match.Apply(name, args); err != nil {
		return err
	}

	state, err := json.Marshal(match.State())
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	next := *doc
	next.State = state
	next.Current = match.Current().String()
	next.Gameover = match.Gameover()
	next.Moves = append(append([]MoveEntry{}, doc.Moves...), MoveEntry{
		Action: name,
		Player: slot.String(),
	})
	if err := s.store.Update(ctx, &next, doc.Rev); err != nil {
		// Lost update race or transport failure: the move did not
		// happen; truth arrives with the next watch delivery.
		log.Warn().Str("session", s.id).Str("move", name).Err(err).Msg("session write failed")
		return fmt.Errorf("persist move: %w", err)
	}
	if s.feedback != nil {
		s.feedback()
	}
	return nil
}

// Close stops the watch. In-flight writes are not aborted; their
// results are simply ignored.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
}
