package store

import (
	"context"
	"sync"
	"time"

	"minigames/internal/remote"
)

// Memory is an in-process DocStore.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]*remote.Doc
	notify *notifier
	now    func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[string]*remote.Doc),
		notify: newNotifier(),
		now:    time.Now,
	}
}

// SetClock overrides the timestamp source for tests.
func (m *Memory) SetClock(now func() time.Time) { m.now = now }

func cloneDoc(d *remote.Doc) *remote.Doc {
	cp := *d
	cp.State = append([]byte(nil), d.State...)
	cp.Moves = append([]remote.MoveEntry(nil), d.Moves...)
	if d.Gameover != nil {
		g := *d.Gameover
		cp.Gameover = &g
	}
	return &cp
}

func (m *Memory) Create(ctx context.Context, doc *remote.Doc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[doc.ID]; exists {
		return remote.ErrExists
	}
	cp := cloneDoc(doc)
	cp.Rev = 0
	now := m.now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.docs[doc.ID] = cp
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*remote.Doc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, remote.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (m *Memory) Update(ctx context.Context, doc *remote.Doc, expectRev int64) error {
	m.mu.Lock()
	stored, ok := m.docs[doc.ID]
	if !ok {
		m.mu.Unlock()
		return remote.ErrNotFound
	}
	if stored.Rev != expectRev {
		m.mu.Unlock()
		return remote.ErrConflict
	}
	cp := cloneDoc(doc)
	cp.Rev = expectRev + 1
	cp.CreatedAt = stored.CreatedAt
	cp.UpdatedAt = m.now()
	for i := range cp.Moves {
		if cp.Moves[i].At.IsZero() {
			cp.Moves[i].At = cp.UpdatedAt
		}
	}
	m.docs[doc.ID] = cp
	out := cloneDoc(cp)
	m.mu.Unlock()

	m.notify.publish(doc.ID, out)
	return nil
}

func (m *Memory) Watch(ctx context.Context, id string) (<-chan *remote.Doc, error) {
	return m.notify.watch(ctx, id), nil
}
