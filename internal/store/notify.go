// Package store provides DocStore implementations: an in-memory store
// for tests and local development, and a SQLite store for the server.
package store

import (
	"context"
	"sync"

	"minigames/internal/remote"
)

// notifier fans accepted writes out to per-session watchers. Delivery
// keeps only the freshest documents: a full watcher buffer drops its
// oldest entry, so a slow receiver may skip revisions but always ends
// on the newest.
type notifier struct {
	mu       sync.Mutex
	next     int
	watchers map[string]map[int]chan *remote.Doc
}

func newNotifier() *notifier {
	return &notifier{watchers: make(map[string]map[int]chan *remote.Doc)}
}

func (n *notifier) watch(ctx context.Context, id string) <-chan *remote.Doc {
	ch := make(chan *remote.Doc, 16)
	n.mu.Lock()
	if n.watchers[id] == nil {
		n.watchers[id] = make(map[int]chan *remote.Doc)
	}
	key := n.next
	n.next++
	n.watchers[id][key] = ch
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.watchers[id], key)
		n.mu.Unlock()
		close(ch)
	}()
	return ch
}

func (n *notifier) publish(id string, doc *remote.Doc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.watchers[id] {
		select {
		case ch <- doc:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- doc:
			default:
			}
		}
	}
}
