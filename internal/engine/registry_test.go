package engine

import "testing"

func stubEntry(key string) Entry {
	return Entry{
		Key:   key,
		Title: key,
		Def: &Definition{
			Setup: func() State { return &counterState{} },
			Moves: map[string]Move{
				"noop": {Arity: 0, Handler: func(ctx *Context, st State, args []any) error { return nil }},
			},
		},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(stubEntry("test"))

	got, ok := r.Get("test")
	if !ok {
		t.Fatal("expected to find registered game")
	}
	if got.Key != "test" {
		t.Fatalf("expected key test, got %s", got.Key)
	}

	if _, ok := r.Get("nonexistent"); ok {
		t.Fatal("expected not found for unregistered game")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(stubEntry("dup"))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	r.Register(stubEntry("dup"))
}

func TestRegistryRejectsBadDefinition(t *testing.T) {
	r := NewRegistry()
	e := stubEntry("bad")
	e.Def.Moves["bad"] = Move{Arity: -1, Handler: e.Def.Moves["noop"].Handler}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on negative arity")
		}
	}()
	r.Register(e)
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{"zebra", "alpha", "mid"} {
		r.Register(stubEntry(key))
	}
	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	if list[0].Key != "alpha" || list[2].Key != "zebra" {
		t.Fatalf("expected sorted keys, got %v, %v, %v", list[0].Key, list[1].Key, list[2].Key)
	}
}
