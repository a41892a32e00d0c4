package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// counterState is a minimal state for exercising the executor.
type counterState struct {
	N     int   `json:"n"`
	Items []int `json:"items"`
}

func counterDef() *Definition {
	return &Definition{
		Setup: func() State { return &counterState{Items: []int{1, 2, 3}} },
		Moves: map[string]Move{
			"add": {Arity: 1, Handler: func(ctx *Context, st State, args []any) error {
				n, err := IntArg(args, 0)
				if err != nil {
					return err
				}
				if n < 0 {
					return fmt.Errorf("negative: %w", ErrInvalidMove)
				}
				st.(*counterState).N += n
				return nil
			}},
			"boom": {Arity: 0, Handler: func(ctx *Context, st State, args []any) error {
				s := st.(*counterState)
				s.N = 999 // mutate before panicking; only the copy sees it
				panic("boom")
			}},
			"end": {Arity: 0, Handler: func(ctx *Context, st State, args []any) error {
				ctx.EndTurn()
				return nil
			}},
		},
		MoveLimit: 1,
	}
}

func TestApplyAccepted(t *testing.T) {
	def := counterDef()
	st := def.Setup()
	ctx := &Context{Player: PlayerX}
	next, err := Apply(def, st, ctx, "add", []any{5})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next.(*counterState).N != 5 {
		t.Fatalf("expected 5, got %d", next.(*counterState).N)
	}
	if st.(*counterState).N != 0 {
		t.Fatal("original state mutated")
	}
}

func TestApplyUnknownMove(t *testing.T) {
	def := counterDef()
	_, err := Apply(def, def.Setup(), &Context{}, "nope", nil)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
}

func TestApplyWrongArity(t *testing.T) {
	def := counterDef()
	_, err := Apply(def, def.Setup(), &Context{}, "add", []any{1, 2})
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
}

func TestApplyInvalidLeavesStateUntouched(t *testing.T) {
	def := counterDef()
	st := def.Setup()
	before, _ := json.Marshal(st)

	_, err := Apply(def, st, &Context{}, "add", []any{-1})
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	after, _ := json.Marshal(st)
	if string(before) != string(after) {
		t.Fatalf("state changed on invalid move: %s -> %s", before, after)
	}
}

func TestApplyPanicRecovered(t *testing.T) {
	def := counterDef()
	st := def.Setup()
	_, err := Apply(def, st, &Context{}, "boom", nil)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if st.(*counterState).N != 0 {
		t.Fatal("panicking handler corrupted original state")
	}
}

func TestApplyEndTurnFlag(t *testing.T) {
	def := counterDef()
	ctx := &Context{Player: PlayerX}
	if _, err := Apply(def, def.Setup(), ctx, "end", nil); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !ctx.TurnEnded() {
		t.Fatal("expected TurnEnded after handler called EndTurn")
	}
}

func TestClone(t *testing.T) {
	st := &counterState{N: 7, Items: []int{4, 5}}
	cp, err := Clone(st)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if !reflect.DeepEqual(st, cp) {
		t.Fatalf("copy differs: %v vs %v", st, cp)
	}
	cp.(*counterState).Items[0] = 99
	if st.Items[0] != 4 {
		t.Fatal("copy shares backing array with original")
	}
}

func TestPlayerRoundTrip(t *testing.T) {
	for _, p := range []Player{PlayerX, PlayerO} {
		got, err := ParsePlayer(p.String())
		if err != nil || got != p {
			t.Fatalf("round trip %v: got %v err %v", p, got, err)
		}
	}
	if _, err := ParsePlayer("2"); err == nil {
		t.Fatal("expected error for bad player")
	}
	data, _ := json.Marshal(PlayerO)
	if string(data) != `"1"` {
		t.Fatalf("expected quoted string form, got %s", data)
	}
}
