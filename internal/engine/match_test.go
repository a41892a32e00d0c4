package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// raceState ends when either score reaches the goal.
type raceState struct {
	Scores [2]int `json:"scores"`
}

func raceDef(goal int) *Definition {
	return &Definition{
		Setup: func() State { return &raceState{} },
		Moves: map[string]Move{
			"score": {Arity: 1, Handler: func(ctx *Context, st State, args []any) error {
				n, err := IntArg(args, 0)
				if err != nil {
					return err
				}
				if n < 1 {
					return fmt.Errorf("score must be positive: %w", ErrInvalidMove)
				}
				st.(*raceState).Scores[ctx.Player] += n
				return nil
			}},
		},
		MoveLimit: 1,
		EndIf: func(st State, next Player) *Result {
			g := st.(*raceState)
			switch {
			case g.Scores[0] >= goal:
				return Win(PlayerX)
			case g.Scores[1] >= goal:
				return Win(PlayerO)
			}
			return nil
		},
	}
}

func TestMatchTurnFlip(t *testing.T) {
	m := NewMatch(raceDef(10))
	if m.Current() != PlayerX {
		t.Fatalf("expected slot 0 first, got %v", m.Current())
	}
	if err := m.Apply("score", []any{1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.Current() != PlayerO {
		t.Fatalf("expected turn to flip to slot 1, got %v", m.Current())
	}
}

func TestMatchTerminalAbsorbing(t *testing.T) {
	m := NewMatch(raceDef(3))
	if err := m.Apply("score", []any{3}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	res := m.Gameover()
	if res == nil || res.Winner == nil || *res.Winner != PlayerX {
		t.Fatalf("expected slot 0 win, got %+v", res)
	}
	// Turn still advanced before termination was detected.
	if m.Current() != PlayerO {
		t.Fatalf("expected current slot 1, got %v", m.Current())
	}

	before, _ := json.Marshal(m.State())
	for i := 0; i < 2; i++ {
		if err := m.Apply("score", []any{1}); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("expected ErrInvalidMove after gameover, got %v", err)
		}
	}
	after, _ := json.Marshal(m.State())
	if string(before) != string(after) {
		t.Fatal("terminal match state changed")
	}
	if got := m.Gameover(); got == nil || got.Winner == nil || *got.Winner != PlayerX {
		t.Fatalf("gameover changed after terminal: %+v", got)
	}
}

func TestMatchRejectionIdempotent(t *testing.T) {
	m := NewMatch(raceDef(10))
	before, _ := json.Marshal(m.State())
	for i := 0; i < 2; i++ {
		err := m.Apply("score", []any{0})
		if !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("attempt %d: expected ErrInvalidMove, got %v", i, err)
		}
		after, _ := json.Marshal(m.State())
		if string(before) != string(after) {
			t.Fatalf("attempt %d changed state", i)
		}
		if m.Current() != PlayerX {
			t.Fatalf("attempt %d advanced the turn", i)
		}
	}
}

func TestMatchExplicitEndTurn(t *testing.T) {
	def := &Definition{
		Setup: func() State { return &raceState{} },
		Moves: map[string]Move{
			"keep": {Arity: 0, Handler: func(ctx *Context, st State, args []any) error {
				return nil
			}},
			"yield": {Arity: 0, Handler: func(ctx *Context, st State, args []any) error {
				ctx.EndTurn()
				return nil
			}},
		},
	}
	m := NewMatch(def)
	if err := m.Apply("keep", nil); err != nil {
		t.Fatalf("keep: %v", err)
	}
	if m.Current() != PlayerX {
		t.Fatal("turn flipped without EndTurn on a multi-move game")
	}
	if err := m.Apply("yield", nil); err != nil {
		t.Fatalf("yield: %v", err)
	}
	if m.Current() != PlayerO {
		t.Fatal("turn did not flip after EndTurn")
	}
}

func TestMatchResume(t *testing.T) {
	def := raceDef(5)
	st := &raceState{Scores: [2]int{2, 4}}
	m := Resume(def, st, PlayerO, nil)
	if err := m.Apply("score", []any{1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	res := m.Gameover()
	if res == nil || res.Winner == nil || *res.Winner != PlayerO {
		t.Fatalf("expected slot 1 win after resume, got %+v", res)
	}
}
