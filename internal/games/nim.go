package games

import "minigames/internal/engine"

// NimState: three heaps, taking the last object wins.
type NimState struct {
	Heaps []int `json:"heaps"`
}

func nim() engine.Entry {
	return engine.Entry{
		Key:      "nim",
		Title:    "Nim",
		Strategy: "nim",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &NimState{Heaps: []int{3, 5, 7}}
			},
			Moves: map[string]engine.Move{
				"take": {Arity: 2, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*NimState)
					heap, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					count, err := engine.IntArg(args, 1)
					if err != nil {
						return err
					}
					if heap < 0 || heap >= len(g.Heaps) {
						return invalid("heap %d out of range", heap)
					}
					if count < 1 || count > g.Heaps[heap] {
						return invalid("cannot take %d from heap %d", count, heap)
					}
					g.Heaps[heap] -= count
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*NimState)
				for _, h := range g.Heaps {
					if h > 0 {
						return nil
					}
				}
				// The player who just took the last object wins.
				return engine.Win(next.Other())
			},
		},
	}
}
