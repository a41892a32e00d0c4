package games

import "minigames/internal/engine"

// memoryLayout is a fixed arrangement of 8 pairs on a 4x4 grid.
var memoryLayout = []int{3, 6, 1, 4, 7, 2, 5, 0, 2, 7, 0, 5, 4, 1, 6, 3}

// MemoryState: Matched marks cards permanently face up.
type MemoryState struct {
	Cards   []int  `json:"cards"`
	Matched []bool `json:"matched"`
	Scores  [2]int `json:"scores"`
}

func memoryMatch() engine.Entry {
	return engine.Entry{
		Key:      "memoryMatch",
		Title:    "Memory Match",
		Strategy: "memoryMatch",
		Def: &engine.Definition{
			Setup: func() engine.State {
				cards := make([]int, len(memoryLayout))
				copy(cards, memoryLayout)
				return &MemoryState{
					Cards:   cards,
					Matched: make([]bool, len(cards)),
				}
			},
			Moves: map[string]engine.Move{
				// A matched pair scores and keeps the turn.
				"flip": {Arity: 2, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*MemoryState)
					a, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					b, err := engine.IntArg(args, 1)
					if err != nil {
						return err
					}
					n := len(g.Cards)
					if a < 0 || a >= n || b < 0 || b >= n || a == b {
						return invalid("bad pair %d,%d", a, b)
					}
					if g.Matched[a] || g.Matched[b] {
						return invalid("card already matched")
					}
					if g.Cards[a] == g.Cards[b] {
						g.Matched[a], g.Matched[b] = true, true
						g.Scores[ctx.Player]++
						return nil
					}
					ctx.EndTurn()
					return nil
				}},
			},
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*MemoryState)
				for _, m := range g.Matched {
					if !m {
						return nil
					}
				}
				switch {
				case g.Scores[0] > g.Scores[1]:
					return engine.Win(engine.PlayerX)
				case g.Scores[1] > g.Scores[0]:
					return engine.Win(engine.PlayerO)
				}
				return engine.Drawn()
			},
		},
	}
}
