package games

import "minigames/internal/engine"

const pigGoal = 100

// PigState: Pot is the current turn's unbanked points, Rolled the last
// die face shown for the UI.
type PigState struct {
	Scores [2]int `json:"scores"`
	Pot    int    `json:"pot"`
	Rolled int    `json:"rolled"`
}

func pig() engine.Entry {
	return engine.Entry{
		Key:      "pig",
		Title:    "Pig",
		Strategy: "pig",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &PigState{}
			},
			Moves: map[string]engine.Move{
				"roll": {Arity: 0, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*PigState)
					r := ctx.Roll()
					g.Rolled = r
					if r == 1 {
						g.Pot = 0
						ctx.EndTurn()
						return nil
					}
					g.Pot += r
					return nil
				}},
				"hold": {Arity: 0, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*PigState)
					if g.Pot == 0 {
						return invalid("nothing to bank")
					}
					g.Scores[ctx.Player] += g.Pot
					g.Pot = 0
					g.Rolled = 0
					ctx.EndTurn()
					return nil
				}},
			},
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*PigState)
				switch {
				case g.Scores[0] >= pigGoal:
					return engine.Win(engine.PlayerX)
				case g.Scores[1] >= pigGoal:
					return engine.Win(engine.PlayerO)
				}
				return nil
			},
		},
	}
}
