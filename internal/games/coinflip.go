package games

import "minigames/internal/engine"

const coinFlipGoal = 3

// CoinFlipState: each turn the acting player calls the toss; a correct
// call scores. First to three wins.
type CoinFlipState struct {
	Scores [2]int `json:"scores"`
	Last   string `json:"last"` // last toss shown, "Heads" or "Tails"
}

func coinFlip() engine.Entry {
	return engine.Entry{
		Key:   "coinFlip",
		Title: "Coin Flip",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &CoinFlipState{}
			},
			Moves: map[string]engine.Move{
				"call": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*CoinFlipState)
					call, err := engine.StrArg(args, 0)
					if err != nil {
						return err
					}
					if call != "Heads" && call != "Tails" {
						return invalid("call %q is not Heads or Tails", call)
					}
					toss := "Heads"
					if ctx.Roll() > 3 {
						toss = "Tails"
					}
					g.Last = toss
					if call == toss {
						g.Scores[ctx.Player]++
					}
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*CoinFlipState)
				switch {
				case g.Scores[0] >= coinFlipGoal:
					return engine.Win(engine.PlayerX)
				case g.Scores[1] >= coinFlipGoal:
					return engine.Win(engine.PlayerO)
				}
				return nil
			},
		},
	}
}
