package games

import "minigames/internal/engine"

const rpsGoal = 3

// RPSState: throws are held until both players have committed, then the
// round resolves. Shorthand a/b/c maps to rock/paper/scissors.
type RPSState struct {
	Pending [2]string `json:"pending"`
	Scores  [2]int    `json:"scores"`
}

var rpsAliases = map[string]string{
	"a": "rock", "b": "paper", "c": "scissors",
	"rock": "rock", "paper": "paper", "scissors": "scissors",
}

var rpsBeats = map[string]string{
	"rock": "scissors", "paper": "rock", "scissors": "paper",
}

func rockPaperScissors() engine.Entry {
	return engine.Entry{
		Key:      "rockPaperScissors",
		Title:    "Rock Paper Scissors",
		Strategy: "rockPaperScissors",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &RPSState{}
			},
			Moves: map[string]engine.Move{
				"throw": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*RPSState)
					raw, err := engine.StrArg(args, 0)
					if err != nil {
						return err
					}
					choice, ok := rpsAliases[raw]
					if !ok {
						return invalid("throw %q unknown", raw)
					}
					if g.Pending[ctx.Player] != "" {
						return invalid("already thrown this round")
					}
					g.Pending[ctx.Player] = choice
					if g.Pending[0] == "" || g.Pending[1] == "" {
						return nil
					}
					switch {
					case rpsBeats[g.Pending[0]] == g.Pending[1]:
						g.Scores[0]++
					case rpsBeats[g.Pending[1]] == g.Pending[0]:
						g.Scores[1]++
					}
					g.Pending = [2]string{}
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*RPSState)
				switch {
				case g.Scores[0] >= rpsGoal:
					return engine.Win(engine.PlayerX)
				case g.Scores[1] >= rpsGoal:
					return engine.Win(engine.PlayerO)
				}
				return nil
			},
		},
	}
}
