package games

import "minigames/internal/engine"

// TicTacToeState is the 3x3 board. Cells hold "" while free, otherwise
// the owning player's string form.
type TicTacToeState struct {
	Cells []string `json:"cells"`
}

// TicTacToeLines enumerates the 8 winning lines of the board. The bot
// strategy scans the same table.
var TicTacToeLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func ticTacToe() engine.Entry {
	return engine.Entry{
		Key:      "ticTacToe",
		Title:    "Tic-Tac-Toe",
		Strategy: "ticTacToe",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &TicTacToeState{Cells: make([]string, 9)}
			},
			Moves: map[string]engine.Move{
				"clickCell": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*TicTacToeState)
					cell, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					if cell < 0 || cell >= len(g.Cells) {
						return invalid("cell %d out of range", cell)
					}
					if g.Cells[cell] != "" {
						return invalid("cell %d occupied", cell)
					}
					g.Cells[cell] = ctx.Player.String()
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*TicTacToeState)
				for _, ln := range TicTacToeLines {
					m := g.Cells[ln[0]]
					if m != "" && m == g.Cells[ln[1]] && m == g.Cells[ln[2]] {
						p, _ := engine.ParsePlayer(m)
						return engine.Win(p)
					}
				}
				for _, c := range g.Cells {
					if c == "" {
						return nil
					}
				}
				return engine.Drawn()
			},
		},
	}
}
