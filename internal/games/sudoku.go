package games

import "minigames/internal/engine"

// A single baked puzzle. Both players race to fill cells; a correct
// digit scores a point, a wrong digit is simply an invalid move.
const (
	sudokuPuzzle   = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	sudokuSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

// SudokuState: Board holds '0' for empty cells as in the puzzle string.
type SudokuState struct {
	Board  []string `json:"board"`
	Scores [2]int   `json:"scores"`
}

func sudoku() engine.Entry {
	return engine.Entry{
		Key:   "sudoku",
		Title: "Sudoku Duel",
		Def: &engine.Definition{
			Setup: func() engine.State {
				board := make([]string, 81)
				for i := range board {
					board[i] = string(sudokuPuzzle[i])
				}
				return &SudokuState{Board: board}
			},
			Moves: map[string]engine.Move{
				"fill": {Arity: 2, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*SudokuState)
					cell, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					digit, err := engine.IntArg(args, 1)
					if err != nil {
						return err
					}
					if cell < 0 || cell >= 81 || digit < 1 || digit > 9 {
						return invalid("cell or digit out of range")
					}
					if g.Board[cell] != "0" {
						return invalid("cell %d already filled", cell)
					}
					if byte('0'+digit) != sudokuSolution[cell] {
						return invalid("%d is not the digit for cell %d", digit, cell)
					}
					g.Board[cell] = string(sudokuSolution[cell])
					g.Scores[ctx.Player]++
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*SudokuState)
				for _, c := range g.Board {
					if c == "0" {
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
