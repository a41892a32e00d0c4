package games

import "minigames/internal/engine"

const (
	c4Cols = 7
	c4Rows = 6
)

// ConnectFourState is the 7x6 grid in row-major order, row 0 on top.
type ConnectFourState struct {
	Cells []string `json:"cells"`
}

// C4Drop returns the landing index for a piece dropped in col, or -1 if
// the column is full.
func C4Drop(cells []string, col int) int {
	for row := c4Rows - 1; row >= 0; row-- {
		i := row*c4Cols + col
		if cells[i] == "" {
			return i
		}
	}
	return -1
}

// C4Winner returns the mark that owns four in a row, or "".
func C4Winner(cells []string) string {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for r := 0; r < c4Rows; r++ {
		for c := 0; c < c4Cols; c++ {
			m := cells[r*c4Cols+c]
			if m == "" {
				continue
			}
			for _, d := range dirs {
				rr, cc, n := r, c, 1
				for {
					rr += d[0]
					cc += d[1]
					if rr < 0 || rr >= c4Rows || cc < 0 || cc >= c4Cols || cells[rr*c4Cols+cc] != m {
						break
					}
					n++
				}
				if n >= 4 {
					return m
				}
			}
		}
	}
	return ""
}

func connectFour() engine.Entry {
	return engine.Entry{
		Key:      "connectFour",
		Title:    "Connect Four",
		Strategy: "connectFour",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &ConnectFourState{Cells: make([]string, c4Cols*c4Rows)}
			},
			Moves: map[string]engine.Move{
				"drop": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*ConnectFourState)
					col, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					if col < 0 || col >= c4Cols {
						return invalid("column %d out of range", col)
					}
					i := C4Drop(g.Cells, col)
					if i < 0 {
						return invalid("column %d full", col)
					}
					g.Cells[i] = ctx.Player.String()
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*ConnectFourState)
				if m := C4Winner(g.Cells); m != "" {
					p, _ := engine.ParsePlayer(m)
					return engine.Win(p)
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
