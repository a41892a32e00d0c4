package games

import "minigames/internal/engine"

const gomokuSize = 9

// GomokuState is a 9x9 board, five in a row to win.
type GomokuState struct {
	Cells []string `json:"cells"`
}

func gomokuWinner(cells []string) string {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for r := 0; r < gomokuSize; r++ {
		for c := 0; c < gomokuSize; c++ {
			m := cells[r*gomokuSize+c]
			if m == "" {
				continue
			}
			for _, d := range dirs {
				rr, cc, n := r, c, 1
				for {
					rr += d[0]
					cc += d[1]
					if rr < 0 || rr >= gomokuSize || cc < 0 || cc >= gomokuSize || cells[rr*gomokuSize+cc] != m {
						break
					}
					n++
				}
				if n >= 5 {
					return m
				}
			}
		}
	}
	return ""
}

func gomoku() engine.Entry {
	return engine.Entry{
		Key:   "gomoku",
		Title: "Gomoku",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &GomokuState{Cells: make([]string, gomokuSize*gomokuSize)}
			},
			Moves: map[string]engine.Move{
				"place": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*GomokuState)
					cell, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					if cell < 0 || cell >= len(g.Cells) || g.Cells[cell] != "" {
						return invalid("cell %d unavailable", cell)
					}
					g.Cells[cell] = ctx.Player.String()
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*GomokuState)
				if m := gomokuWinner(g.Cells); m != "" {
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
