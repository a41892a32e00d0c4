package games

import "minigames/internal/engine"

const checkersSize = 8

// CheckersState is an 8x8 board. Cells hold "", "0", "1", "0K" or "1K".
// Slot 0 starts at the bottom (high rows) and moves up.
type CheckersState struct {
	Cells []string `json:"cells"`
}

func checkersOwner(m string) string {
	if m == "" {
		return ""
	}
	return m[:1]
}

func checkersKing(m string) bool {
	return len(m) == 2
}

func checkers() engine.Entry {
	return engine.Entry{
		Key:   "checkers",
		Title: "Checkers",
		Def: &engine.Definition{
			Setup: func() engine.State {
				cells := make([]string, checkersSize*checkersSize)
				for i := range cells {
					r, c := i/checkersSize, i%checkersSize
					if (r+c)%2 != 1 {
						continue
					}
					if r < 3 {
						cells[i] = "1"
					} else if r > 4 {
						cells[i] = "0"
					}
				}
				return &CheckersState{Cells: cells}
			},
			Moves: map[string]engine.Move{
				"move": {Arity: 2, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*CheckersState)
					from, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					to, err := engine.IntArg(args, 1)
					if err != nil {
						return err
					}
					n := len(g.Cells)
					if from < 0 || from >= n || to < 0 || to >= n {
						return invalid("square out of range")
					}
					piece := g.Cells[from]
					mark := ctx.Player.String()
					if checkersOwner(piece) != mark {
						return invalid("no piece of yours on %d", from)
					}
					if g.Cells[to] != "" {
						return invalid("square %d occupied", to)
					}
					fr, fc := from/checkersSize, from%checkersSize
					tr, tc := to/checkersSize, to%checkersSize
					dr, dc := tr-fr, tc-fc
					forward := -1 // slot 0 moves toward row 0
					if mark == "1" {
						forward = 1
					}
					abs := func(v int) int {
						if v < 0 {
							return -v
						}
						return v
					}
					switch {
					case abs(dr) == 1 && abs(dc) == 1:
						if !checkersKing(piece) && dr != forward {
							return invalid("cannot move backwards")
						}
					case abs(dr) == 2 && abs(dc) == 2:
						if !checkersKing(piece) && dr != 2*forward {
							return invalid("cannot jump backwards")
						}
						mid := (from + to) / 2
						victim := g.Cells[mid]
						if victim == "" || checkersOwner(victim) == mark {
							return invalid("nothing to capture")
						}
						g.Cells[mid] = ""
					default:
						return invalid("not a diagonal step or jump")
					}
					g.Cells[from] = ""
					if (mark == "0" && tr == 0) || (mark == "1" && tr == checkersSize-1) {
						piece = mark + "K"
					}
					g.Cells[to] = piece
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*CheckersState)
				var x, o int
				for _, m := range g.Cells {
					switch checkersOwner(m) {
					case "0":
						x++
					case "1":
						o++
					}
				}
				switch {
				case x == 0:
					return engine.Win(engine.PlayerO)
				case o == 0:
					return engine.Win(engine.PlayerX)
				}
				return nil
			},
		},
	}
}
