package games

import "minigames/internal/engine"

const reversiSize = 8

// ReversiState is an 8x8 Othello board. Passes counts consecutive
// passes; two in a row ends the game early.
type ReversiState struct {
	Cells  []string `json:"cells"`
	Passes int      `json:"passes"`
}

var reversiDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// reversiFlips returns the indices flipped by placing mark at cell, or
// nil when the placement is illegal.
func reversiFlips(cells []string, cell int, mark string) []int {
	if cells[cell] != "" {
		return nil
	}
	r0, c0 := cell/reversiSize, cell%reversiSize
	var flips []int
	for _, d := range reversiDirs {
		var line []int
		r, c := r0+d[0], c0+d[1]
		for r >= 0 && r < reversiSize && c >= 0 && c < reversiSize {
			i := r*reversiSize + c
			switch cells[i] {
			case "":
				line = nil
			case mark:
			default:
				line = append(line, i)
				r += d[0]
				c += d[1]
				continue
			}
			break
		}
		if r < 0 || r >= reversiSize || c < 0 || c >= reversiSize {
			continue
		}
		if cells[r*reversiSize+c] == mark {
			flips = append(flips, line...)
		}
	}
	return flips
}

func reversiHasMove(cells []string, mark string) bool {
	for i := range cells {
		if len(reversiFlips(cells, i, mark)) > 0 {
			return true
		}
	}
	return false
}

func reversiCount(cells []string) (x, o int) {
	for _, m := range cells {
		switch m {
		case "0":
			x++
		case "1":
			o++
		}
	}
	return
}

func reversi() engine.Entry {
	return engine.Entry{
		Key:   "reversi",
		Title: "Reversi",
		Def: &engine.Definition{
			Setup: func() engine.State {
				cells := make([]string, reversiSize*reversiSize)
				cells[27], cells[36] = "1", "1"
				cells[28], cells[35] = "0", "0"
				return &ReversiState{Cells: cells}
			},
			Moves: map[string]engine.Move{
				"place": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*ReversiState)
					cell, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					if cell < 0 || cell >= len(g.Cells) {
						return invalid("cell %d out of range", cell)
					}
					mark := ctx.Player.String()
					flips := reversiFlips(g.Cells, cell, mark)
					if len(flips) == 0 {
						return invalid("cell %d flips nothing", cell)
					}
					g.Cells[cell] = mark
					for _, i := range flips {
						g.Cells[i] = mark
					}
					g.Passes = 0
					return nil
				}},
				"pass": {Arity: 0, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*ReversiState)
					if reversiHasMove(g.Cells, ctx.Player.String()) {
						return invalid("legal placement exists")
					}
					g.Passes++
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*ReversiState)
				full := true
				for _, c := range g.Cells {
					if c == "" {
						full = false
						break
					}
				}
				if !full && g.Passes < 2 {
					return nil
				}
				x, o := reversiCount(g.Cells)
				switch {
				case x > o:
					return engine.Win(engine.PlayerX)
				case o > x:
					return engine.Win(engine.PlayerO)
				}
				return engine.Drawn()
			},
		},
	}
}
