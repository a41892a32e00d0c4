package games

import "minigames/internal/engine"

const slideSize = 4

// Slide2048State: a shared 4x4 board, players alternate slides and bank
// the points from their own merges.
type Slide2048State struct {
	Board  []int  `json:"board"`
	Scores [2]int `json:"scores"`
}

// slideRow compresses and merges one row toward index 0, returning the
// merge score and whether anything moved.
func slideRow(row []int) (score int, moved bool) {
	out := make([]int, 0, len(row))
	for _, v := range row {
		if v != 0 {
			out = append(out, v)
		}
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i] == out[i+1] {
			out[i] *= 2
			score += out[i]
			out = append(out[:i+1], out[i+2:]...)
		}
	}
	for i := range row {
		v := 0
		if i < len(out) {
			v = out[i]
		}
		if row[i] != v {
			moved = true
		}
		row[i] = v
	}
	return score, moved
}

// slideApply slides the whole board, mutating it in place.
func slideApply(board []int, dir string) (score int, moved bool) {
	line := func(k int) []int {
		row := make([]int, slideSize)
		for i := 0; i < slideSize; i++ {
			row[i] = board[slideIndex(dir, k, i)]
		}
		return row
	}
	for k := 0; k < slideSize; k++ {
		row := line(k)
		s, m := slideRow(row)
		score += s
		moved = moved || m
		for i := 0; i < slideSize; i++ {
			board[slideIndex(dir, k, i)] = row[i]
		}
	}
	return score, moved
}

// slideIndex maps (line k, position i from the slide edge) to a board
// index for the given direction.
func slideIndex(dir string, k, i int) int {
	switch dir {
	case "left":
		return k*slideSize + i
	case "right":
		return k*slideSize + (slideSize - 1 - i)
	case "up":
		return i*slideSize + k
	default: // down
		return (slideSize-1-i)*slideSize + k
	}
}

func slideCanMove(board []int) bool {
	for _, dir := range []string{"left", "right", "up", "down"} {
		cp := make([]int, len(board))
		copy(cp, board)
		if _, moved := slideApply(cp, dir); moved {
			return true
		}
	}
	return false
}

func slide2048() engine.Entry {
	return engine.Entry{
		Key:   "slide2048",
		Title: "2048 Duel",
		Def: &engine.Definition{
			Setup: func() engine.State {
				board := make([]int, slideSize*slideSize)
				board[5], board[10] = 2, 2
				return &Slide2048State{Board: board}
			},
			Moves: map[string]engine.Move{
				"slide": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*Slide2048State)
					dir, err := engine.StrArg(args, 0)
					if err != nil {
						return err
					}
					switch dir {
					case "left", "right", "up", "down":
					default:
						return invalid("direction %q unknown", dir)
					}
					score, moved := slideApply(g.Board, dir)
					if !moved {
						return invalid("slide %s changes nothing", dir)
					}
					g.Scores[ctx.Player] += score
					// Spawn into the first empty cell; a 6 spawns a 4.
					val := 2
					if ctx.Roll() == 6 {
						val = 4
					}
					for i, v := range g.Board {
						if v == 0 {
							g.Board[i] = val
							break
						}
					}
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*Slide2048State)
				if slideCanMove(g.Board) {
					return nil
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
