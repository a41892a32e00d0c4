package games

import "minigames/internal/engine"

// 3x3 boxes. Lines 0-11 are horizontal (4 rows of 3), lines 12-23
// vertical (3 rows of 4).
const (
	dabBoxes = 3
	dabLines = 2 * dabBoxes * (dabBoxes + 1)
)

// DotsAndBoxesState: Lines marks drawn edges, Boxes holds the owner of
// each completed box.
type DotsAndBoxesState struct {
	Lines []bool   `json:"lines"`
	Boxes []string `json:"boxes"`
}

// dabBoxLines returns the four line indices bounding box (r, c).
func dabBoxLines(r, c int) [4]int {
	v := dabBoxes * (dabBoxes + 1)
	return [4]int{
		r*dabBoxes + c,             // top
		(r+1)*dabBoxes + c,         // bottom
		v + r*(dabBoxes+1) + c,     // left
		v + r*(dabBoxes+1) + c + 1, // right
	}
}

func dabCompleted(lines []bool, boxes []string) []int {
	var done []int
	for r := 0; r < dabBoxes; r++ {
		for c := 0; c < dabBoxes; c++ {
			i := r*dabBoxes + c
			if boxes[i] != "" {
				continue
			}
			sides := dabBoxLines(r, c)
			if lines[sides[0]] && lines[sides[1]] && lines[sides[2]] && lines[sides[3]] {
				done = append(done, i)
			}
		}
	}
	return done
}

func dotsAndBoxes() engine.Entry {
	return engine.Entry{
		Key:   "dotsAndBoxes",
		Title: "Dots and Boxes",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &DotsAndBoxesState{
					Lines: make([]bool, dabLines),
					Boxes: make([]string, dabBoxes*dabBoxes),
				}
			},
			Moves: map[string]engine.Move{
				// Completing a box keeps the turn.
				"drawLine": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*DotsAndBoxesState)
					line, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					if line < 0 || line >= len(g.Lines) {
						return invalid("line %d out of range", line)
					}
					if g.Lines[line] {
						return invalid("line %d already drawn", line)
					}
					g.Lines[line] = true
					claimed := dabCompleted(g.Lines, g.Boxes)
					for _, b := range claimed {
						g.Boxes[b] = ctx.Player.String()
					}
					if len(claimed) == 0 {
						ctx.EndTurn()
					}
					return nil
				}},
			},
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*DotsAndBoxesState)
				var x, o int
				for _, b := range g.Boxes {
					switch b {
					case "":
						return nil
					case "0":
						x++
					case "1":
						o++
					}
				}
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
