package games

import "minigames/internal/engine"

// Tile is one domino, pip values in play order (A faces the line's left
// end once placed).
type Tile [2]int

// DominoesState holds both hands openly; hidden-hand presentation is a
// UI concern, the rules only need the data.
type DominoesState struct {
	Hands    [2][]Tile `json:"hands"`
	Line     []Tile    `json:"line"`
	Boneyard []Tile    `json:"boneyard"`
	Passes   int       `json:"passes"`
}

// dominoDeal is a fixed pre-shuffled ordering of the double-six set.
var dominoDeal = []int{
	14, 3, 22, 9, 27, 0, 18, 11, 25, 6, 16, 1, 20, 13,
	8, 24, 5, 15, 2, 19, 12, 26, 7, 17, 4, 21, 10, 23,
}

func dominoSet() []Tile {
	var set []Tile
	for a := 0; a <= 6; a++ {
		for b := a; b <= 6; b++ {
			set = append(set, Tile{a, b})
		}
	}
	return set
}

func dominoPips(hand []Tile) int {
	sum := 0
	for _, t := range hand {
		sum += t[0] + t[1]
	}
	return sum
}

// DominoPlayable reports whether tile fits the given end value (-1 for
// an empty line).
func DominoPlayable(t Tile, end int) bool {
	return end < 0 || t[0] == end || t[1] == end
}

func dominoesEnds(line []Tile) (left, right int) {
	if len(line) == 0 {
		return -1, -1
	}
	return line[0][0], line[len(line)-1][1]
}

func dominoes() engine.Entry {
	return engine.Entry{
		Key:   "dominoes",
		Title: "Dominoes",
		Def: &engine.Definition{
			Setup: func() engine.State {
				set := dominoSet()
				g := &DominoesState{}
				for n, i := range dominoDeal {
					switch {
					case n < 7:
						g.Hands[0] = append(g.Hands[0], set[i])
					case n < 14:
						g.Hands[1] = append(g.Hands[1], set[i])
					default:
						g.Boneyard = append(g.Boneyard, set[i])
					}
				}
				return g
			},
			Moves: map[string]engine.Move{
				"play": {Arity: 2, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*DominoesState)
					i, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					end, err := engine.StrArg(args, 1)
					if err != nil {
						return err
					}
					hand := g.Hands[ctx.Player]
					if i < 0 || i >= len(hand) {
						return invalid("no tile %d in hand", i)
					}
					if end != "left" && end != "right" {
						return invalid("end must be left or right")
					}
					t := hand[i]
					leftVal, rightVal := dominoesEnds(g.Line)
					want := leftVal
					if end == "right" {
						want = rightVal
					}
					if !DominoPlayable(t, want) {
						return invalid("tile %v does not fit %s end", t, end)
					}
					// Orient the tile so the matching pip faces the line.
					if want >= 0 {
						if end == "left" && t[1] != want {
							t = Tile{t[1], t[0]}
						} else if end == "right" && t[0] != want {
							t = Tile{t[1], t[0]}
						}
					}
					if end == "left" {
						g.Line = append([]Tile{t}, g.Line...)
					} else {
						g.Line = append(g.Line, t)
					}
					g.Hands[ctx.Player] = append(hand[:i:i], hand[i+1:]...)
					g.Passes = 0
					ctx.EndTurn()
					return nil
				}},
				"draw": {Arity: 0, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*DominoesState)
					if len(g.Boneyard) == 0 {
						return invalid("boneyard empty")
					}
					leftVal, rightVal := dominoesEnds(g.Line)
					for _, t := range g.Hands[ctx.Player] {
						if DominoPlayable(t, leftVal) || DominoPlayable(t, rightVal) {
							return invalid("playable tile in hand")
						}
					}
					n := len(g.Boneyard)
					g.Hands[ctx.Player] = append(g.Hands[ctx.Player], g.Boneyard[n-1])
					g.Boneyard = g.Boneyard[:n-1]
					return nil
				}},
				"pass": {Arity: 0, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*DominoesState)
					if len(g.Boneyard) > 0 {
						return invalid("must draw before passing")
					}
					leftVal, rightVal := dominoesEnds(g.Line)
					for _, t := range g.Hands[ctx.Player] {
						if DominoPlayable(t, leftVal) || DominoPlayable(t, rightVal) {
							return invalid("playable tile in hand")
						}
					}
					g.Passes++
					ctx.EndTurn()
					return nil
				}},
			},
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*DominoesState)
				switch {
				case len(g.Hands[0]) == 0:
					return engine.Win(engine.PlayerX)
				case len(g.Hands[1]) == 0:
					return engine.Win(engine.PlayerO)
				case g.Passes >= 2:
					x, o := dominoPips(g.Hands[0]), dominoPips(g.Hands[1])
					switch {
					case x < o:
						return engine.Win(engine.PlayerX)
					case o < x:
						return engine.Win(engine.PlayerO)
					}
					return engine.Drawn()
				}
				return nil
			},
		},
	}
}
