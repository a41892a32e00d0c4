package games

import "minigames/internal/engine"

const battleshipSize = 10

// BattleshipState keeps one fleet and one shot grid per slot. Shots is
// indexed by the firing player; Fleets by the owner being fired on.
type BattleshipState struct {
	Fleets    [2][]int    `json:"fleets"`    // occupied cells
	Shots     [2][]string `json:"shots"`     // "", "hit", "miss"
	Remaining [2]int      `json:"remaining"` // unhit fleet cells
}

// battleshipLayouts places the classic 5/4/3/3/2 fleet, a different
// arrangement per slot so mirrored play is less predictable.
var battleshipLayouts = [2][][2]int{
	{{0, 1}, {2, 3}, {4, 0}, {6, 5}, {8, 2}},
	{{1, 4}, {3, 0}, {5, 6}, {7, 2}, {9, 5}},
}

var battleshipLengths = []int{5, 4, 3, 3, 2}

func battleshipFleet(slot int) []int {
	var cells []int
	for ship, pos := range battleshipLayouts[slot] {
		row, col := pos[0], pos[1]
		for k := 0; k < battleshipLengths[ship]; k++ {
			cells = append(cells, row*battleshipSize+col+k)
		}
	}
	return cells
}

func battleship() engine.Entry {
	return engine.Entry{
		Key:      "battleship",
		Title:    "Battleship",
		Strategy: "battleship",
		Def: &engine.Definition{
			Setup: func() engine.State {
				g := &BattleshipState{}
				for slot := 0; slot < 2; slot++ {
					g.Fleets[slot] = battleshipFleet(slot)
					g.Shots[slot] = make([]string, battleshipSize*battleshipSize)
					g.Remaining[slot] = len(g.Fleets[slot])
				}
				return g
			},
			Moves: map[string]engine.Move{
				// A hit earns another shot; a miss passes the turn.
				"fire": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*BattleshipState)
					cell, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					shooter := int(ctx.Player)
					target := int(ctx.Player.Other())
					if cell < 0 || cell >= len(g.Shots[shooter]) {
						return invalid("cell %d out of range", cell)
					}
					if g.Shots[shooter][cell] != "" {
						return invalid("cell %d already fired on", cell)
					}
					hit := false
					for _, c := range g.Fleets[target] {
						if c == cell {
							hit = true
							break
						}
					}
					if hit {
						g.Shots[shooter][cell] = "hit"
						g.Remaining[target]--
					} else {
						g.Shots[shooter][cell] = "miss"
						ctx.EndTurn()
					}
					return nil
				}},
			},
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*BattleshipState)
				switch {
				case g.Remaining[0] == 0:
					return engine.Win(engine.PlayerO)
				case g.Remaining[1] == 0:
					return engine.Win(engine.PlayerX)
				}
				return nil
			},
		},
	}
}
