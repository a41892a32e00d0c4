package games

import (
	"strconv"

	"minigames/internal/engine"
)

const (
	minesweeperSize  = 9
	minesweeperMines = 10
)

// minesweeperMineCells is a fixed field; a fresh random field per
// session would make replayed sessions diverge.
var minesweeperMineCells = []int{4, 11, 23, 30, 38, 47, 55, 62, 70, 77}

// MinesweeperState: Cells hold "" while hidden, "*" for a revealed
// mine, or the adjacent-mine count as a digit. Exploded records who
// hit a mine.
type MinesweeperState struct {
	Cells    []string `json:"cells"`
	Exploded string   `json:"exploded"`
}

func minesweeperIsMine(cell int) bool {
	for _, m := range minesweeperMineCells {
		if m == cell {
			return true
		}
	}
	return false
}

func minesweeperAdjacent(cell int) int {
	r0, c0 := cell/minesweeperSize, cell%minesweeperSize
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := r0+dr, c0+dc
			if r < 0 || r >= minesweeperSize || c < 0 || c >= minesweeperSize {
				continue
			}
			if minesweeperIsMine(r*minesweeperSize + c) {
				n++
			}
		}
	}
	return n
}

// minesweeperReveal opens a cell and flood-fills zero regions.
func minesweeperReveal(cells []string, cell int) {
	if cells[cell] != "" {
		return
	}
	n := minesweeperAdjacent(cell)
	cells[cell] = strconv.Itoa(n)
	if n != 0 {
		return
	}
	r0, c0 := cell/minesweeperSize, cell%minesweeperSize
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := r0+dr, c0+dc
			if r < 0 || r >= minesweeperSize || c < 0 || c >= minesweeperSize {
				continue
			}
			i := r*minesweeperSize + c
			if !minesweeperIsMine(i) {
				minesweeperReveal(cells, i)
			}
		}
	}
}

func minesweeper() engine.Entry {
	return engine.Entry{
		Key:   "minesweeper",
		Title: "Minesweeper Duel",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &MinesweeperState{Cells: make([]string, minesweeperSize*minesweeperSize)}
			},
			Moves: map[string]engine.Move{
				"reveal": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*MinesweeperState)
					cell, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					if cell < 0 || cell >= len(g.Cells) || g.Cells[cell] != "" {
						return invalid("cell %d unavailable", cell)
					}
					if minesweeperIsMine(cell) {
						g.Cells[cell] = "*"
						g.Exploded = ctx.Player.String()
						return nil
					}
					minesweeperReveal(g.Cells, cell)
					return nil
				}},
			},
			MoveLimit: 1,
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*MinesweeperState)
				if g.Exploded != "" {
					p, _ := engine.ParsePlayer(g.Exploded)
					return engine.Win(p.Other())
				}
				for i, c := range g.Cells {
					if c == "" && !minesweeperIsMine(i) {
						return nil
					}
				}
				return engine.Drawn()
			},
		},
	}
}
