package games

import "minigames/internal/engine"

// Mancala pit layout: 0-5 are slot 0's pits, 6 its store, 7-12 slot 1's
// pits, 13 its store. Sowing is counter-clockwise, skipping the
// opponent's store.
type MancalaState struct {
	Pits []int `json:"pits"`
}

// MancalaStore returns the store index for a slot.
func MancalaStore(p engine.Player) int {
	if p == engine.PlayerX {
		return 6
	}
	return 13
}

// MancalaPit maps a player's relative pit 0-5 to its absolute index.
func MancalaPit(p engine.Player, pit int) int {
	if p == engine.PlayerX {
		return pit
	}
	return 7 + pit
}

// MancalaSow sows pit (relative 0-5) for p and reports whether the
// last seed landed in p's own store, which earns another turn.
func MancalaSow(pits []int, p engine.Player, pit int) (again bool) {
	idx := MancalaPit(p, pit)
	seeds := pits[idx]
	pits[idx] = 0
	skip := MancalaStore(p.Other())
	pos := idx
	for seeds > 0 {
		pos = (pos + 1) % 14
		if pos == skip {
			continue
		}
		pits[pos]++
		seeds--
	}
	// Capture: last seed in an empty own pit takes the opposite pit.
	own := pos >= MancalaPit(p, 0) && pos <= MancalaPit(p, 5)
	if own && pits[pos] == 1 {
		opposite := 12 - pos
		if pits[opposite] > 0 {
			pits[MancalaStore(p)] += pits[opposite] + 1
			pits[opposite] = 0
			pits[pos] = 0
		}
	}
	return pos == MancalaStore(p)
}

func mancalaSideEmpty(pits []int, p engine.Player) bool {
	for pit := 0; pit < 6; pit++ {
		if pits[MancalaPit(p, pit)] > 0 {
			return false
		}
	}
	return true
}

func mancala() engine.Entry {
	return engine.Entry{
		Key:      "mancala",
		Title:    "Mancala",
		Strategy: "mancala",
		Def: &engine.Definition{
			Setup: func() engine.State {
				pits := make([]int, 14)
				for i := range pits {
					if i != 6 && i != 13 {
						pits[i] = 4
					}
				}
				return &MancalaState{Pits: pits}
			},
			Moves: map[string]engine.Move{
				"sow": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*MancalaState)
					pit, err := engine.IntArg(args, 0)
					if err != nil {
						return err
					}
					if pit < 0 || pit > 5 {
						return invalid("pit %d out of range", pit)
					}
					if g.Pits[MancalaPit(ctx.Player, pit)] == 0 {
						return invalid("pit %d is empty", pit)
					}
					if !MancalaSow(g.Pits, ctx.Player, pit) {
						ctx.EndTurn()
					}
					return nil
				}},
			},
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*MancalaState)
				if !mancalaSideEmpty(g.Pits, engine.PlayerX) && !mancalaSideEmpty(g.Pits, engine.PlayerO) {
					return nil
				}
				// Remaining seeds go to their owner's store.
				x, o := g.Pits[6], g.Pits[13]
				for pit := 0; pit < 6; pit++ {
					x += g.Pits[MancalaPit(engine.PlayerX, pit)]
					o += g.Pits[MancalaPit(engine.PlayerO, pit)]
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
