package bot

import (
	"math/rand/v2"
	"strings"

	"minigames/internal/engine"
	"minigames/internal/games"
)

// builtinStrategies maps strategy keys (declared on each game's
// registry entry) to their implementations.
func builtinStrategies() map[string]Strategy {
	return map[string]Strategy{
		"ticTacToe":         ticTacToeStrategy,
		"connectFour":       connectFourStrategy,
		"nim":               nimStrategy,
		"mancala":           mancalaStrategy,
		"pig":               pigStrategy,
		"rockPaperScissors": rpsStrategy,
		"hangman":           hangmanStrategy,
		"memoryMatch":       memoryStrategy,
		"battleship":        battleshipStrategy,
	}
}

// ticTacToeStrategy plays, in strict priority: win if possible, block
// an opponent win, take the center, take any free cell.
func ticTacToeStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.TicTacToeState)
	me, them := p.String(), p.Other().String()

	completes := func(mark string) int {
		for _, ln := range games.TicTacToeLines {
			mine, free := 0, -1
			for _, i := range ln {
				switch g.Cells[i] {
				case mark:
					mine++
				case "":
					free = i
				}
			}
			if mine == 2 && free >= 0 {
				return free
			}
		}
		return -1
	}

	if cell := completes(me); cell >= 0 {
		return &Proposal{Move: "clickCell", Args: []any{cell}}
	}
	if cell := completes(them); cell >= 0 {
		return &Proposal{Move: "clickCell", Args: []any{cell}}
	}
	if g.Cells[4] == "" {
		return &Proposal{Move: "clickCell", Args: []any{4}}
	}
	for i, c := range g.Cells {
		if c == "" {
			return &Proposal{Move: "clickCell", Args: []any{i}}
		}
	}
	return nil
}

// connectFourStrategy wins or blocks when a column allows it, otherwise
// plays the most central open column.
func connectFourStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.ConnectFourState)
	drop := func(mark string, col int) string {
		i := games.C4Drop(g.Cells, col)
		if i < 0 {
			return ""
		}
		cp := make([]string, len(g.Cells))
		copy(cp, g.Cells)
		cp[i] = mark
		return games.C4Winner(cp)
	}
	for _, mark := range []string{p.String(), p.Other().String()} {
		for col := 0; col < 7; col++ {
			if drop(mark, col) == mark {
				return &Proposal{Move: "drop", Args: []any{col}}
			}
		}
	}
	for _, col := range []int{3, 2, 4, 1, 5, 0, 6} {
		if games.C4Drop(g.Cells, col) >= 0 {
			return &Proposal{Move: "drop", Args: []any{col}}
		}
	}
	return nil
}

// nimStrategy plays the xor-optimal take when one exists.
func nimStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.NimState)
	x := 0
	for _, h := range g.Heaps {
		x ^= h
	}
	if x != 0 {
		for i, h := range g.Heaps {
			if h^x < h {
				return &Proposal{Move: "take", Args: []any{i, h - (h ^ x)}}
			}
		}
	}
	for i, h := range g.Heaps {
		if h > 0 {
			return &Proposal{Move: "take", Args: []any{i, 1}}
		}
	}
	return nil
}

// mancalaStrategy prefers a pit that earns another turn, then the pit
// that grows its store the most.
func mancalaStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.MancalaState)
	store := games.MancalaStore(p)
	best, bestGain := -1, -1
	for pit := 0; pit < 6; pit++ {
		if g.Pits[games.MancalaPit(p, pit)] == 0 {
			continue
		}
		cp := make([]int, len(g.Pits))
		copy(cp, g.Pits)
		again := games.MancalaSow(cp, p, pit)
		if again {
			return &Proposal{Move: "sow", Args: []any{pit}}
		}
		if gain := cp[store] - g.Pits[store]; gain > bestGain {
			best, bestGain = pit, gain
		}
	}
	if best < 0 {
		return nil
	}
	return &Proposal{Move: "sow", Args: []any{best}}
}

// pigStrategy banks at 20 points, or as soon as the pot would win.
func pigStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.PigState)
	if g.Pot > 0 && (g.Pot >= 20 || g.Scores[p]+g.Pot >= 100) {
		return &Proposal{Move: "hold", Args: []any{}}
	}
	return &Proposal{Move: "roll", Args: []any{}}
}

func rpsStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	choices := []string{"rock", "paper", "scissors"}
	return &Proposal{Move: "throw", Args: []any{choices[rng.IntN(3)]}}
}

// hangmanStrategy guesses by English letter frequency.
func hangmanStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.HangmanState)
	for _, letter := range strings.Split("etaoinshrdlcumwfgypbvkjxqz", "") {
		guessed := false
		for _, prev := range g.Guessed {
			if prev == letter {
				guessed = true
				break
			}
		}
		if !guessed {
			return &Proposal{Move: "guess", Args: []any{letter}}
		}
	}
	return nil
}

// memoryStrategy has perfect recall: the card values are in the shared
// state, so it always flips a real pair.
func memoryStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.MemoryState)
	for i := range g.Cards {
		if g.Matched[i] {
			continue
		}
		for j := i + 1; j < len(g.Cards); j++ {
			if !g.Matched[j] && g.Cards[i] == g.Cards[j] {
				return &Proposal{Move: "flip", Args: []any{i, j}}
			}
		}
	}
	return nil
}

// battleshipStrategy targets around known hits, otherwise hunts on a
// checkerboard parity.
func battleshipStrategy(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal {
	g := st.(*games.BattleshipState)
	shots := g.Shots[p]
	size := 10
	for i, s := range shots {
		if s != "hit" {
			continue
		}
		r, c := i/size, i%size
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			rr, cc := r+d[0], c+d[1]
			if rr < 0 || rr >= size || cc < 0 || cc >= size {
				continue
			}
			if shots[rr*size+cc] == "" {
				return &Proposal{Move: "fire", Args: []any{rr*size + cc}}
			}
		}
	}
	for i, s := range shots {
		if s == "" && (i/size+i%size)%2 == 0 {
			return &Proposal{Move: "fire", Args: []any{i}}
		}
	}
	for i, s := range shots {
		if s == "" {
			return &Proposal{Move: "fire", Args: []any{i}}
		}
	}
	return nil
}
