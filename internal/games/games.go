// Package games holds the definitions for every mini-game the app
// ships. Each game is a pure engine.Definition plus lobby metadata;
// all rule logic lives in move handlers and end conditions, never in
// the engine itself.
package games

import (
	"fmt"

	"minigames/internal/engine"
)

// NewRegistry builds a registry with every game registered.
func NewRegistry() *engine.Registry {
	r := engine.NewRegistry()
	for _, e := range []engine.Entry{
		ticTacToe(),
		connectFour(),
		gomoku(),
		reversi(),
		checkers(),
		dominoes(),
		battleship(),
		mancala(),
		minesweeper(),
		sudoku(),
		nim(),
		dotsAndBoxes(),
		pig(),
		coinFlip(),
		rockPaperScissors(),
		memoryMatch(),
		hangman(),
		slide2048(),
	} {
		r.Register(e)
	}
	return r
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, engine.ErrInvalidMove)...)
}
