package games

import (
	"strings"

	"minigames/internal/engine"
)

const hangmanWord = "butterfly"

// HangmanState: players take turns guessing letters of a shared word.
// A correct guess keeps the turn; revealing the last letter wins.
type HangmanState struct {
	Revealed []bool   `json:"revealed"`
	Guessed  []string `json:"guessed"`
	Misses   [2]int   `json:"misses"`
}

func hangman() engine.Entry {
	return engine.Entry{
		Key:      "hangman",
		Title:    "Hangman",
		Strategy: "hangman",
		Def: &engine.Definition{
			Setup: func() engine.State {
				return &HangmanState{Revealed: make([]bool, len(hangmanWord))}
			},
			Moves: map[string]engine.Move{
				"guess": {Arity: 1, Handler: func(ctx *engine.Context, st engine.State, args []any) error {
					g := st.(*HangmanState)
					letter, err := engine.StrArg(args, 0)
					if err != nil {
						return err
					}
					letter = strings.ToLower(letter)
					if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
						return invalid("guess %q is not a letter", letter)
					}
					for _, prev := range g.Guessed {
						if prev == letter {
							return invalid("letter %q already guessed", letter)
						}
					}
					g.Guessed = append(g.Guessed, letter)
					hit := false
					for i := 0; i < len(hangmanWord); i++ {
						if string(hangmanWord[i]) == letter {
							g.Revealed[i] = true
							hit = true
						}
					}
					if !hit {
						g.Misses[ctx.Player]++
						ctx.EndTurn()
					}
					return nil
				}},
			},
			EndIf: func(st engine.State, next engine.Player) *engine.Result {
				g := st.(*HangmanState)
				for _, r := range g.Revealed {
					if !r {
						return nil
					}
				}
				// next still points at whoever revealed the last letter,
				// since a hit does not end the turn.
				return engine.Win(next)
			},
		},
	}
}
