package engine

import (
	"fmt"
	"math/rand/v2"
)

// Match is the turn controller for one game in progress. It owns the
// live state, the acting player, and the terminal result. Once Gameover
// returns non-nil the match is frozen and every Apply is rejected.
//
// Match is not safe for concurrent use; each session driver owns its
// match exclusively.
type Match struct {
	def      *Definition
	state    State
	current  Player
	gameover *Result
	roll     func() int
}

// NewMatch starts a match from the definition's Setup with slot 0 to act.
func NewMatch(def *Definition) *Match {
	return &Match{
		def:     def,
		state:   def.Setup(),
		current: PlayerX,
		roll:    func() int { return rand.IntN(6) + 1 },
	}
}

// Resume rebuilds a controller around previously persisted state, for
// applying a move to a remote session snapshot.
func Resume(def *Definition, st State, current Player, gameover *Result) *Match {
	m := NewMatch(def)
	m.state = st
	m.current = current
	m.gameover = gameover
	return m
}

// SetRoll overrides the die used for chance moves. Tests and the bot
// prober install deterministic rolls.
func (m *Match) SetRoll(roll func() int) { m.roll = roll }

// State returns the live state. Callers must treat it as read-only.
func (m *Match) State() State { return m.state }

// Current returns the slot whose moves are accepted.
func (m *Match) Current() Player { return m.current }

// Gameover returns the terminal result, or nil while the game runs.
func (m *Match) Gameover() *Result { return m.gameover }

// Over reports whether the match reached a terminal result.
func (m *Match) Over() bool { return m.gameover != nil }

// SetCurrent forces the acting slot. The local driver uses this to pin
// human moves to slot 0 regardless of prior turn bookkeeping.
func (m *Match) SetCurrent(p Player) { m.current = p }

// Apply runs one move as the current player. On success it commits the
// new state, advances the turn per the definition's policy, and
// evaluates the end condition. On rejection the match is unchanged and
// the error wraps ErrInvalidMove; applying the same illegal move twice
// fails identically both times.
func (m *Match) Apply(name string, args []any) error {
	if m.gameover != nil {
		return fmt.Errorf("game is over: %w", ErrInvalidMove)
	}
	ctx := &Context{Player: m.current, Roll: m.roll}
	next, err := Apply(m.def, m.state, ctx, name, args)
	if err != nil {
		return err
	}
	nextPlayer := m.current
	if m.def.MoveLimit == 1 || ctx.TurnEnded() {
		nextPlayer = m.current.Other()
	}
	if m.def.EndIf != nil {
		m.gameover = m.def.EndIf(next, nextPlayer)
	}
	m.state = next
	m.current = nextPlayer
	return nil
}
