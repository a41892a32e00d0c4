// Package engine is the generic runtime shared by every mini-game: a
// declarative game definition, a move executor that applies named moves
// against a deep copy of the state, and a turn controller that advances
// play and detects termination.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidMove is the sentinel for any rejected move: unknown name,
// failed precondition, wrong arity, or a move sent after the game ended.
// Callers test with errors.Is.
var ErrInvalidMove = errors.New("invalid move")

// Player identifies one of the two participant slots. Slot 0 always
// moves first; in local bot play slot 1 is the bot.
type Player int

const (
	PlayerX Player = 0
	PlayerO Player = 1
)

// Other returns the opposing slot.
func (p Player) Other() Player {
	if p == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (p Player) String() string {
	if p == PlayerO {
		return "1"
	}
	return "0"
}

// ParsePlayer converts the external string form ("0" or "1") back to a slot.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "0":
		return PlayerX, nil
	case "1":
		return PlayerO, nil
	}
	return PlayerX, fmt.Errorf("bad player %q", s)
}

// MarshalJSON encodes a player as its string form, which is the only
// representation that crosses the storage boundary.
func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePlayer(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Result is the terminal outcome of a game. A nil *Result means the game
// continues.
type Result struct {
	Winner *Player `json:"winner,omitempty"`
	Draw   bool    `json:"draw,omitempty"`
}

// Win builds a result naming p the winner.
func Win(p Player) *Result {
	return &Result{Winner: &p}
}

// Drawn builds a drawn result.
func Drawn() *Result {
	return &Result{Draw: true}
}

// State is a game's own state value. It must be a pointer to a
// JSON-serializable struct; the engine never looks inside it beyond
// copying it through JSON.
type State = any

// Context is handed to a move handler for exactly one invocation.
type Context struct {
	// Player is the slot acting on this move.
	Player Player
	// Roll returns a die face 1..6 for games that need chance.
	Roll func() int

	endTurn bool
}

// EndTurn requests that the turn pass to the other player after this
// move, for games without a fixed per-move turn switch.
func (c *Context) EndTurn() { c.endTurn = true }

// TurnEnded reports whether the handler requested an explicit turn end.
func (c *Context) TurnEnded() bool { return c.endTurn }

// Handler mutates the state copy it is given, or returns an error
// wrapping ErrInvalidMove to reject the move. Args arrive as decoded
// JSON values (float64 for numbers); see IntArg and StrArg.
type Handler func(ctx *Context, st State, args []any) error

// Move is one named transition a game declares.
type Move struct {
	// Arity is the declared argument count, checked before dispatch.
	Arity   int
	Handler Handler
}

// Definition describes one game's rules. Immutable once registered.
type Definition struct {
	// Setup builds the initial state for a fresh session.
	Setup func() State
	// Moves maps move names to handlers.
	Moves map[string]Move
	// MoveLimit of 1 switches the turn after every accepted move.
	// Zero means turns only switch when a handler calls EndTurn.
	MoveLimit int
	// EndIf is evaluated after every accepted move with the player who
	// would act next; non-nil result ends the game.
	EndIf func(st State, next Player) *Result
}

// IntArg reads args[i] as an integer, accepting the float64 form JSON
// decoding produces.
func IntArg(args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing arg %d: %w", i, ErrInvalidMove)
	}
	switch v := args[i].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("arg %d: %v: %w", i, err, ErrInvalidMove)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("arg %d is not a number: %w", i, ErrInvalidMove)
}

// StrArg reads args[i] as a string.
func StrArg(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing arg %d: %w", i, ErrInvalidMove)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("arg %d is not a string: %w", i, ErrInvalidMove)
	}
	return s, nil
}
