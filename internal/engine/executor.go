package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Apply runs one named move against a deep copy of st. On success the
// mutated copy is returned and st is untouched; on any rejection the
// copy is discarded and the error wraps ErrInvalidMove. A panicking
// handler is recovered, logged, and treated as an invalid move; it can
// only have corrupted the discarded copy.
func Apply(def *Definition, st State, ctx *Context, name string, args []any) (next State, err error) {
	mv, ok := def.Moves[name]
	if !ok {
		return nil, fmt.Errorf("unknown move %q: %w", name, ErrInvalidMove)
	}
	if len(args) != mv.Arity {
		return nil, fmt.Errorf("move %q wants %d args, got %d: %w", name, mv.Arity, len(args), ErrInvalidMove)
	}
	cp, err := Clone(st)
	if err != nil {
		return nil, fmt.Errorf("copy state: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("move", name).Interface("panic", r).Msg("move handler panicked")
			next = nil
			err = fmt.Errorf("move %q panicked: %w", name, ErrInvalidMove)
		}
	}()
	if err := mv.Handler(ctx, cp, args); err != nil {
		return nil, err
	}
	return cp, nil
}
