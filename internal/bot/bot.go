// Package bot proposes legal moves for any registered game. Games with
// a specialized strategy get domain play; everything else falls back to
// the universal prober, which discovers legal moves by randomized trial
// against the move executor.
package bot

import (
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog/log"

	"minigames/internal/engine"
)

// Proposal is one move the bot wants to make. A nil proposal means no
// legal move was found.
type Proposal struct {
	Move string `json:"move"`
	Args []any  `json:"args"`
}

// Strategy computes a move from domain knowledge. It must never mutate
// st. Returning nil means the strategy sees no legal move; that answer
// is authoritative and skips the prober.
type Strategy func(st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) *Proposal

// Selector resolves strategies by key and wraps every path so Select
// can never panic: a failing strategy falls through to the prober, a
// failing prober yields nil.
type Selector struct {
	mu         sync.Mutex
	rng        *rand.Rand
	strategies map[string]Strategy
}

// NewSelector builds a selector with all built-in strategies
// registered. A nil rng gets a randomly seeded source; tests inject a
// fixed seed instead.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Selector{rng: rng, strategies: make(map[string]Strategy)}
	for key, fn := range builtinStrategies() {
		s.strategies[key] = fn
	}
	return s
}

// Register adds or replaces a strategy.
func (s *Selector) Register(key string, fn Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies[key] = fn
}

// Select proposes one legal move for p, or nil when none exists. The
// strategy registered under the game's strategy key runs first; its
// proposal is verified against the executor, and anything unusable
// falls back to the prober.
func (s *Selector) Select(key string, st engine.State, p engine.Player, def *engine.Definition) *Proposal {
	s.mu.Lock()
	var fn Strategy
	if e := key; e != "" {
		fn = s.strategies[e]
	}
	rng := s.rng
	s.mu.Unlock()

	if fn != nil {
		prop, failed := runStrategy(fn, st, p, def, rng)
		if !failed {
			if prop == nil {
				return nil
			}
			if accepts(def, st, p, prop) {
				return prop
			}
			log.Warn().Str("game", key).Str("move", prop.Move).Msg("strategy proposed a rejected move")
		}
	}
	return safeProbe(def, st, p, rng)
}

// runStrategy invokes a strategy, converting a panic into failure.
func runStrategy(fn Strategy, st engine.State, p engine.Player, def *engine.Definition, rng *rand.Rand) (prop *Proposal, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("bot strategy panicked")
			prop, failed = nil, true
		}
	}()
	return fn(st, p, def, rng), false
}

// accepts checks a proposal against the executor on a scratch copy.
func accepts(def *engine.Definition, st engine.State, p engine.Player, prop *Proposal) bool {
	ctx := &engine.Context{Player: p, Roll: probeRoll()}
	_, err := engine.Apply(def, st, ctx, prop.Move, prop.Args)
	return err == nil
}

func safeProbe(def *engine.Definition, st engine.State, p engine.Player, rng *rand.Rand) (prop *Proposal) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("prober panicked")
			prop = nil
		}
	}()
	return probe(def, st, p, rng)
}
