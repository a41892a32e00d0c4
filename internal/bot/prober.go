package bot

import (
	"encoding/json"
	"math/rand/v2"

	"minigames/internal/engine"
)

const (
	// probeAttempts bounds the randomized draws per move name.
	probeAttempts = 20
	// probePoolCap bounds how many candidate numbers the state can
	// contribute on top of the base 0-9.
	probePoolCap = 128
)

// probeStrings are the string argument candidates: directions, choice
// shorthands, and coin sides cover every string-taking game shipped.
var probeStrings = []string{"left", "right", "up", "down", "a", "b", "c", "Heads", "Tails"}

// probeRoll returns a deterministic die for probe attempts, so probing
// a chance move is repeatable within one attempt.
func probeRoll() func() int {
	n := 0
	return func() int {
		n++
		return (n-1)%6 + 1
	}
}

// numericPool collects candidate numeric arguments: 0-9 plus every
// index of every array found in the state's JSON form, capped.
func numericPool(st engine.State) []int {
	pool := make([]int, 0, 16)
	seen := make(map[int]bool)
	add := func(n int) {
		if !seen[n] && len(pool) < probePoolCap {
			seen[n] = true
			pool = append(pool, n)
		}
	}
	for i := 0; i <= 9; i++ {
		add(i)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return pool
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return pool
	}
	var walk func(any)
	walk = func(x any) {
		switch t := x.(type) {
		case []any:
			for i := range t {
				add(i)
			}
			for _, e := range t {
				walk(e)
			}
		case map[string]any:
			for _, e := range t {
				walk(e)
			}
		}
	}
	walk(v)
	return pool
}

// probe tries randomized argument draws for every declared move and
// returns one accepted candidate chosen uniformly, or nil if the whole
// budget is exhausted without an accepted move.
func probe(def *engine.Definition, st engine.State, p engine.Player, rng *rand.Rand) *Proposal {
	nums := numericPool(st)
	var candidates []Proposal
	for name, mv := range def.Moves {
		for attempt := 0; attempt < probeAttempts; attempt++ {
			args := make([]any, mv.Arity)
			for i := range args {
				if rng.IntN(2) == 0 {
					args[i] = nums[rng.IntN(len(nums))]
				} else {
					args[i] = probeStrings[rng.IntN(len(probeStrings))]
				}
			}
			ctx := &engine.Context{Player: p, Roll: probeRoll()}
			if _, err := engine.Apply(def, st, ctx, name, args); err == nil {
				candidates = append(candidates, Proposal{Move: name, Args: args})
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	c := candidates[rng.IntN(len(candidates))]
	return &c
}
