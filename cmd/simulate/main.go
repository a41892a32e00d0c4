// Command simulate plays the bot against itself across every
// registered game and reports outcomes. It exists to smoke-test game
// definitions and bot strategies offline.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"minigames/internal/bot"
	"minigames/internal/engine"
	"minigames/internal/games"
)

// maxMoves bounds a single simulated game; hitting it counts as a stall.
const maxMoves = 2000

type tally struct {
	wins  [2]int
	draws int
	stall int
}

func main() {
	n := flag.Int("n", 20, "games per definition")
	seed := flag.Uint64("seed", 1, "random seed")
	only := flag.String("game", "", "simulate a single game key")
	workers := flag.Int("workers", 4, "concurrent simulations")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	registry := games.NewRegistry()
	entries := registry.List()
	if *only != "" {
		e, ok := registry.Get(*only)
		if !ok {
			log.Fatal().Str("game", *only).Msg("unknown game")
		}
		entries = []engine.Entry{e}
	}

	var mu sync.Mutex
	results := make(map[string]*tally)

	var g errgroup.Group
	g.SetLimit(*workers)
	for i, entry := range entries {
		entry := entry
		rng := rand.New(rand.NewPCG(*seed, uint64(i)))
		g.Go(func() error {
			t := &tally{}
			selector := bot.NewSelector(rng)
			for round := 0; round < *n; round++ {
				simulate(entry, selector, t)
			}
			mu.Lock()
			results[entry.Key] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("simulate")
	}

	fmt.Printf("%-20s %6s %6s %6s %6s\n", "game", "p0", "p1", "draw", "stall")
	for _, entry := range entries {
		t := results[entry.Key]
		fmt.Printf("%-20s %6d %6d %6d %6d\n", entry.Key, t.wins[0], t.wins[1], t.draws, t.stall)
	}
}

func simulate(entry engine.Entry, selector *bot.Selector, t *tally) {
	match := engine.NewMatch(entry.Def)
	for moves := 0; moves < maxMoves; moves++ {
		if res := match.Gameover(); res != nil {
			switch {
			case res.Draw:
				t.draws++
			case res.Winner != nil:
				t.wins[*res.Winner]++
			}
			return
		}
		prop := selector.Select(entry.Strategy, match.State(), match.Current(), entry.Def)
		if prop == nil {
			t.stall++
			return
		}
		if err := match.Apply(prop.Move, prop.Args); err != nil {
			t.stall++
			return
		}
	}
	t.stall++
}
