// Command play runs a game against the bot in the terminal.
//
//	play [gameKey]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	rl "github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"minigames/internal/bot"
	"minigames/internal/engine"
	"minigames/internal/games"
	"minigames/internal/local"
)

type logLine struct {
	text string
	at   time.Time
}

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	registry := games.NewRegistry()
	key := "ticTacToe"
	if len(os.Args) > 1 {
		key = os.Args[1]
	}
	entry, ok := registry.Get(key)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown game %q, try one of:\n", key)
		for _, e := range registry.List() {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Key)
		}
		os.Exit(1)
	}

	var history []logLine
	driver := local.New(entry, bot.NewSelector(nil),
		local.WithGameover(func(res *engine.Result) {
			switch {
			case res.Draw:
				fmt.Println("game over: draw")
			case res.Winner != nil && *res.Winner == engine.PlayerX:
				fmt.Println("game over: you win")
			default:
				fmt.Println("game over: the bot wins")
			}
		}),
	)
	defer driver.Close()

	items := []rl.PrefixCompleterInterface{
		rl.PcItem("state"),
		rl.PcItem("log"),
		rl.PcItem("reset"),
		rl.PcItem("exit"),
	}
	for name := range entry.Def.Moves {
		items = append(items, rl.PcItem(name))
	}
	l, err := rl.NewEx(&rl.Config{
		Prompt:          entry.Title + " » ",
		AutoComplete:    rl.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer l.Close()

	fmt.Printf("playing %s: enter a move name and its arguments, 'state' to look, 'exit' to quit\n", entry.Title)
	printState(driver)

	for {
		line, err := l.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "exit", "quit":
			return
		case "state":
			printState(driver)
		case "log":
			for _, e := range history {
				fmt.Printf("  %s (%s)\n", e.text, humanize.Time(e.at))
			}
		case "reset":
			driver.Reset()
			history = nil
			printState(driver)
		default:
			args := make([]any, 0, len(fields)-1)
			for _, f := range fields[1:] {
				if n, err := strconv.Atoi(f); err == nil {
					args = append(args, n)
				} else {
					args = append(args, f)
				}
			}
			if err := driver.Move(fields[0], args...); err != nil {
				fmt.Printf("rejected: %v\n", err)
				continue
			}
			history = append(history, logLine{text: line, at: time.Now()})
			// Give the bot time to answer before showing the board.
			time.Sleep(local.DefaultBotDelay + 100*time.Millisecond)
			printState(driver)
		}
	}
}

func printState(d *local.Driver) {
	snap := d.Snapshot()
	data, err := json.MarshalIndent(snap.State, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
	if snap.Gameover == nil {
		fmt.Printf("player %s to move\n", snap.Current)
	}
}
