package games

import (
	"encoding/json"
	"reflect"
	"testing"

	"minigames/internal/engine"
)

// Every registered game must set up cleanly and survive the JSON round
// trip the executor's deep copy and the remote store both rely on.
func TestAllGamesSetupAndRoundTrip(t *testing.T) {
	for _, entry := range NewRegistry().List() {
		t.Run(entry.Key, func(t *testing.T) {
			st := entry.Def.Setup()
			if st == nil {
				t.Fatal("setup returned nil state")
			}
			cp, err := engine.Clone(st)
			if err != nil {
				t.Fatalf("clone: %v", err)
			}
			if !reflect.DeepEqual(st, cp) {
				t.Fatalf("clone differs from original:\n%#v\n%#v", st, cp)
			}
			if len(entry.Def.Moves) == 0 {
				t.Fatal("no moves declared")
			}
			if entry.Def.EndIf == nil {
				t.Fatal("no end condition declared")
			}
		})
	}
}

func TestRegistryHasAllGames(t *testing.T) {
	list := NewRegistry().List()
	if len(list) != 18 {
		t.Fatalf("expected 18 games, got %d", len(list))
	}
	for _, key := range []string{"ticTacToe", "connectFour", "checkers", "dominoes", "battleship", "mancala", "minesweeper", "sudoku"} {
		found := false
		for _, e := range list {
			if e.Key == key {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing game %s", key)
		}
	}
}

// Fresh games must not be immediately terminal.
func TestNoGameStartsTerminal(t *testing.T) {
	for _, entry := range NewRegistry().List() {
		m := engine.NewMatch(entry.Def)
		if m.Over() {
			t.Fatalf("%s is terminal at setup: %+v", entry.Key, m.Gameover())
		}
	}
}

func TestConnectFourDropAndWin(t *testing.T) {
	m := engine.NewMatch(connectFour().Def)
	// Slot 0 stacks column 0, slot 1 column 6.
	for i := 0; i < 3; i++ {
		if err := m.Apply("drop", []any{0}); err != nil {
			t.Fatalf("drop 0: %v", err)
		}
		if err := m.Apply("drop", []any{6}); err != nil {
			t.Fatalf("drop 6: %v", err)
		}
	}
	if err := m.Apply("drop", []any{0}); err != nil {
		t.Fatalf("winning drop: %v", err)
	}
	res := m.Gameover()
	if res == nil || res.Winner == nil || *res.Winner != engine.PlayerX {
		t.Fatalf("expected slot 0 win, got %+v", res)
	}
}

func TestConnectFourFullColumn(t *testing.T) {
	m := engine.NewMatch(connectFour().Def)
	for i := 0; i < 6; i++ {
		if err := m.Apply("drop", []any{3}); err != nil {
			t.Fatalf("fill drop %d: %v", i, err)
		}
	}
	if err := m.Apply("drop", []any{3}); err == nil {
		t.Fatal("expected rejection for full column")
	}
}

func TestNimLastTakeWins(t *testing.T) {
	m := engine.NewMatch(nim().Def)
	// Empty the heaps; slot 1 takes the final object.
	for _, mv := range [][2]int{{0, 3}, {1, 5}, {2, 6}, {2, 1}} {
		if err := m.Apply("take", []any{mv[0], mv[1]}); err != nil {
			t.Fatalf("take %v: %v", mv, err)
		}
	}
	res := m.Gameover()
	if res == nil || res.Winner == nil || *res.Winner != engine.PlayerO {
		t.Fatalf("expected slot 1 win, got %+v", res)
	}
}

func TestMancalaExtraTurn(t *testing.T) {
	m := engine.NewMatch(mancala().Def)
	// Pit 2 holds 4 seeds and ends exactly in slot 0's store.
	if err := m.Apply("sow", []any{2}); err != nil {
		t.Fatalf("sow: %v", err)
	}
	if m.Current() != engine.PlayerX {
		t.Fatal("expected extra turn after landing in own store")
	}
	g := m.State().(*MancalaState)
	if g.Pits[6] != 1 {
		t.Fatalf("expected 1 seed in store, got %d", g.Pits[6])
	}
}

func TestMancalaEmptyPitRejected(t *testing.T) {
	m := engine.NewMatch(mancala().Def)
	m.Apply("sow", []any{2}) // extra turn, pit 2 now empty
	if err := m.Apply("sow", []any{2}); err == nil {
		t.Fatal("expected rejection for empty pit")
	}
}

func TestPigHoldBanksPot(t *testing.T) {
	m := engine.NewMatch(pig().Def)
	m.SetRoll(func() int { return 4 })
	if err := m.Apply("roll", nil); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if m.Current() != engine.PlayerX {
		t.Fatal("rolling a 4 should keep the turn")
	}
	if err := m.Apply("hold", nil); err != nil {
		t.Fatalf("hold: %v", err)
	}
	g := m.State().(*PigState)
	if g.Scores[0] != 4 || g.Pot != 0 {
		t.Fatalf("expected banked 4, got %+v", g)
	}
	if m.Current() != engine.PlayerO {
		t.Fatal("hold should pass the turn")
	}
}

func TestPigRollOneLosesPot(t *testing.T) {
	m := engine.NewMatch(pig().Def)
	m.SetRoll(func() int { return 1 })
	if err := m.Apply("roll", nil); err != nil {
		t.Fatalf("roll: %v", err)
	}
	g := m.State().(*PigState)
	if g.Pot != 0 {
		t.Fatalf("expected empty pot after rolling 1, got %d", g.Pot)
	}
	if m.Current() != engine.PlayerO {
		t.Fatal("rolling 1 should pass the turn")
	}
}

func TestBattleshipHitKeepsTurn(t *testing.T) {
	m := engine.NewMatch(battleship().Def)
	g := m.State().(*BattleshipState)
	hit := g.Fleets[1][0]
	if err := m.Apply("fire", []any{hit}); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if m.Current() != engine.PlayerX {
		t.Fatal("a hit should keep the turn")
	}
	if err := m.Apply("fire", []any{hit}); err == nil {
		t.Fatal("expected rejection for repeated shot")
	}
}

func TestSudokuFill(t *testing.T) {
	m := engine.NewMatch(sudoku().Def)
	// Cell 2 is empty in the puzzle; its solution digit is 4.
	if err := m.Apply("fill", []any{2, 4}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	g := m.State().(*SudokuState)
	if g.Scores[0] != 1 {
		t.Fatalf("expected 1 point, got %d", g.Scores[0])
	}
	if err := m.Apply("fill", []any{3, 1}); err == nil {
		t.Fatal("expected rejection for wrong digit")
	}
}

func TestDominoesPlay(t *testing.T) {
	m := engine.NewMatch(dominoes().Def)
	g := m.State().(*DominoesState)
	if len(g.Hands[0]) != 7 || len(g.Hands[1]) != 7 || len(g.Boneyard) != 14 {
		t.Fatalf("bad deal: %d/%d/%d", len(g.Hands[0]), len(g.Hands[1]), len(g.Boneyard))
	}
	// Any first tile opens the line.
	if err := m.Apply("play", []any{0, "right"}); err != nil {
		t.Fatalf("play: %v", err)
	}
	if m.Current() != engine.PlayerO {
		t.Fatal("playing a tile should pass the turn")
	}
	g = m.State().(*DominoesState)
	if len(g.Line) != 1 || len(g.Hands[0]) != 6 {
		t.Fatalf("line %d hand %d after first play", len(g.Line), len(g.Hands[0]))
	}
}

func TestSlide2048Merge(t *testing.T) {
	m := engine.NewMatch(slide2048().Def)
	m.SetRoll(func() int { return 1 })
	// Setup has 2s at 5 and 10; sliding left keeps them on separate rows.
	if err := m.Apply("slide", []any{"left"}); err != nil {
		t.Fatalf("slide: %v", err)
	}
	g := m.State().(*Slide2048State)
	if g.Board[4] != 2 || g.Board[8] != 2 {
		t.Fatalf("unexpected board after slide: %v", g.Board)
	}
	if err := m.Apply("slide", []any{"sideways"}); err == nil {
		t.Fatal("expected rejection for unknown direction")
	}
}

func TestMinesweeperMineLoses(t *testing.T) {
	m := engine.NewMatch(minesweeper().Def)
	if err := m.Apply("reveal", []any{minesweeperMineCells[0]}); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	res := m.Gameover()
	if res == nil || res.Winner == nil || *res.Winner != engine.PlayerO {
		t.Fatalf("expected slot 1 win after slot 0 exploded, got %+v", res)
	}
}

func TestHangmanCorrectGuessKeepsTurn(t *testing.T) {
	m := engine.NewMatch(hangman().Def)
	if err := m.Apply("guess", []any{"b"}); err != nil {
		t.Fatalf("guess: %v", err)
	}
	if m.Current() != engine.PlayerX {
		t.Fatal("correct guess should keep the turn")
	}
	if err := m.Apply("guess", []any{"z"}); err != nil {
		t.Fatalf("guess: %v", err)
	}
	if m.Current() != engine.PlayerO {
		t.Fatal("miss should pass the turn")
	}
	if err := m.Apply("guess", []any{"z"}); err == nil {
		t.Fatal("expected rejection for repeated guess")
	}
}

func TestRPSRoundResolution(t *testing.T) {
	m := engine.NewMatch(rockPaperScissors().Def)
	if err := m.Apply("throw", []any{"rock"}); err != nil {
		t.Fatalf("throw: %v", err)
	}
	if err := m.Apply("throw", []any{"c"}); err != nil { // c = scissors
		t.Fatalf("throw: %v", err)
	}
	g := m.State().(*RPSState)
	if g.Scores[0] != 1 || g.Scores[1] != 0 {
		t.Fatalf("rock beats scissors: %+v", g.Scores)
	}
	if g.Pending[0] != "" || g.Pending[1] != "" {
		t.Fatal("pending throws should clear after resolution")
	}
}

func TestReversiFirstMoves(t *testing.T) {
	m := engine.NewMatch(reversi().Def)
	// 19 is a classic opening square flipping the disc at 27.
	if err := m.Apply("place", []any{19}); err != nil {
		t.Fatalf("place: %v", err)
	}
	g := m.State().(*ReversiState)
	if g.Cells[27] != "0" {
		t.Fatalf("expected flip at 27, got %q", g.Cells[27])
	}
	if err := m.Apply("pass", nil); err == nil {
		t.Fatal("expected pass rejection while placements exist")
	}
}

func TestMemoryMatchPair(t *testing.T) {
	m := engine.NewMatch(memoryMatch().Def)
	g := m.State().(*MemoryState)
	// Find the pair for card 0's value.
	a := 0
	b := -1
	for i := 1; i < len(g.Cards); i++ {
		if g.Cards[i] == g.Cards[0] {
			b = i
			break
		}
	}
	if err := m.Apply("flip", []any{a, b}); err != nil {
		t.Fatalf("flip: %v", err)
	}
	if m.Current() != engine.PlayerX {
		t.Fatal("a match should keep the turn")
	}
	g = m.State().(*MemoryState)
	if !g.Matched[a] || !g.Matched[b] || g.Scores[0] != 1 {
		t.Fatalf("pair not recorded: %+v", g)
	}
}

func TestCheckersForwardOnly(t *testing.T) {
	m := engine.NewMatch(checkers().Def)
	g := m.State().(*CheckersState)
	if g.Cells[40] != "0" || g.Cells[17] != "1" {
		t.Fatalf("unexpected setup: 40=%q 17=%q", g.Cells[40], g.Cells[17])
	}
	// Slot 0 steps 40 -> 33, slot 1 answers 17 -> 24.
	if err := m.Apply("move", []any{40, 33}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := m.Apply("move", []any{17, 24}); err != nil {
		t.Fatalf("move: %v", err)
	}
	// A non-king cannot step back the way it came.
	if err := m.Apply("move", []any{33, 40}); err == nil {
		t.Fatal("expected rejection for backwards move")
	}
}

func TestCoinFlipScoring(t *testing.T) {
	m := engine.NewMatch(coinFlip().Def)
	m.SetRoll(func() int { return 2 }) // always Heads
	if err := m.Apply("call", []any{"Heads"}); err != nil {
		t.Fatalf("call: %v", err)
	}
	g := m.State().(*CoinFlipState)
	if g.Scores[0] != 1 || g.Last != "Heads" {
		t.Fatalf("expected a point for a correct call, got %+v", g)
	}
	if err := m.Apply("call", []any{"Edge"}); err == nil {
		t.Fatal("expected rejection for bad call")
	}
}

func TestDotsAndBoxesBoxKeepsTurn(t *testing.T) {
	m := engine.NewMatch(dotsAndBoxes().Def)
	sides := dabBoxLines(0, 0)
	// First three sides pass the turn each time; drawing happens to
	// alternate between the players.
	for i, line := range sides[:3] {
		if err := m.Apply("drawLine", []any{line}); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
	}
	// Slot 1 closes the box and keeps the turn.
	if m.Current() != engine.PlayerO {
		t.Fatalf("expected slot 1 to move, got %v", m.Current())
	}
	if err := m.Apply("drawLine", []any{sides[3]}); err != nil {
		t.Fatalf("closing line: %v", err)
	}
	g := m.State().(*DotsAndBoxesState)
	if g.Boxes[0] != "1" {
		t.Fatalf("expected box owned by 1, got %q", g.Boxes[0])
	}
	if m.Current() != engine.PlayerO {
		t.Fatal("closing a box should keep the turn")
	}
}

func TestGomokuFiveInARow(t *testing.T) {
	m := engine.NewMatch(gomoku().Def)
	// Slot 0 builds row 0, slot 1 row 5.
	for i := 0; i < 4; i++ {
		if err := m.Apply("place", []any{i}); err != nil {
			t.Fatalf("place %d: %v", i, err)
		}
		if err := m.Apply("place", []any{45 + i}); err != nil {
			t.Fatalf("place %d: %v", 45+i, err)
		}
	}
	if err := m.Apply("place", []any{4}); err != nil {
		t.Fatalf("winning place: %v", err)
	}
	res := m.Gameover()
	if res == nil || res.Winner == nil || *res.Winner != engine.PlayerX {
		t.Fatalf("expected slot 0 win, got %+v", res)
	}
}

func TestStateJSONStable(t *testing.T) {
	st := ticTacToe().Def.Setup()
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fresh := &TicTacToeState{}
	if err := json.Unmarshal(data, fresh); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fresh.Cells) != 9 {
		t.Fatalf("expected 9 cells after round trip, got %d", len(fresh.Cells))
	}
}
