// Package local drives a game session held purely in memory, with the
// human in slot 0 and the bot in slot 1. The bot answers on a short
// timer after the human's move, so play feels paced rather than
// instantaneous.
package local

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"minigames/internal/bot"
	"minigames/internal/engine"
)

// DefaultBotDelay paces the bot's reply.
const DefaultBotDelay = 700 * time.Millisecond

// Driver owns one local session for its lifetime. All methods are safe
// to call from multiple goroutines; the bot timer fires on its own
// goroutine.
type Driver struct {
	entry    engine.Entry
	selector *bot.Selector
	delay    time.Duration

	mu       sync.Mutex
	match    *engine.Match
	timer    *time.Timer
	gen      int // invalidates pending timers across Reset/Close
	fired    bool
	closed   bool
	onOver   func(*engine.Result)
	feedback func()
}

// Option configures a Driver.
type Option func(*Driver)

// WithBotDelay overrides the pacing delay.
func WithBotDelay(d time.Duration) Option {
	return func(dr *Driver) { dr.delay = d }
}

// WithGameover registers the termination callback; it fires exactly
// once, at the transition to the terminal state.
func WithGameover(fn func(*engine.Result)) Option {
	return func(dr *Driver) { dr.onOver = fn }
}

// WithFeedback registers a fire-and-forget callback invoked after every
// accepted move, for haptics or sound.
func WithFeedback(fn func()) Option {
	return func(dr *Driver) { dr.feedback = fn }
}

// New builds a driver and its initial state from the game's Setup.
func New(entry engine.Entry, selector *bot.Selector, opts ...Option) *Driver {
	d := &Driver{
		entry:    entry,
		selector: selector,
		delay:    DefaultBotDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.match = engine.NewMatch(entry.Def)
	return d
}

// Snapshot is the caller-facing view of the session.
type Snapshot struct {
	State    engine.State
	Current  engine.Player
	Gameover *engine.Result
}

// Snapshot returns the current session view.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		State:    d.match.State(),
		Current:  d.match.Current(),
		Gameover: d.match.Gameover(),
	}
}

// Move applies a human move. The human always acts as slot 0; if the
// turn then passes to the bot, a bot reply is scheduled.
func (d *Driver) Move(name string, args ...any) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return fmt.Errorf("session closed: %w", engine.ErrInvalidMove)
	}
	d.match.SetCurrent(engine.PlayerX)
	if err := d.match.Apply(name, args); err != nil {
		d.mu.Unlock()
		return err
	}
	over := d.afterMoveLocked()
	d.mu.Unlock()

	d.notify(over)
	return nil
}

// afterMoveLocked handles post-move bookkeeping: schedules the bot if
// it is now the bot's turn, and returns a result to report if the match
// just ended.
func (d *Driver) afterMoveLocked() *engine.Result {
	if d.match.Over() {
		if !d.fired {
			d.fired = true
			return d.match.Gameover()
		}
		return nil
	}
	if d.match.Current() == engine.PlayerO {
		d.scheduleBotLocked()
	}
	return nil
}

func (d *Driver) scheduleBotLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.botMove(gen) })
}

func (d *Driver) botMove(gen int) {
	d.mu.Lock()
	if d.closed || gen != d.gen || d.match.Over() || d.match.Current() != engine.PlayerO {
		d.mu.Unlock()
		return
	}
	prop := d.selector.Select(d.entry.Strategy, d.match.State(), engine.PlayerO, d.entry.Def)
	if prop == nil {
		// No legal bot move; the session is stuck, which only happens
		// for malformed games. Leave it to the human to reset.
		log.Warn().Str("game", d.entry.Key).Msg("bot found no legal move")
		d.mu.Unlock()
		return
	}
	if err := d.match.Apply(prop.Move, prop.Args); err != nil {
		log.Warn().Str("game", d.entry.Key).Str("move", prop.Move).Err(err).Msg("bot move rejected")
		d.mu.Unlock()
		return
	}
	over := d.afterMoveLocked()
	d.mu.Unlock()

	d.notify(over)
}

// notify runs callbacks outside the lock so they may call back into the
// driver.
func (d *Driver) notify(over *engine.Result) {
	if d.feedback != nil {
		d.feedback()
	}
	if over != nil && d.onOver != nil {
		d.onOver(over)
	}
}

// Reset discards the session and rebuilds it from Setup, cancelling any
// pending bot move.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.match = engine.NewMatch(d.entry.Def)
	d.fired = false
}

// Close tears the session down; pending timers are cancelled and all
// further moves are rejected.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
