package session

import (
	"sort"
	"time"

	"github.com/verte-zerg/wps/internal/model"
)

// DefaultCountdown is the number of seconds between rounds.
const DefaultCountdown = 3

// State is the round lifecycle state.
type State int

const (
	AwaitingInput State = iota
	Timing
	Completed
	Countdown
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting-input"
	case Timing:
		return "timing"
	case Completed:
		return "completed"
	case Countdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// Options configures a Controller.
type Options struct {
	// Next returns a raw candidate line for a new round.
	Next        func() string
	Now         func() time.Time
	Placeholder rune
	Countdown   int
}

// Snapshot is an immutable view of the controller for rendering.
type Snapshot struct {
	Round       int
	State       State
	Target      []rune
	Typed       []rune
	Classes     []Class
	WPM         int
	Remaining   int
	Glow        bool
	Accepting   bool
	Placeholder rune
}

// Update is the result of feeding an event to the controller.
type Update struct {
	Snapshot Snapshot
	Timers   []Timer
	// Finished is set only by the input that completes a round.
	Finished *model.RoundResult
}

type charTally struct {
	correct   int
	incorrect int
}

// Controller drives typing rounds. It is not safe for concurrent use; all
// events must arrive on one goroutine.
type Controller struct {
	next        func() string
	now         func() time.Time
	placeholder rune
	countdown   int

	chains chains

	round     int
	state     State
	target    []rune
	typed     []rune
	startedAt time.Time
	running   bool
	wpm       int
	remaining int
	glow      bool
	tallies   map[rune]*charTally
}

// New constructs a Controller with its first round loaded.
func New(opts Options) *Controller {
	c := &Controller{
		next:        opts.Next,
		now:         opts.Now,
		placeholder: opts.Placeholder,
		countdown:   opts.Countdown,
	}
	if c.next == nil {
		c.next = func() string { return "" }
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.placeholder == 0 {
		c.placeholder = DefaultPlaceholder
	}
	if c.countdown <= 0 {
		c.countdown = DefaultCountdown
	}
	c.load()
	return c
}

// Start returns the current snapshot and (re)starts the WPM chain.
func (c *Controller) Start() Update {
	return c.update([]Timer{c.chains.start(ChainWPM)})
}

// Restart abandons the current round and loads a new one.
func (c *Controller) Restart() Update {
	return c.update(c.load())
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Round:       c.round,
		State:       c.state,
		Target:      append([]rune(nil), c.target...),
		Typed:       append([]rune(nil), c.typed...),
		Classes:     Classify(c.target, c.typed),
		WPM:         c.wpm,
		Remaining:   c.remaining,
		Glow:        c.glow,
		Accepting:   c.accepting(),
		Placeholder: c.placeholder,
	}
}

// Input handles a change of the raw input buffer.
func (c *Controller) Input(raw string) Update {
	if !c.accepting() {
		return c.update(nil)
	}
	now := c.now()
	if c.state == AwaitingInput {
		c.startedAt = now
		c.state = Timing
	}
	typed := []rune(Substitute(raw, c.placeholder))
	c.tally(typed)
	c.typed = typed
	if string(c.typed) == string(c.target) {
		return c.complete(now)
	}
	return c.update(nil)
}

// Tick handles a fired timer. Ticks from cancelled chains are dropped
// without rescheduling.
func (c *Controller) Tick(tok Token) Update {
	if !c.chains.live(tok) {
		return c.update(nil)
	}
	switch tok.Chain {
	case ChainWPM:
		if !c.running {
			return c.update(nil)
		}
		if !c.startedAt.IsZero() {
			c.wpm = WPM(len(c.typed), c.now().Sub(c.startedAt).Seconds())
		}
		return c.update([]Timer{c.chains.next(ChainWPM)})
	case ChainCountdown:
		if c.state != Countdown {
			return c.update(nil)
		}
		c.remaining--
		if c.remaining > 0 {
			return c.update([]Timer{c.chains.next(ChainCountdown)})
		}
		return c.update(c.load())
	case ChainGlow:
		if c.state != Countdown {
			return c.update(nil)
		}
		c.glow = !c.glow
		return c.update([]Timer{c.chains.next(ChainGlow)})
	default:
		return c.update(nil)
	}
}

func (c *Controller) accepting() bool {
	return c.state == AwaitingInput || c.state == Timing
}

func (c *Controller) update(timers []Timer) Update {
	return Update{Snapshot: c.Snapshot(), Timers: timers}
}

// load starts a new round and returns the timers it needs.
func (c *Controller) load() []Timer {
	c.chains.cancelAll()
	c.round++
	c.state = AwaitingInput
	c.target = []rune(Substitute(c.next(), c.placeholder))
	c.typed = nil
	c.startedAt = time.Time{}
	c.running = true
	c.wpm = 0
	c.remaining = c.countdown
	c.glow = false
	c.tallies = map[rune]*charTally{}
	return []Timer{c.chains.start(ChainWPM)}
}

func (c *Controller) complete(now time.Time) Update {
	c.state = Completed
	c.running = false
	c.chains.cancel(ChainWPM)
	elapsed := now.Sub(c.startedAt)
	c.wpm = WPM(len(c.typed), elapsed.Seconds())
	result := &model.RoundResult{
		Round:      c.round,
		StartedAt:  c.startedAt,
		EndedAt:    now,
		Target:     string(c.target),
		Chars:      len(c.typed),
		WPM:        c.wpm,
		DurationMs: elapsed.Milliseconds(),
		CharStats:  c.charStats(),
	}

	c.state = Countdown
	c.remaining = c.countdown
	c.glow = false
	up := c.update([]Timer{
		c.chains.start(ChainCountdown),
		c.chains.start(ChainGlow),
	})
	up.Finished = result
	return up
}

// tally counts a keystroke when the buffer grew by one rune on an
// unchanged prefix.
func (c *Controller) tally(typed []rune) {
	if len(typed) != len(c.typed)+1 {
		return
	}
	pos := len(typed) - 1
	if pos >= len(c.target) {
		return
	}
	for i, r := range c.typed {
		if typed[i] != r {
			return
		}
	}
	expected := c.target[pos]
	if expected == c.placeholder {
		return
	}
	entry, ok := c.tallies[expected]
	if !ok {
		entry = &charTally{}
		c.tallies[expected] = entry
	}
	if typed[pos] == expected {
		entry.correct++
		return
	}
	entry.incorrect++
}

func (c *Controller) charStats() []model.CharStats {
	out := make([]model.CharStats, 0, len(c.tallies))
	for ch, entry := range c.tallies {
		out = append(out, model.CharStats{
			Char:      string(ch),
			Correct:   entry.correct,
			Incorrect: entry.incorrect,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}
