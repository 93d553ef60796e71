package session

import "time"

// Tick periods of the three chains.
const (
	WPMInterval       = 500 * time.Millisecond
	CountdownInterval = time.Second
	GlowInterval      = 500 * time.Millisecond
)

// Chain identifies a self-rescheduling timer sequence.
type Chain int

// Chains driven by the controller.
const (
	ChainWPM Chain = iota
	ChainCountdown
	ChainGlow
	chainCount
)

func (c Chain) String() string {
	switch c {
	case ChainWPM:
		return "wpm"
	case ChainCountdown:
		return "countdown"
	case ChainGlow:
		return "glow"
	default:
		return "unknown"
	}
}

func (c Chain) interval() time.Duration {
	switch c {
	case ChainCountdown:
		return CountdownInterval
	case ChainGlow:
		return GlowInterval
	default:
		return WPMInterval
	}
}

// Token identifies one scheduled tick. A token is live only while its
// generation matches the controller's generation for the chain.
type Token struct {
	Chain Chain
	Gen   uint64
}

// Timer asks the front end to deliver Token back to Tick after After.
type Timer struct {
	Token Token
	After time.Duration
}

type chains struct {
	gens [chainCount]uint64
}

// start invalidates outstanding ticks of the chain and issues a fresh one.
func (c *chains) start(ch Chain) Timer {
	c.cancel(ch)
	return c.next(ch)
}

// next continues the chain under its current generation.
func (c *chains) next(ch Chain) Timer {
	return Timer{Token: Token{Chain: ch, Gen: c.gens[ch]}, After: ch.interval()}
}

func (c *chains) cancel(ch Chain) {
	c.gens[ch]++
}

func (c *chains) cancelAll() {
	for ch := Chain(0); ch < chainCount; ch++ {
		c.cancel(ch)
	}
}

func (c *chains) live(tok Token) bool {
	if tok.Chain < 0 || tok.Chain >= chainCount {
		return false
	}
	return c.gens[tok.Chain] == tok.Gen
}
