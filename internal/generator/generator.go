// Package generator picks the lines offered for typing.
package generator

import (
	"math/rand"
	"time"
)

// Generator selects lines uniformly at random.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly chosen line, or "" when lines is empty.
func (g *Generator) Pick(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[g.rnd.Intn(len(lines))]
}

// Source returns a line source bound to lines, suitable for a session
// controller.
func (g *Generator) Source(lines []string) func() string {
	owned := append([]string(nil), lines...)
	return func() string {
		return g.Pick(owned)
	}
}
