// Package lehmer implements the Park-Miller minimal standard generator with
// the 48271 multiplier. Every simulation draw in the module comes from a
// single Generator so that results are a pure function of the seed.
package lehmer

import (
	"errors"
	"fmt"
)

const (
	// Modulus is the Mersenne prime 2^31 - 1.
	Modulus int64 = 2147483647
	// Multiplier is the Park-Miller multiplier.
	Multiplier int64 = 48271

	quotient  = Modulus / Multiplier // 44488
	remainder = Modulus % Multiplier // 3399
)

// ErrInvalidSeed is returned for seeds outside [1, Modulus-1].
var ErrInvalidSeed = errors.New("lehmer: seed must be in [1, 2147483646]")

// Generator is a multiplicative congruential generator. It is not safe for
// concurrent use; callers hand it down the stack one owner at a time.
type Generator struct {
	x int64
}

// New returns a generator seeded with seed.
func New(seed int64) (*Generator, error) {
	if err := validSeed(seed); err != nil {
		return nil, err
	}
	return &Generator{x: seed}, nil
}

// MustNew is New for fixed seeds known to be valid.
func MustNew(seed int64) *Generator {
	g, err := New(seed)
	if err != nil {
		panic(err)
	}
	return g
}

// Next advances the state and returns it scaled into (0,1).
func (g *Generator) Next() float64 {
	// Schrage: a*x mod m without overflowing the product.
	t := Multiplier*(g.x%quotient) - remainder*(g.x/quotient)
	if t > 0 {
		g.x = t
	} else {
		g.x = t + Modulus
	}
	return float64(g.x) / float64(Modulus)
}

// State returns the current state.
func (g *Generator) State() int64 {
	return g.x
}

// Reseed replaces the state with seed.
func (g *Generator) Reseed(seed int64) error {
	if err := validSeed(seed); err != nil {
		return err
	}
	g.x = seed
	return nil
}

func validSeed(seed int64) error {
	if seed < 1 || seed >= Modulus {
		return fmt.Errorf("%w: got %d", ErrInvalidSeed, seed)
	}
	return nil
}
