// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package captcha generates the short text challenges shown at login.
package captcha

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Alphabet is the symbol set captchas are drawn from. It has no 0 or 7 and
// carries "Uu" twice, so U and u are sampled at double weight.
const Alphabet = "1AaBbCc2DdEeFf3GgHhIiJjKkLl4MmNnOo5PpQqRrSsTt6UuVvUuWw8XxYyZz9"

// Length is the number of symbols in every captcha.
const Length = 6

// Generator produces captchas from an owned random source. It is not safe
// for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator that draws from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator creates a Generator whose output is fully determined by
// seed. A zero seed picks one from the clock.
func NewSeededGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns a fresh captcha of Length symbols sampled uniformly, with
// replacement, from Alphabet.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for range Length {
		b.WriteByte(Alphabet[g.rng.IntN(len(Alphabet))])
	}
	return b.String()
}

// Match reports whether input is exactly the expected captcha. Comparison is
// case-sensitive and performs no trimming.
func Match(expected, input string) bool {
	return expected == input
}
