// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package captcha_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holologin/internal/captcha"
)

func TestAlphabet(t *testing.T) {
	assert.Len(t, captcha.Alphabet, 62)
	assert.NotContains(t, captcha.Alphabet, "0")
	assert.NotContains(t, captcha.Alphabet, "7")
	assert.Equal(t, 2, strings.Count(captcha.Alphabet, "Uu"), "Uu pair should appear twice")
}

func TestGenerator_Generate(t *testing.T) {
	gen := captcha.NewSeededGenerator(42)

	for range 500 {
		got := gen.Generate()
		require.Len(t, got, captcha.Length)
		for _, r := range got {
			assert.Contains(t, captcha.Alphabet, string(r))
		}
	}
}

func TestGenerator_SameSeedSameSequence(t *testing.T) {
	a := captcha.NewSeededGenerator(7)
	b := captcha.NewSeededGenerator(7)

	for range 10 {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestGenerator_CallsAreIndependent(t *testing.T) {
	gen := captcha.NewSeededGenerator(99)

	seen := make(map[string]struct{})
	for range 50 {
		seen[gen.Generate()] = struct{}{}
	}
	// 50 draws from 62^6 combinations should never collapse to a single value.
	assert.Greater(t, len(seen), 1)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		input    string
		want     bool
	}{
		{name: "exact", expected: "Kx9ZqA", input: "Kx9ZqA", want: true},
		{name: "case differs", expected: "abc123", input: "AbC123", want: false},
		{name: "trailing space", expected: "abc123", input: "abc123 ", want: false},
		{name: "prefix", expected: "abc123", input: "abc12", want: false},
		{name: "empty input", expected: "abc123", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, captcha.Match(tt.expected, tt.input))
		})
	}
}
