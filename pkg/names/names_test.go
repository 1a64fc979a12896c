// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/circa/pkg/names"
)

/*
TestDisplayToSort exercises the display-name to sort-name heuristics.
*/
func TestDisplayToSort(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		expected string
	}{
		{"two_words", "Jane Doe", "Doe, Jane"},
		{"three_words", "Ursula K. Le", "Le, Ursula K."},
		{"already_sorted", "Doe, Jane", "Doe, Jane"},
		{"single_word", "Homer", "Homer"},
		{"suffix", "Martin Luther King Jr.", "King, Martin Luther Jr."},
		{"suffix_only_two_words", "King Jr.", "King Jr."},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names.DisplayToSort(tt.display))
		})
	}
}
