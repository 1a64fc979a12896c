// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/circa/internal/catalog/spell"
)

func TestDefaultDictionary(t *testing.T) {
	dict := spell.Default()

	assert.True(t, dict.Known("book"))
	assert.True(t, dict.Known("Book"))
	assert.False(t, dict.Known("vonnegut"))
	assert.False(t, dict.Known(""))
}

func TestUnknown(t *testing.T) {
	dict := spell.Default()

	assert.Empty(t, spell.Unknown(dict, []string{"modern", "love"}))
	assert.Equal(t, []string{"vonnegut"}, spell.Unknown(dict, []string{"kurt", "vonnegut", "the"})[1:])
	// Edge punctuation is stripped before lookup.
	assert.Empty(t, spell.Unknown(dict, []string{"book,", "'story'"}))
}

func TestInjectedDictionary(t *testing.T) {
	dict := spell.NewDictionary([]string{"Zyx"})
	assert.True(t, dict.Known("zyx"))
	assert.False(t, dict.Known("book"))
}
