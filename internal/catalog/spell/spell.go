// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package spell answers one question: does a word look like English?

The search core uses the answer to weight its fuzzy (typo-tolerant)
hypotheses. A query containing an unknown word is probably a proper noun or a
typo, so fuzzy matches keep their full weight; a query of all dictionary
words is probably spelled as intended, so fuzzy matches are damped.

The default dictionary is a frequency wordlist embedded at build time and
loaded once per process; it is immutable and safe for concurrent reads.
Callers with a better dictionary can inject their own [Dictionary].
*/
package spell

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
	"sync"
)

//go:embed words.txt
var embeddedWords []byte

// Dictionary reports membership of words in a spelling vocabulary.
type Dictionary interface {
	// Known reports whether word is in the vocabulary. Matching is
	// case-insensitive.
	Known(word string) bool
}

// Unknown returns the words from the given list that the dictionary does not
// recognize. Punctuation on word edges is ignored.
func Unknown(dict Dictionary, words []string) []string {
	var unknown []string
	for _, w := range words {
		trimmed := strings.Trim(strings.ToLower(w), `.,;:!?'"()[]`)
		if trimmed == "" {
			continue
		}
		if !dict.Known(trimmed) {
			unknown = append(unknown, trimmed)
		}
	}
	return unknown
}

type wordSet map[string]struct{}

func (s wordSet) Known(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// NewDictionary builds a dictionary from an explicit word list.
func NewDictionary(words []string) Dictionary {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

var (
	defaultOnce sync.Once
	defaultDict Dictionary
)

// Default returns the embedded English dictionary, parsed on first use.
func Default() Dictionary {
	defaultOnce.Do(func() {
		s := wordSet{}
		scanner := bufio.NewScanner(bytes.NewReader(embeddedWords))
		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word != "" {
				s[word] = struct{}{}
			}
		}
		defaultDict = s
	})
	return defaultDict
}
