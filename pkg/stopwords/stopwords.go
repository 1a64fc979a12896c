// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package stopwords provides the English stopword set used when deciding
// whether a query string would benefit from a with-stopwords phrase match.
//
// The set mirrors the one built into the search engine's standard English
// analyzer, so a word the analyzer would strip is exactly a word this package
// reports as a stopword.
package stopwords

import "strings"

// english is the stopword list of the engine's default English analyzer.
var english = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by",
		"for", "if", "in", "into", "is", "it",
		"no", "not", "of", "on", "or", "such",
		"that", "the", "their", "then", "there", "these",
		"they", "this", "to", "was", "will", "with",
	} {
		english[w] = struct{}{}
	}
}

// IsStopword reports whether word is an English stopword. Matching is
// case-insensitive.
func IsStopword(word string) bool {
	_, ok := english[strings.ToLower(word)]
	return ok
}

// ContainsStopword reports whether any word in words is a stopword.
func ContainsStopword(words []string) bool {
	for _, w := range words {
		if IsStopword(w) {
			return true
		}
	}
	return false
}
