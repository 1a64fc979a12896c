// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package names converts contributor display names into the sort-name order
// used by bibliographic records.
//
// # Usage
//
// Patrons type "Jane Doe" into a search box, but contributor records are also
// indexed under "Doe, Jane". Converting the typed form lets the query match
// contributors we only know by sort name.
package names

import "strings"

// Generational and professional suffixes that stay attached to the given
// name rather than becoming the surname.
var suffixes = map[string]struct{}{
	"jr": {}, "jr.": {}, "sr": {}, "sr.": {},
	"ii": {}, "iii": {}, "iv": {},
	"md": {}, "m.d.": {}, "phd": {}, "ph.d.": {},
}

// DisplayToSort converts a display name ("Jane Doe") to sort-name order
// ("Doe, Jane").
//
// # Heuristics
//
//   - A name that already contains a comma is assumed to be a sort name and
//     is returned unchanged.
//   - A single word has no surname to move; it is returned unchanged.
//   - A trailing suffix (Jr., III, PhD) stays with the given name:
//     "Martin Luther King Jr." becomes "King, Martin Luther Jr."
//
// An empty or whitespace-only input yields "".
func DisplayToSort(display string) string {
	display = strings.TrimSpace(display)
	if display == "" {
		return ""
	}
	if strings.Contains(display, ",") {
		// Already in sort order.
		return display
	}

	parts := strings.Fields(display)
	if len(parts) < 2 {
		return display
	}

	var suffix string
	last := parts[len(parts)-1]
	if _, ok := suffixes[strings.ToLower(last)]; ok {
		suffix = last
		parts = parts[:len(parts)-1]
		if len(parts) < 2 {
			return display
		}
	}

	surname := parts[len(parts)-1]
	given := strings.Join(parts[:len(parts)-1], " ")

	sortName := surname + ", " + given
	if suffix != "" {
		sortName += " " + suffix
	}
	return sortName
}
