// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search compiles free-text queries and lane restrictions into the
structured query documents the search engine executes.

The package has three moving parts. Query turns a user-typed string into a
ranked set of hypotheses about what the user meant, combined so that each
work is scored by its best hypothesis. Filter compiles every non-text
restriction (collections, languages, audiences, availability, and so on)
into a flat boolean filter plus per-subdocument nested filters. JSONQuery
accepts a small JSON query language for exact-match searches by API clients.
*/
package search

// Contributor roles as stored in work records.
const (
	RolePrimaryAuthor = "Primary Author"
	RoleAuthor        = "Author"
	RoleNarrator      = "Narrator"
	RoleEditor        = "Editor"
	RoleDirector      = "Director"
	RoleActor         = "Actor"
)

// AuthorMatchRoles are the roles that count as authorship when filtering by
// a specific person.
var AuthorMatchRoles = []string{
	RolePrimaryAuthor,
	RoleAuthor,
	RoleNarrator,
	RoleEditor,
	RoleDirector,
	RoleActor,
}

// SearchRelevantRoles are the roles a patron is most likely looking for
// when they type a person's name into a search box.
var SearchRelevantRoles = []string{
	RolePrimaryAuthor,
	RoleAuthor,
	RoleNarrator,
}

// UnknownAuthor is the placeholder author name used when a work has no
// known author. It never identifies a person, so it never matches one.
const UnknownAuthor = "[Unknown]"

// License pool status value indexed for pools that are still active.
const LicensePoolStatusActive = "active"

// Availability restrictions, set on a Filter by facet configuration.
const (
	AvailableNow        = "now"
	AvailableAll        = "all"
	AvailableOpenAccess = "always"
	AvailableNotNow     = "not_now"
)

// Search types a Filter can carry. JSON searches are exact matches and
// bypass relevance scoring.
const (
	SearchTypeDefault = "default"
	SearchTypeJSON    = "json"
)

// Author identifies a contributor to search for. Only the fields that are
// set participate in matching; UnknownAuthor values are ignored.
type Author struct {
	SortName    string
	DisplayName string
	VIAF        string
	LC          string
}

// Identifier is one bibliographic identifier to match, e.g. an ISBN.
type Identifier struct {
	Type       string
	Identifier string
}

// Library carries the already-resolved library attributes the search core
// needs. Callers load these from wherever library configuration lives; the
// search core only reads them.
type Library struct {
	ID                     int
	ActiveCollectionIDs    []int
	AllowHolds             bool
	MinimumFeaturedQuality float64

	// Content-policy exclusions. Works matching these audiences or
	// genres are hidden from this library's patrons.
	FilteredAudiences []string
	FilteredGenres    []string
}
