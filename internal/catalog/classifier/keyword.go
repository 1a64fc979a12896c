// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package classifier

import (
	"regexp"
	"sort"
	"strings"
)

// genreKeywords maps each genre name to the keyword phrases that indicate
// it. Phrases are matched case-insensitively on word boundaries; the longest
// match wins, so "epic fantasy" beats "fantasy" and "science fiction" is
// never chopped up by a search for "fiction".
var genreKeywords = map[string][]string{
	"Adventure":               {"adventure", "adventurers", "swashbuckling"},
	"Biography & Memoir":      {"biography", "biographies", "memoir", "memoirs", "autobiography"},
	"Classics":                {"classics", "classic literature"},
	"Comics & Graphic Novels": {"comics", "graphic novel", "graphic novels", "manga"},
	"Cooking":                 {"cooking", "cookery", "cookbook", "cookbooks", "recipes"},
	"Dystopian SF":            {"dystopia", "dystopian"},
	"Drama":                   {"drama", "plays"},
	"Epic Fantasy":            {"epic fantasy", "high fantasy"},
	"Erotica":                 {"erotica", "erotic"},
	"Fantasy":                 {"fantasy"},
	"Folklore":                {"folklore", "folk tales", "fairy tales", "legends", "mythology"},
	"Historical Fiction":      {"historical fiction"},
	"History":                 {"history"},
	"Horror":                  {"horror", "scary stories"},
	"Humorous Fiction":        {"humor", "humorous", "humour", "comedies", "funny"},
	"Law":                     {"law", "legal"},
	"Mathematics":             {"mathematics", "math", "algebra", "geometry"},
	"Music":                   {"music", "musicians"},
	"Mystery":                 {"mystery", "mysteries", "detective", "whodunit", "detective stories"},
	"Nature":                  {"nature", "natural history"},
	"Pets":                    {"pets"},
	"Philosophy":              {"philosophy"},
	"Photography":             {"photography"},
	"Poetry":                  {"poetry", "poems"},
	"Police Procedural":       {"police procedural"},
	"Political Science":       {"political science", "politics"},
	"Religion & Spirituality": {"religion", "religious", "spirituality"},
	"Romance":                 {"romance", "romances", "romantic"},
	"Science":                 {"science", "physics", "chemistry", "biology", "astronomy"},
	"Science Fiction":         {"science fiction", "sci-fi", "scifi", "sf"},
	"Self-Help":               {"self-help", "self help", "self improvement"},
	"Space Opera":             {"space opera"},
	"Sports":                  {"sports"},
	"Suspense/Thriller":       {"thriller", "thrillers", "suspense"},
	"Travel":                  {"travel", "travels"},
	"True Crime":              {"true crime"},
	"Urban Fantasy":           {"urban fantasy"},
	"Vampires":                {"vampire", "vampires"},
	"Westerns":                {"western", "westerns"},
}

// Audience keyword phrases. Only juvenile audiences are recognized in free
// text; nobody types "adult" into a search box meaning the audience.
var audienceKeywords = map[string][]string{
	AudienceChildren:   {"juvenile", "children's", "childrens", "children", "kids"},
	AudienceYoungAdult: {"young adult", "young adults", "ya", "teen", "teens", "teenage", "teenagers"},
}

type keywordPattern struct {
	value string
	re    *regexp.Regexp
}

var (
	genrePatterns    []keywordPattern
	audiencePatterns []keywordPattern
)

func init() {
	genrePatterns = compileKeywordTable(genreKeywords)
	audiencePatterns = compileKeywordTable(audienceKeywords)
}

func compileKeywordTable(table map[string][]string) []keywordPattern {
	patterns := make([]keywordPattern, 0, len(table))
	for value, phrases := range table {
		escaped := make([]string, len(phrases))
		for i, p := range phrases {
			escaped[i] = regexp.QuoteMeta(p)
		}
		re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
		patterns = append(patterns, keywordPattern{value: value, re: re})
	}
	// Fixed iteration order so matching is deterministic.
	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].value < patterns[j].value
	})
	return patterns
}

// GenreMatch reports the genre a query fragment refers to and the exact
// substring that matched, or ("", "") if no genre keyword occurs.
//
// When several genres match, the one with the longest matched phrase wins;
// ties go to the earliest occurrence in the query.
func GenreMatch(query string) (genre, matched string) {
	return bestMatch(genrePatterns, query)
}

// AudienceMatch reports the audience a query fragment refers to and the
// exact substring that matched, or ("", "") if no audience keyword occurs.
func AudienceMatch(query string) (audience, matched string) {
	return bestMatch(audiencePatterns, query)
}

func bestMatch(patterns []keywordPattern, query string) (value, matched string) {
	bestLen := 0
	bestPos := len(query) + 1
	for _, p := range patterns {
		loc := p.re.FindStringIndex(query)
		if loc == nil {
			continue
		}
		length := loc[1] - loc[0]
		if length > bestLen || (length == bestLen && loc[0] < bestPos) {
			bestLen = length
			bestPos = loc[0]
			value = p.value
			matched = query[loc[0]:loc[1]]
		}
	}
	return value, matched
}
