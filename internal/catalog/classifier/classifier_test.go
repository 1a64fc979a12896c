// Copyright (c) 2026 Circa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestGenreMatch checks keyword extraction against the genre vocabulary,
including the longest-match rule that keeps "science fiction" from being
chopped up.
*/
func TestGenreMatch(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		expectedGenre   string
		expectedMatched string
	}{
		{"plain", "romance", "Romance", "romance"},
		{"embedded", "young adult romance", "Romance", "romance"},
		{"case_insensitive", "Modern ROMANCE", "Romance", "ROMANCE"},
		{"longest_wins", "science fiction asteroids", "Science Fiction", "science fiction"},
		{"subgenre_beats_parent", "epic fantasy quests", "Epic Fantasy", "epic fantasy"},
		{"no_match", "asteroids", "", ""},
		{"fiction_alone_is_not_a_genre", "nonfiction asteroids", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			genre, matched := GenreMatch(tt.query)
			assert.Equal(t, tt.expectedGenre, genre)
			assert.Equal(t, tt.expectedMatched, matched)
		})
	}
}

func TestAudienceMatch(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		expectedAudience string
	}{
		{"young_adult", "young adult romance", AudienceYoungAdult},
		{"teen", "teen novels", AudienceYoungAdult},
		{"childrens", "children's dinosaurs", AudienceChildren},
		{"none", "asteroids", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audience, matched := AudienceMatch(tt.query)
			assert.Equal(t, tt.expectedAudience, audience)
			if tt.expectedAudience != "" {
				assert.NotEmpty(t, matched)
			}
		})
	}
}

/*
TestGradeLevelMatch checks grade-phrase extraction and the grade-to-age
conversion table.
*/
func TestGradeLevelMatch(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		lower, upper  int
		expectedMatch string
	}{
		{"single_grade", "grade 5 dogs", 10, 10, "grade 5"},
		{"grade_range", "grades 3-5 dinosaurs", 8, 10, "grades 3-5"},
		{"grade_to", "grades 2 to 4", 7, 9, "grades 2 to 4"},
		{"kindergarten", "kindergarten readers", 5, 5, "kindergarten"},
		{"ordinal", "4th grade science", 9, 9, "4th grade"},
		{"grade_and_up", "grade 5 and up", 10, 14, "grade 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, matched := GradeLevelMatch(tt.query)
			require.False(t, r.Empty())
			require.NotNil(t, r.Lower)
			require.NotNil(t, r.Upper)
			assert.Equal(t, tt.lower, *r.Lower)
			assert.Equal(t, tt.upper, *r.Upper)
			assert.Equal(t, tt.expectedMatch, matched)
		})
	}

	r, matched := GradeLevelMatch("asteroids")
	assert.True(t, r.Empty())
	assert.Empty(t, matched)
}

/*
TestTargetAgeMatch checks explicit age-phrase extraction, including the
"and up" upper-bound estimate.
*/
func TestTargetAgeMatch(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		lower, upper int
	}{
		{"age_range", "ages 9-12 dinosaurs", 9, 12},
		{"age_to", "ages 3 to 5", 3, 5},
		{"and_up_ya", "divorce age 12 and up", 12, 17},
		{"and_up_children", "age 10 and up", 10, 14},
		{"and_up_preschool", "age 3 and up", 3, 5},
		{"single_age", "age 7 stories", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, matched := TargetAgeMatch(tt.query)
			require.False(t, r.Empty(), "no match for %q", tt.query)
			assert.Equal(t, tt.lower, *r.Lower)
			assert.Equal(t, tt.upper, *r.Upper)
			assert.NotEmpty(t, matched)
		})
	}

	r, _ := TargetAgeMatch("asteroids")
	assert.True(t, r.Empty())
}

func TestNewAgeRangeUnmixesBounds(t *testing.T) {
	five, ten := 5, 10
	r := NewAgeRange(&ten, &five)
	assert.Equal(t, 5, *r.Lower)
	assert.Equal(t, 10, *r.Upper)
}
