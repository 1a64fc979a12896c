package library

// Settings holds the JSONB settings blob stored alongside each library row.
// Only the keys relevant to catalog search are decoded.
type Settings struct {
	AllowHolds             *bool    `json:"allow_holds"`
	MinimumFeaturedQuality *float64 `json:"minimum_featured_quality"`
	FilteredAudiences      []string `json:"filtered_audiences"`
	FilteredGenres         []string `json:"filtered_genres"`
}

// Library is one tenant of the circulation manager.
type Library struct {
	ID        int      `json:"id"`
	ShortName string   `json:"short_name"`
	Name      string   `json:"name"`
	Settings  Settings `json:"settings"`

	// ActiveCollectionIDs is the set of collections this library draws
	// titles from, excluding collections marked for deletion.
	ActiveCollectionIDs []int `json:"collection_ids"`
}

// AllowHolds reports whether patrons may place holds on unavailable titles.
// Defaults to true when the setting is absent.
func (l *Library) AllowHolds() bool {
	if l.Settings.AllowHolds == nil {
		return true
	}
	return *l.Settings.AllowHolds
}

// MinimumFeaturedQuality is the quality floor for featured lanes.
// Defaults to 0.65 when the setting is absent.
func (l *Library) MinimumFeaturedQuality() float64 {
	if l.Settings.MinimumFeaturedQuality == nil {
		return 0.65
	}
	return *l.Settings.MinimumFeaturedQuality
}
