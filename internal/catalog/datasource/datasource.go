package datasource

// DataSource identifies a provider of bibliographic records
// (e.g. "Overdrive", "Bibliotheca", "Axis 360").
type DataSource struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
