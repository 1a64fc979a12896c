package schema

// DataSourceTable represents the 'public.datasources' table
type DataSourceTable struct {
	Table string
	ID    string
	Name  string
}

// DataSource is the schema definition for public.datasources
var DataSource = DataSourceTable{
	Table: "public.datasources",
	ID:    "id",
	Name:  "name",
}

func (t DataSourceTable) Columns() []string {
	return []string{t.ID, t.Name}
}
