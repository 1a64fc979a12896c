package schema

// LibraryTable represents the 'public.libraries' table
type LibraryTable struct {
	Table     string
	ID        string
	ShortName string
	Name      string
	Settings  string
}

// Library is the schema definition for public.libraries
var Library = LibraryTable{
	Table:     "public.libraries",
	ID:        "id",
	ShortName: "short_name",
	Name:      "name",
	Settings:  "settings_dict",
}

func (t LibraryTable) Columns() []string {
	return []string{t.ID, t.ShortName, t.Name, t.Settings}
}
