package schema

// CollectionTable represents the 'public.collections' table
type CollectionTable struct {
	Table               string
	ID                  string
	Name                string
	MarkedForDeletionAt string
}

// Collection is the schema definition for public.collections
var Collection = CollectionTable{
	Table:               "public.collections",
	ID:                  "id",
	Name:                "name",
	MarkedForDeletionAt: "marked_for_deletion",
}

func (t CollectionTable) Columns() []string {
	return []string{t.ID, t.Name, t.MarkedForDeletionAt}
}

// CollectionLibraryTable represents the 'public.collections_libraries' join table
type CollectionLibraryTable struct {
	Table        string
	CollectionID string
	LibraryID    string
}

// CollectionLibrary is the schema definition for public.collections_libraries
var CollectionLibrary = CollectionLibraryTable{
	Table:        "public.collections_libraries",
	CollectionID: "collection_id",
	LibraryID:    "library_id",
}
