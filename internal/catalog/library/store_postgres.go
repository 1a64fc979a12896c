package library

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/circa/internal/platform/database/schema"
	"github.com/taibuivan/circa/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetByShortName(context context.Context, shortName string) (*Library, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.Library.ID,
		schema.Library.ShortName,
		schema.Library.Name,
		schema.Library.Settings,
		schema.Library.Table,
		schema.Library.ShortName,
	)

	lib := &Library{}
	var rawSettings []byte

	err := repository.db.QueryRow(context, query, shortName).
		Scan(&lib.ID, &lib.ShortName, &lib.Name, &rawSettings)
	if err != nil {
		return nil, dberr.Wrap(err, "get_library")
	}

	// Settings are stored as a JSONB blob. Unknown keys are ignored.
	if len(rawSettings) > 0 {
		if err := json.Unmarshal(rawSettings, &lib.Settings); err != nil {
			return nil, dberr.Wrap(err, "decode_library_settings")
		}
	}

	collectionIDs, err := repository.activeCollectionIDs(context, lib.ID)
	if err != nil {
		return nil, err
	}
	lib.ActiveCollectionIDs = collectionIDs

	return lib, nil
}

// activeCollectionIDs loads the library's collections, skipping any that are
// marked for deletion.
func (repository *PostgresRepository) activeCollectionIDs(context context.Context, libraryID int) ([]int, error) {
	query := fmt.Sprintf(`
		SELECT c.%s
		FROM %s c
		JOIN %s cl ON cl.%s = c.%s
		WHERE cl.%s = $1 AND c.%s IS NULL
		ORDER BY c.%s ASC;
	`,
		schema.Collection.ID,
		schema.Collection.Table,
		schema.CollectionLibrary.Table,
		schema.CollectionLibrary.CollectionID,
		schema.Collection.ID,
		schema.CollectionLibrary.LibraryID,
		schema.Collection.MarkedForDeletionAt,
		schema.Collection.ID,
	)

	rows, err := repository.db.Query(context, query, libraryID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_library_collections")
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_collection_id")
		}
		ids = append(ids, id)
	}

	return ids, nil
}
