package datasource

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListDataSources(context context.Context) ([]*DataSource, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.DataSource.ID,
		schema.DataSource.Name,
		schema.DataSource.Table,
		schema.DataSource.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_data_sources")
	}
	defer rows.Close()

	var sources []*DataSource
	for rows.Next() {
		ds := &DataSource{}
		if err := rows.Scan(&ds.ID, &ds.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_data_source")
		}
		sources = append(sources, ds)
	}

	return sources, nil
}

func (repository *PostgresRepository) GetDataSourceByName(context context.Context, name string) (*DataSource, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.DataSource.ID,
		schema.DataSource.Name,
		schema.DataSource.Table,
		schema.DataSource.Name,
	)

	ds := &DataSource{}
	err := repository.db.QueryRow(context, query, name).Scan(&ds.ID, &ds.Name)
	return ds, dberr.Wrap(err, "get_data_source")
}
