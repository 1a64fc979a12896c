package datasource

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListDataSources(context context.Context) ([]*DataSource, error)
	GetDataSourceByName(context context.Context, name string) (*DataSource, error)
}
