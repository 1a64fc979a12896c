package library

import "context"

// Repository defines the data access contract.
type Repository interface {
	// GetByShortName returns the library with the given short name,
	// including its active collection IDs.
	//
	// Returns [apperr.NotFound] if the library does not exist.
	GetByShortName(context context.Context, shortName string) (*Library, error)
}
