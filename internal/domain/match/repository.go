package match

import "context"

type Repository interface {
	// List returns every match of the tracked team, most recent first.
	List(ctx context.Context) ([]Result, error)
}
