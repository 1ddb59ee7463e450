package service

import "context"

// ExistsChecker reports whether a record with the given ID is stored.
// The parent repositories implement it.
type ExistsChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
