// Package storage defines the minimal view of a remote object namespace the
// bootstrapper needs to probe a configured DVC remote. Implementations are
// assumed to be fairly simple: S3 for the real remote, a local filesystem
// for tests.
package storage

import "context"

type errString string

func (e errString) Error() string { return string(e) }

const (
	// ErrNotFound is returned when the probed bucket does not exist.
	ErrNotFound errString = "not found"

	// ErrForbidden is returned when the caller's credentials cannot
	// access the probed bucket.
	ErrForbidden errString = "forbidden"
)

// Store is a read-only probe into an object namespace.
type Store interface {
	String() string

	// Has reports whether an object exists at key.
	Has(ctx context.Context, key string) (bool, error)

	// KeysPrefix returns up to limit object keys under prefix.
	KeysPrefix(ctx context.Context, prefix string, limit int) ([]string, error)
}
