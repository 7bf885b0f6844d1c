package ports

import (
	"context"
	"io"
)

// FixtureSource opens the startup seed document. Open returns
// ErrFixtureNotFound when the source has nothing to offer.
type FixtureSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Location() string
}
