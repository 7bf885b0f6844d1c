package ports

import "errors"

var ErrFixtureNotFound = errors.New("fixture not found")
