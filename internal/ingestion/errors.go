package ingestion

import "errors"

// Loader errors. Both are terminal: the session must not start on a
// partially loaded dataset.
var (
	// ErrDataNotFound is returned when no candidate source for a dataset
	// resolves.
	ErrDataNotFound = errors.New("dataset not found in any configured source")

	// ErrRemoteFetch is returned when a remote dataset download fails
	// (connection error, non-2xx status, truncated body).
	ErrRemoteFetch = errors.New("remote dataset fetch failed")
)
