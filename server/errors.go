package server

import "errors"

var (
	// ErrSearcherRequired is returned when no searcher is provided.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrServerBusy is returned when the search pool cannot accept more work.
	ErrServerBusy = errors.New("server is busy, try again later")
)
