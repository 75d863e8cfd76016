package utils

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDay        = errors.New("invalid day index")
	ErrDatabaseError     = errors.New("database error")
	ErrItineraryNotFound = errors.New("itinerary not found")

	// ErrProviderFailure marks a single place provider call failing. It is
	// absorbed by the aggregator and never reaches HTTP callers.
	ErrProviderFailure = errors.New("place provider failure")
	ErrSearchFailed    = errors.New("place search failed")
	ErrDiscoveryFailed = errors.New("regional discovery failed")
	ErrNoCandidates    = errors.New("no candidate places found")
	ErrBuildDegraded   = errors.New("itinerary build degraded")
)
