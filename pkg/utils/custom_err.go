package utils

import "errors"

var (
	ErrNoDestinations          = errors.New("no destinations")
	ErrLastDestination         = errors.New("at least one destination slot is required")
	ErrInvalidDestinationIndex = errors.New("invalid destination index")
	ErrGenerationInFlight      = errors.New("guide generation already in progress")
	ErrGuideService            = errors.New("guide service error")
	ErrSessionStore            = errors.New("session store error")
)
