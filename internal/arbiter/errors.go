package arbiter

import "errors"

var (
	// ErrIncompleteCatalog is returned when an event identifier in the known
	// universe has no catalog entry.
	ErrIncompleteCatalog = errors.New("catalog entry missing for event")

	// ErrUnknownEvent is returned when the catalog contains a key outside the
	// known identifier universe.
	ErrUnknownEvent = errors.New("catalog key is not a known event")

	// ErrEmptyAlertSource is returned when a catalog slot has neither a fixed
	// alert nor a callback.
	ErrEmptyAlertSource = errors.New("catalog slot has no alert source")
)
