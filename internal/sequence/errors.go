package sequence

import "errors"

var (
	// ErrInvalidConfiguration is returned for a non-positive repetition
	// target or an unknown mode.
	ErrInvalidConfiguration = errors.New("invalid playback configuration")

	// ErrIndexOutOfRange is returned when a verse index or step falls outside
	// the loaded page.
	ErrIndexOutOfRange = errors.New("verse index out of range")

	// ErrInvalidPosition is returned when seeking to a position the plan
	// would never produce.
	ErrInvalidPosition = errors.New("invalid sequence position")
)
