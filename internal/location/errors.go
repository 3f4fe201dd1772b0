package location

import (
	"errors"
	"fmt"
)

// ErrNoLocation is returned when every source in the cascade came up empty.
var ErrNoLocation = errors.New("unable to determine location")

// IncompleteLocationError reports a source that supplied exactly one of
// latitude and longitude. The cascade stops there instead of silently
// falling through to a lower-priority source.
type IncompleteLocationError struct {
	Source string
}

func (e *IncompleteLocationError) Error() string {
	return fmt.Sprintf("incomplete location from %s: both latitude and longitude are required", e.Source)
}
