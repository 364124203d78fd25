package interval

import "errors"

// ErrRangeOverflow is returned when shifting an interval would move an endpoint
// past the limits of the coordinate type.
var ErrRangeOverflow = errors.New("interval: range overflow")
