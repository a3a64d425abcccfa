package parallel

import "errors"

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: worker pool closed")
