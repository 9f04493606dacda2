package synthetic

import "errors"

// ErrInvalidArgument is returned when seed or length is out of range.
// The operation is pure; retrying with the same inputs fails identically,
// so callers should correct the input instead.
var ErrInvalidArgument = errors.New("synthetic: invalid argument")
