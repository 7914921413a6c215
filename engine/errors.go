package engine

import (
	"errors"
)

// IncompatibleInputTypeError indicates that an input with an incompatible
// type was submitted to an engine. Engines treat this as a symptom of a
// mis-wired node rather than a recoverable condition.
var IncompatibleInputTypeError = errors.New("incompatible input type")
