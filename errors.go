package console

import "errors"

// Standard console errors returned by registration and the session.
var (
	// Registration errors
	ErrInvalidArgument  = errors.New("console: invalid argument")
	ErrCapacityExceeded = errors.New("console: capacity exceeded")
	ErrConstruction     = errors.New("console: argument construction failed")

	// Session errors
	ErrInvalidState = errors.New("console: invalid state")
)
