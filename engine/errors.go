package engine

import "errors"

var (
	ErrNotFound        = errors.New("engine: command not found")
	ErrEmptyLine       = errors.New("engine: empty command line")
	ErrInvalidArgument = errors.New("engine: invalid argument")
	ErrTooManyArgs     = errors.New("engine: too many arguments")
)
