package menu

import "errors"

// Error constants.
var (
	ErrNilService = errors.New("menu: service is nil")
	ErrInput      = errors.New("menu: read input")
)

// errQuit ends the loop without reporting a failure.
var errQuit = errors.New("quit")
