package repository

import "errors"

// Sentinel kinds for directory errors.
var (
	ErrDuplicateName = errors.New("name already exists")
	ErrNotFound      = errors.New("employee not found")
	ErrNotAManager   = errors.New("employee is not a manager")
)
