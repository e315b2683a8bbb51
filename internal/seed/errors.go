package seed

import "errors"

// Error constants.
var (
	ErrInvalidConfig = errors.New("invalid seed configuration")
	ErrVerify        = errors.New("seed verification failed")
	ErrImport        = errors.New("seed import failed")
)
