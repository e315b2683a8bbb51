package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrLoadConfig        = errors.New("load config failed")
	ErrNoFrontEnd        = errors.New("invalid config: either menu or addr must be enabled")
	ErrEmptyManagerToken = errors.New("invalid config: manager_token must not be empty")
	ErrInvalidMetrics    = errors.New("invalid config: metrics settings")
)
