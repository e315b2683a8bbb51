package menu

import (
	"io"

	"github.com/okian/hrm/pkg/logger"
)

// Option configures a Menu.
type Option func(*Menu)

// WithInput sets the reader commands are read from.
func WithInput(r io.Reader) Option {
	return func(m *Menu) {
		if r != nil {
			m.in = r
		}
	}
}

// WithOutput sets the writer prompts and results are written to.
func WithOutput(w io.Writer) Option {
	return func(m *Menu) {
		if w != nil {
			m.out = w
		}
	}
}

// WithLogger sets the logger used for session events.
func WithLogger(l logger.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.logger = l
		}
	}
}
