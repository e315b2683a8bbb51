// Package snapshot reads and writes the HRM flat-file formats: the bulk-load
// input, the text competence report and the xlsx workbook export.
package snapshot

import "github.com/okian/hrm/pkg/logger"

// Option applies a configuration option to a bulk load.
type Option func(*loader)

// WithLogger reports rejected lines through l.
func WithLogger(l logger.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithManagerToken overrides the marker that tags a line as a manager.
func WithManagerToken(token string) Option {
	return func(ld *loader) {
		if token != "" {
			ld.managerToken = token
		}
	}
}
