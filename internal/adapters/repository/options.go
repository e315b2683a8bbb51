package repository

import "github.com/okian/hrm/internal/adapters/snapshot"

// Option applies a configuration option to the Directory.
type Option func(*Directory)

// WithCapacity preallocates room for n records.
func WithCapacity(n int) Option {
	return func(d *Directory) {
		if n > 0 {
			d.capacity = n
		}
	}
}

// WithLoadOptions sets the options applied to every bulk load and import.
func WithLoadOptions(opts ...snapshot.Option) Option {
	return func(d *Directory) {
		d.loadOpts = append(d.loadOpts, opts...)
	}
}
