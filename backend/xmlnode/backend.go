package xmlnode

import "model-mapper/document"

// Backend is the XML document.Backend.
type Backend struct {
	indent string
}

// Option configures a Backend.
type Option func(*Backend)

// WithIndent indents element-only content by one indent per level. Elements
// with text children are written as they are.
func WithIndent(indent string) Option {
	return func(b *Backend) { b.indent = indent }
}

// New creates a backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Format implements document.Backend.
func (b *Backend) Format() document.Format { return document.XML }
