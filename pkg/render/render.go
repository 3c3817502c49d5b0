package render

import "context"

// Renderer lays out DOT source and encodes it in a format.
type Renderer interface {
	// Name identifies the renderer and its engine, e.g. "graphviz:dot".
	// It is part of the cache key.
	Name() string
	Render(ctx context.Context, dot string, format Format) ([]byte, error)
}
