package reader

import "path/filepath"

// DriverFactory constructs a Driver stage bound to a specific path. A
// registry entry is a factory, not a live Driver, because a single format
// (e.g. "las") may need fresh per-file state.
type DriverFactory func(path string) (Driver, error)

// Registry is the shared, mutable format-driver registry. It is not
// itself safe for concurrent access — callers (Pipeline) are responsible
// for serializing access to it under a single mutex, the way
// OldRebuiltForrest.RebuiltTree guards its lazily-built tree cache with
// one mutex per cache bucket.
type Registry struct {
	byExt map[string]DriverFactory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]DriverFactory)}
}

// Register associates a file extension (including the leading dot, e.g.
// ".las") with a driver factory. Pipeline-style sources — paths that name
// a processing pipeline rather than a single file — are reserved for a
// future extension and are never registered here.
func (r *Registry) Register(ext string, factory DriverFactory) {
	r.byExt[ext] = factory
}

// InferReaderDriver resolves path to a driver factory by extension and
// returns the Driver that factory builds for path. Reports false if no
// factory matches or the matching factory fails.
func (r *Registry) InferReaderDriver(path string) (Driver, bool) {
	factory, ok := r.byExt[filepath.Ext(path)]
	if !ok {
		return nil, false
	}
	driver, err := factory(path)
	if err != nil {
		return nil, false
	}
	return driver, true
}
