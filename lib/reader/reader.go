// Package reader implements the reader-pipeline adapter: the external-
// facing boundary that resolves a source path to a format driver,
// optionally interposes a reprojection filter, and emits points into a
// pooled table.
//
// The shared format-driver registry is the only mutable state this
// package touches concurrently; every other operation here — including
// the actual point emission — runs lock-free once a driver stage has been
// acquired.
package reader

import (
	"context"
	"sync"

	"github.com/datawire/dlib/dlog"

	"git.lukeshu.com/go/typedsync"

	"github.com/digimatspa/entwine/lib/geom"
)

// Reprojection is a request to reproject points from a source to a target
// spatial reference system. An empty SourceSRS falls back to whatever SRS
// the driver inferred; if neither is available the operation
// fails with ErrReprojectionUnresolved.
type Reprojection struct {
	SourceSRS string
	TargetSRS string
}

// Preview summarizes a source without reading its points.
type Preview struct {
	BBox       geom.BBox
	PointCount uint64
	SRS        string
	DimNames   []string
}

// PointTable is the pooled destination points are emitted into. It is
// reused across Run calls via a typedsync.Pool to avoid reallocating a
// backing array per source.
type PointTable struct {
	Points []geom.Point
}

// Reset clears the table for reuse, keeping its backing array.
func (t *PointTable) Reset() {
	t.Points = t.Points[:0]
}

// Driver is a format-specific reader stage, produced by a Registry for a
// specific path. Once acquired it is owned exclusively by the caller and
// is not safe for concurrent use by multiple goroutines.
type Driver interface {
	// Good reports whether this driver can read path at all.
	Good(path string) bool
	// Preview summarizes path without emitting points.
	Preview(path string, reproj *Reprojection) (Preview, error)
	// Run emits path's points into table.
	Run(ctx context.Context, table *PointTable, path string, reproj *Reprojection) error
}

// Pipeline is the reader-pipeline adapter exposed to callers: good/preview
// run over a shared, mutex-guarded driver Registry.
type Pipeline struct {
	registry *Registry
	mu       sync.Mutex // guards only registry acquisition, narrowly
	pool     typedsync.Pool[*PointTable]
}

// NewPipeline builds a Pipeline over the given registry.
func NewPipeline(registry *Registry) *Pipeline {
	return &Pipeline{
		registry: registry,
		pool: typedsync.Pool[*PointTable]{
			New: func() *PointTable { return &PointTable{} },
		},
	}
}

// acquire resolves path to a Driver, serialized under the narrow registry
// lock. The returned driver is owned by the caller thereafter.
func (p *Pipeline) acquire(path string) (Driver, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.InferReaderDriver(path)
}

// Good reports whether path has a matching driver.
func (p *Pipeline) Good(path string) bool {
	driver, ok := p.acquire(path)
	return ok && driver.Good(path)
}

// Preview resolves path to a driver and previews it without emitting
// points. Returns false if there is no matching driver or the preview
// fails.
func (p *Pipeline) Preview(ctx context.Context, path string, reproj *Reprojection) (Preview, bool) {
	driver, ok := p.acquire(path)
	if !ok {
		dlog.Debugf(ctx, "reader: no driver for %s", path)
		return Preview{}, false
	}
	preview, err := driver.Preview(path, reproj)
	if err != nil {
		dlog.Warnf(ctx, "reader: preview %s: %v", path, err)
		return Preview{}, false
	}
	return preview, true
}

// Run resolves path to a driver and emits its points into a pooled table,
// invoking emit for the populated table before returning it to the pool.
// Run blocks on whatever I/O the underlying driver performs;
// callers that need cancellation should derive ctx accordingly.
func (p *Pipeline) Run(ctx context.Context, path string, reproj *Reprojection, emit func(*PointTable) error) bool {
	driver, ok := p.acquire(path)
	if !ok {
		dlog.Debugf(ctx, "reader: no driver for %s", path)
		return false
	}

	table := p.pool.Get()
	defer func() {
		table.Reset()
		p.pool.Put(table)
	}()

	if err := driver.Run(ctx, table, path, reproj); err != nil {
		dlog.Warnf(ctx, "reader: run %s: %v", path, err)
		return false
	}
	if emit != nil {
		if err := emit(table); err != nil {
			dlog.Warnf(ctx, "reader: emit %s: %v", path, err)
			return false
		}
	}
	return true
}
