package pcidx

import "github.com/digimatspa/entwine/lib/bigidx"

// Params returns the construction parameters this Structure was built
// from.
func (s *Structure) Params() Params { return s.params }

// Equal reports whether two Structures were built from identical
// parameters.
func (s *Structure) Equal(other *Structure) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.params == other.params
}

// Dimensions returns 2 or 3.
func (s *Structure) Dimensions() uint8 { return s.params.Dimensions }

// Factor returns 2^Dimensions (4 for a quadtree, 8 for an octree).
func (s *Structure) Factor() uint64 { return s.factor }

// IsSparse reports whether a sparse threshold is in effect at all (i.e.
// NumPointsHint > 0).
func (s *Structure) IsSparse() bool { return s.sparse }

// SparseDepthBegin returns the depth at which the tree is expected to
// become sparse. Only meaningful when IsSparse is true.
func (s *Structure) SparseDepthBegin() uint64 { return s.sparseDepthBegin }

// ColdIndexBegin returns the first tree index of the cold band.
func (s *Structure) ColdIndexBegin() bigidx.Id { return s.coldIndexBegin }

// NominalChunkDepth returns log_factor(ChunkPoints), the depth at which a
// single chunk exactly spans one full tree level in the non-sparse
// regime.
func (s *Structure) NominalChunkDepth() uint64 { return s.nominalChunkDepth }

// LevelIndex exposes levelIndex(d): the first tree index at depth d.
func (s *Structure) LevelIndex(d uint64) bigidx.Id { return s.levelIndex(d) }

// PointsAtDepth exposes pointsAtDepth(d): factor^d, the slot count at
// exactly depth d.
func (s *Structure) PointsAtDepth(d uint64) bigidx.Id { return s.pointsAtDepth(d) }
