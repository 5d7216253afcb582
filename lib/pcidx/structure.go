// Package pcidx implements the hierarchical point-cloud index: the
// Structure configuration, the ChunkInfo tree-index↔chunk mapping, dynamic
// sparse chunk sizing, and subset sharding.
//
// The package is purely functional over immutable Structure values once
// constructed: every derived boundary is computed and cached at New time,
// so every subsequent query answers in O(1) arithmetic and is freely
// callable from many goroutines without synchronization.
package pcidx

import (
	"context"
	"math/bits"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"
	"golang.org/x/exp/constraints"

	"github.com/digimatspa/entwine/lib/bigidx"
)

// Subset identifies one shard of a split index.
type Subset struct {
	ID     uint64
	Splits uint64 // 0 means "whole"
}

// Whole reports whether this is an unsplit (whole) index.
func (s Subset) Whole() bool { return s.Splits == 0 }

// Params are the explicit construction parameters for a Structure,
// matching the persisted-metadata fields (see lib/pcidx's ToJSON).
type Params struct {
	NullDepth     uint64 // end of the null band (exclusive)
	BaseDepth     uint64 // end of the base band (exclusive)
	ColdDepth     uint64 // end of the cold band (exclusive); 0 = unbounded
	ChunkPoints   uint64 // nominal tree slots per chunk; must be factor^n when cold exists
	Dimensions    uint8  // 2 or 3
	NumPointsHint uint64 // 0 = never sparse
	DynamicChunks bool
	Subset        Subset
}

// Structure holds the immutable configuration of a point-cloud index and
// the boundaries derived from it.
type Structure struct {
	params Params

	factor uint64 // 2^dimensions

	nullIndexEnd   bigidx.Id
	baseIndexEnd   bigidx.Id
	coldIndexBegin bigidx.Id
	coldIndexEnd   bigidx.Id // zero value means "unbounded"
	hasColdEnd     bool

	nominalChunkDepth uint64
	nominalChunkIndex bigidx.Id

	sparse           bool // numPointsHint > 0
	sparseDepthBegin uint64
	sparseIndexBegin bigidx.Id
}

// levelIndex returns the first tree index at depth d: (factor^d-1)/(factor-1).
func (s *Structure) levelIndex(d uint64) bigidx.Id {
	if d == 0 {
		return bigidx.Zero
	}
	num := s.pointsAtDepth(d).Sub(bigidx.One)
	q, r := num.DivMod(s.factor - 1)
	if r != 0 {
		panic("pcidx: levelIndex: non-exact division, corrupted geometric series")
	}
	return q
}

// pointsAtDepth returns factor^d, computed exactly via shift since factor
// is always a power of two.
func (s *Structure) pointsAtDepth(d uint64) bigidx.Id {
	return bigidx.One.Shl(uint(s.params.Dimensions) * uint(d))
}

// floorLogFactor returns floor(log_factor(v)) for v > 0.
func (s *Structure) floorLogFactor(v uint64) uint64 {
	return uint64(bits.Len64(v)-1) / uint64(s.params.Dimensions)
}

// New validates params and constructs a Structure, materializing all
// derived boundaries once. Every invariant violation is
// collected before returning, rather than failing on the first.
func New(ctx context.Context, params Params) (*Structure, error) {
	var errs derror.MultiError

	if params.Dimensions != 2 && params.Dimensions != 3 {
		errs = append(errs, configErr("dimensions", "must be 2 or 3, got %d", params.Dimensions))
	}
	if params.BaseDepth < 4 {
		errs = append(errs, configErr("baseDepth", "baseDepthEnd must be >= 4, got %d", params.BaseDepth))
	}
	if params.ColdDepth != 0 && params.ColdDepth < params.BaseDepth {
		errs = append(errs, configErr("coldDepth", "must be 0 (unbounded) or >= baseDepth (%d), got %d", params.BaseDepth, params.ColdDepth))
	}
	if params.Dimensions != 2 && params.Dimensions != 3 {
		// Can't safely derive factor/chunk invariants on a bad dimensions
		// value; report what we have so far.
		return nil, errs
	}

	s := &Structure{
		params: params,
		factor: uint64(1) << params.Dimensions,
	}

	hasCold := params.ColdDepth == 0 || params.ColdDepth > params.BaseDepth
	if hasCold {
		if !isPowerOf(params.ChunkPoints, s.factor) {
			errs = append(errs, configErr("chunkPoints", "must be factor^n (factor=%d), got %d", s.factor, params.ChunkPoints))
		}
	}

	s.nullIndexEnd = s.levelIndex(params.NullDepth)
	s.baseIndexEnd = s.levelIndex(params.BaseDepth)
	s.coldIndexBegin = s.baseIndexEnd
	if params.ColdDepth != 0 {
		s.coldIndexEnd = s.levelIndex(params.ColdDepth)
		s.hasColdEnd = true
	}

	if hasCold && params.ChunkPoints > 0 {
		s.nominalChunkDepth = uint64(logExact(params.ChunkPoints, s.factor))
		s.nominalChunkIndex = s.levelIndex(s.nominalChunkDepth)
	}

	if params.NumPointsHint > 0 {
		s.sparse = true
		s.sparseDepthBegin = maxOf(s.floorLogFactor(params.NumPointsHint)+1, params.BaseDepth)
		s.sparseIndexBegin = s.levelIndex(s.sparseDepthBegin)
	}

	if !params.Subset.Whole() {
		switch params.Subset.Splits {
		case 4, 16, 64:
		default:
			errs = append(errs, configErr("subset.splits", "must be one of {4,16,64}, got %d", params.Subset.Splits))
		}
		if params.Subset.ID >= params.Subset.Splits {
			errs = append(errs, configErr("subset.id", "must be < splits (%d), got %d", params.Subset.Splits, params.Subset.ID))
		}
		if params.NullDepth == 0 {
			errs = append(errs, configErr("nullDepth", "must be > 0 when subset splitting is in use"))
		} else if pow4(params.NullDepth) < params.Subset.Splits {
			errs = append(errs, configErr("nullDepth", "4^nullDepth must be >= splits (%d)", params.Subset.Splits))
		}
		if hasCold && params.ChunkPoints > 0 && params.Subset.Splits != 0 {
			chunksAtColdID, _ := s.pointsAtDepth(params.BaseDepth).DivMod(params.ChunkPoints)
			chunksAtCold := chunksAtColdID.AsSimple()
			if chunksAtCold%params.Subset.Splits != 0 || chunksAtCold < params.Subset.Splits {
				errs = append(errs, configErr("subset.splits", "cold-band chunk count (%d) must be a multiple of splits (%d) and >= splits", chunksAtCold, params.Subset.Splits))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if params.NumPointsHint == 0 {
		dlog.Warnf(ctx, "pcidx: numPointsHint is 0; chunk-layout performance may degrade past a few billion points")
	}

	return s, nil
}

func isPowerOf(v, base uint64) bool {
	if v == 0 {
		return false // 0 is not base^n for any n
	}
	for v > 1 {
		if v%base != 0 {
			return false
		}
		v /= base
	}
	return v == 1
}

// logExact returns n such that base^n == v. The result is only meaningful
// when v is an exact power of base (see isPowerOf); otherwise it is the
// number of integer divisions by base needed to bring v down to at most 1.
func logExact(v, base uint64) uint64 {
	var n uint64
	for v > 1 {
		v /= base
		n++
	}
	return n
}

func pow4(n uint64) uint64 {
	var r uint64 = 1
	for i := uint64(0); i < n; i++ {
		r *= 4
		if r == 0 { // overflow saturates to "plenty"
			return ^uint64(0)
		}
	}
	return r
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
