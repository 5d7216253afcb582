package pcidx

import (
	"fmt"

	"github.com/digimatspa/entwine/lib/geom"
)

// Subset returns the structure's shard identity.
func (s *Structure) Subset() Subset { return s.params.Subset }

// SubsetPostfix returns "-<id>" when this Structure is a shard, or "" when
// whole — used by the external chunk store to name shard-scoped artifacts
// without colliding.
func (s *Structure) SubsetPostfix() string {
	if s.params.Subset.Whole() {
		return ""
	}
	return fmt.Sprintf("-%d", s.params.Subset.ID)
}

// SubsetBBox descends a Climber from full by log4(splits) steps, each step
// decoding a 2-bit direction from the subset id, and returns the resulting
// region. Only whole structures pass through unchanged; 3D
// structures reject splitting outright, since octree splitting is
// explicitly unspecified.
func (s *Structure) SubsetBBox(full geom.BBox) (geom.BBox, error) {
	if s.params.Subset.Whole() {
		return full, nil
	}
	if s.params.Dimensions == 3 || full.Is3d {
		return geom.BBox{}, UnsupportedSplit3DError{}
	}

	var times int
	switch s.params.Subset.Splits {
	case 4:
		times = 1
	case 16:
		times = 2
	case 64:
		times = 3
	default:
		panic(fmt.Sprintf("pcidx: SubsetBBox: unknown splits value %d", s.params.Subset.Splits))
	}

	climber := geom.NewClimber(full)
	id := s.params.Subset.ID
	for i := 0; i < times; i++ {
		dir := geom.DirFromBits(uint(id >> (2 * i)))
		climber.Go(dir)
	}
	return climber.BBox(), nil
}

// MakeWhole returns a copy of s with its subset identity erased (id=0,
// splits=0), used when merging shards back into one coherent index.
func (s *Structure) MakeWhole() *Structure {
	clone := *s
	clone.params.Subset = Subset{}
	return &clone
}
