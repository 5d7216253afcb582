package pcidx

import "github.com/digimatspa/entwine/lib/bigidx"

// ChunkInfo is the derived-per-index answer to "which chunk, and where in
// it, does this tree index belong to".
type ChunkInfo struct {
	Depth       uint64
	ChunkID     bigidx.Id // tree index of the chunk's first slot
	ChunkNum    uint64    // 0-based ordinal among all cold-band chunks
	ChunkOffset uint64    // i - ChunkID
	ChunkPoints uint64    // slot count of the chunk containing i
}

// ChunkInfoAt derives the ChunkInfo for tree index i. i must be within the
// cold band; querying a null/base index is a programmer error and panics rather than returning a zero value.
func (s *Structure) ChunkInfoAt(i bigidx.Id) ChunkInfo {
	if i.Less(s.coldIndexBegin) {
		panic("pcidx: ChunkInfoAt: index below cold band (IndexOutOfBand)")
	}

	depth := s.depthOf(i)
	level := s.levelIndex(depth)

	if !s.dynamicSparseActive(level) {
		chunkPoints := s.params.ChunkPoints
		q, r := i.Sub(s.coldIndexBegin).DivMod(chunkPoints)
		return ChunkInfo{
			Depth:       depth,
			ChunkID:     s.coldIndexBegin.Add(q.MulSmall(chunkPoints)),
			ChunkNum:    q.AsSimple(),
			ChunkOffset: r,
			ChunkPoints: chunkPoints,
		}
	}

	sparseFirstSpan := s.pointsAtDepth(s.sparseDepthBegin).AsSimple()
	chunksPerSparseDepth := sparseFirstSpan / s.params.ChunkPoints

	k := depth - s.sparseDepthBegin
	chunkPointsID := bigidx.One.Shl(uint(s.params.Dimensions) * uint(k)).MulSmall(s.params.ChunkPoints)
	chunkPoints := chunkPointsID.AsSimple()

	coldSpan := s.sparseIndexBegin.Sub(s.coldIndexBegin)
	numColdChunksID, _ := coldSpan.DivMod(s.params.ChunkPoints)
	numColdChunks := numColdChunksID.AsSimple()

	prev := numColdChunks + chunksPerSparseDepth*k

	levelOffset := i.Sub(level).AsSimple()
	slot := levelOffset / chunkPoints
	chunkOffset := levelOffset % chunkPoints

	return ChunkInfo{
		Depth:       depth,
		ChunkID:     level.Add(bigidx.FromU64(slot).MulSmall(chunkPoints)),
		ChunkNum:    prev + slot,
		ChunkOffset: chunkOffset,
		ChunkPoints: chunkPoints,
	}
}

// dynamicSparseActive reports whether the dynamic-chunk-sizing regime
// applies at the given level's first index.
func (s *Structure) dynamicSparseActive(level bigidx.Id) bool {
	if !s.params.DynamicChunks || !s.sparse {
		return false
	}
	return level.Greater(s.sparseIndexBegin)
}

// depthOf computes depth = floor(log_factor(i*(factor-1)+1)). It estimates via bit length and corrects by at most a
// step or two against the exact levelIndex boundaries.
func (s *Structure) depthOf(i bigidx.Id) uint64 {
	x := i.MulSmall(s.factor - 1).Add(bigidx.One)
	depth := uint64(x.BitLen()-1) / uint64(s.params.Dimensions)

	for s.levelIndex(depth).Greater(i) {
		depth--
	}
	for s.levelIndex(depth + 1).LessEq(i) {
		depth++
	}
	return depth
}
