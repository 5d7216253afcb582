package pcidx

import "github.com/digimatspa/entwine/lib/bigidx"

// hasColdBand reports whether the cold band has nonzero width: either it
// is unbounded, or its end depth is strictly past its begin depth.
func (s *Structure) hasColdBand() bool {
	return !s.hasColdEnd || s.coldIndexEnd.Greater(s.coldIndexBegin)
}

// numChunksAtDepth returns the number of chunks that subdivide depth d's
// slots. Past the sparse threshold with dynamic chunks on,
// this is constant — the defining property of dynamic chunking.
func (s *Structure) numChunksAtDepth(d uint64) uint64 {
	if !s.params.DynamicChunks || !s.sparse || d <= s.sparseDepthBegin {
		span := s.levelIndex(d + 1).Sub(s.levelIndex(d))
		q, _ := span.DivMod(s.params.ChunkPoints)
		return q.AsSimple()
	}
	q, _ := s.pointsAtDepth(s.sparseDepthBegin).DivMod(s.params.ChunkPoints)
	return q.AsSimple()
}

// GetInfoFromNum is the left-inverse of ChunkInfoAt's ChunkNum: for any n
// in [0, total cold chunks), GetInfoFromNum(n).ChunkNum == n.
func (s *Structure) GetInfoFromNum(n uint64) ChunkInfo {
	if !s.hasColdBand() {
		return ChunkInfo{
			Depth:       s.depthOf(bigidx.Zero),
			ChunkID:     bigidx.Zero,
			ChunkNum:    0,
			ChunkOffset: 0,
			ChunkPoints: s.params.ChunkPoints,
		}
	}

	if s.params.DynamicChunks && s.sparse {
		endFixed := s.levelIndex(s.sparseDepthBegin + 1)
		fixedSpanID := endFixed.Sub(s.coldIndexBegin)
		fixedNumID, _ := fixedSpanID.DivMod(s.params.ChunkPoints)
		fixedNum := fixedNumID.AsSimple()

		if n < fixedNum {
			chunkID := s.coldIndexBegin.Add(bigidx.FromU64(n).MulSmall(s.params.ChunkPoints))
			return s.ChunkInfoAt(chunkID)
		}

		leftover := n - fixedNum
		cps := s.numChunksAtDepth(s.sparseDepthBegin)
		depth := s.sparseDepthBegin + 1 + leftover/cps
		slot := leftover % cps
		chunkSizeID, _ := s.pointsAtDepth(depth).DivMod(cps)
		chunkSize := chunkSizeID.AsSimple()
		chunkID := s.levelIndex(depth).Add(bigidx.FromU64(slot).MulSmall(chunkSize))
		return s.ChunkInfoAt(chunkID)
	}

	chunkID := s.coldIndexBegin.Add(bigidx.FromU64(n).MulSmall(s.params.ChunkPoints))
	return s.ChunkInfoAt(chunkID)
}
