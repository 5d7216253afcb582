package pcidx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digimatspa/entwine/lib/bigidx"
	"github.com/digimatspa/entwine/lib/geom"
	"github.com/digimatspa/entwine/lib/pcidx"
)

func TestS1OctreeFixedChunksNoSparse(t *testing.T) {
	ctx := context.Background()
	s, err := pcidx.New(ctx, pcidx.Params{
		Dimensions:    3,
		NullDepth:     6,
		BaseDepth:     8,
		ColdDepth:     12,
		ChunkPoints:   262144, // 8^6
		DynamicChunks: false,
	})
	require.NoError(t, err)

	require.Equal(t, uint64(6), s.NominalChunkDepth())
	require.Equal(t, "2396745", s.LevelIndex(8).String())
	require.True(t, s.ColdIndexBegin().Equal(s.LevelIndex(8)))

	ci := s.ChunkInfoAt(s.ColdIndexBegin())
	assert.Equal(t, uint64(8), ci.Depth)
	assert.True(t, ci.ChunkID.Equal(s.ColdIndexBegin()))
	assert.Equal(t, uint64(0), ci.ChunkNum)
	assert.Equal(t, uint64(0), ci.ChunkOffset)
	assert.Equal(t, uint64(262144), ci.ChunkPoints)

	ci2 := s.ChunkInfoAt(s.ColdIndexBegin().Add(bigidx.FromU64(262144)))
	assert.Equal(t, uint64(1), ci2.ChunkNum)
	assert.Equal(t, uint64(0), ci2.ChunkOffset)
}

// quadtreeDynamicSparse builds the S2 quadtree configuration. The sparse
// depth arrives at 16 via floor(log4(4e9))+1 = 15+1 = 16; see DESIGN.md
// for why 16, not 17, is the value this computation settles on.
func quadtreeDynamicSparse(t *testing.T) *pcidx.Structure {
	t.Helper()
	s, err := pcidx.New(context.Background(), pcidx.Params{
		Dimensions:    2,
		NullDepth:     6,
		BaseDepth:     10,
		ColdDepth:     0,
		ChunkPoints:   65536, // 4^8
		DynamicChunks: true,
		NumPointsHint: 4_000_000_000,
	})
	require.NoError(t, err)
	return s
}

func TestS2QuadtreeDynamicSparse(t *testing.T) {
	s := quadtreeDynamicSparse(t)
	require.True(t, s.IsSparse())
	require.Equal(t, uint64(16), s.SparseDepthBegin())

	// One level past the sparse threshold, chunk size doubles per
	// dimension step (here quadruples, since factor=4): 65536*4=262144.
	chunkID := s.LevelIndex(17)
	ci := s.ChunkInfoAt(chunkID)
	assert.Equal(t, uint64(17), ci.Depth)
	assert.Equal(t, uint64(262144), ci.ChunkPoints)
	assert.Equal(t, uint64(0), ci.ChunkOffset)
}

func TestS3InverseRoundTrip(t *testing.T) {
	s := quadtreeDynamicSparse(t)

	sparseFirstSpan := s.PointsAtDepth(s.SparseDepthBegin()).AsSimple()
	chunksPerSparseDepth := sparseFirstSpan / s.Params().ChunkPoints

	endFixed := s.LevelIndex(s.SparseDepthBegin() + 1)
	fixedSpan := endFixed.Sub(s.ColdIndexBegin())
	fixedNumID, _ := fixedSpan.DivMod(s.Params().ChunkPoints)
	fixedNum := fixedNumID.AsSimple()

	n := fixedNum // first chunk one level past the sparse threshold
	info := s.GetInfoFromNum(n)
	assert.Equal(t, n, info.ChunkNum)
	assert.Equal(t, s.SparseDepthBegin()+1, info.Depth)
	assert.True(t, info.ChunkID.Equal(s.LevelIndex(s.SparseDepthBegin()+1)))

	_ = chunksPerSparseDepth
}

func TestLeftInverseAcrossColdBand(t *testing.T) {
	s := quadtreeDynamicSparse(t)
	for n := uint64(0); n < 200; n++ {
		info := s.GetInfoFromNum(n)
		assert.Equal(t, n, info.ChunkNum, "n=%d", n)
	}
}

func TestS4SubsetNaming(t *testing.T) {
	s, err := pcidx.New(context.Background(), pcidx.Params{
		Dimensions:  2,
		NullDepth:   6,
		BaseDepth:   10,
		ColdDepth:   0,
		ChunkPoints: 65536,
		Subset:      pcidx.Subset{ID: 3, Splits: 16},
	})
	require.NoError(t, err)

	assert.Equal(t, "-3", s.SubsetPostfix())

	full := geom.NewBBox2d(geom.Point{X: 0, Y: 0}, geom.Point{X: 16, Y: 16})
	got, err := s.SubsetBBox(full)
	require.NoError(t, err)

	want := full.GoSed().GoNwd()
	assert.Equal(t, want, got)
}

func TestS5ConfigRejection(t *testing.T) {
	ctx := context.Background()

	_, err := pcidx.New(ctx, pcidx.Params{
		Dimensions: 3, NullDepth: 2, BaseDepth: 3, ColdDepth: 6, ChunkPoints: 8,
	})
	require.Error(t, err)

	_, err = pcidx.New(ctx, pcidx.Params{
		Dimensions: 2, NullDepth: 6, BaseDepth: 10, ColdDepth: 12, ChunkPoints: 1000,
	})
	require.Error(t, err)

	_, err = pcidx.New(ctx, pcidx.Params{
		Dimensions: 2, NullDepth: 6, BaseDepth: 10, ColdDepth: 0, ChunkPoints: 65536,
		Subset: pcidx.Subset{ID: 5, Splits: 4},
	})
	require.Error(t, err)
}

func TestS6ThreeDSubsetRejected(t *testing.T) {
	s, err := pcidx.New(context.Background(), pcidx.Params{
		Dimensions: 3, NullDepth: 6, BaseDepth: 8, ColdDepth: 12, ChunkPoints: 262144,
		Subset: pcidx.Subset{ID: 0, Splits: 4},
	})
	require.NoError(t, err)

	full := geom.NewBBox3d(geom.Point{X: 0, Y: 0, Z: 0}, geom.Point{X: 8, Y: 8, Z: 8})
	_, err = s.SubsetBBox(full)
	require.Error(t, err)
	assert.ErrorIs(t, err, pcidx.UnsupportedSplit3DError{})
}

func TestNonDynamicAlwaysUsesBaseChunkPoints(t *testing.T) {
	s, err := pcidx.New(context.Background(), pcidx.Params{
		Dimensions: 2, NullDepth: 6, BaseDepth: 10, ColdDepth: 0, ChunkPoints: 65536,
		DynamicChunks: false, NumPointsHint: 4_000_000_000,
	})
	require.NoError(t, err)

	for _, depth := range []uint64{10, 15, 20, 30} {
		ci := s.ChunkInfoAt(s.LevelIndex(depth))
		assert.Equal(t, uint64(65536), ci.ChunkPoints, "depth=%d", depth)
	}
}

func TestRoundTripToJSONFromJSON(t *testing.T) {
	ctx := context.Background()
	s, err := pcidx.New(ctx, pcidx.Params{
		Dimensions: 2, NullDepth: 6, BaseDepth: 10, ColdDepth: 0,
		ChunkPoints: 65536, DynamicChunks: true, NumPointsHint: 4_000_000_000,
		Subset: pcidx.Subset{},
	})
	require.NoError(t, err)

	data, err := s.ToJSON()
	require.NoError(t, err)

	s2, err := pcidx.FromJSON(ctx, data)
	require.NoError(t, err)

	assert.True(t, s.Equal(s2))
}

func TestMakeWholeClearsSubsetIdentity(t *testing.T) {
	s, err := pcidx.New(context.Background(), pcidx.Params{
		Dimensions: 2, NullDepth: 6, BaseDepth: 10, ColdDepth: 0, ChunkPoints: 65536,
		Subset: pcidx.Subset{ID: 2, Splits: 4},
	})
	require.NoError(t, err)

	whole := s.MakeWhole()
	assert.True(t, whole.Subset().Whole())
	assert.Equal(t, "", whole.SubsetPostfix())
}

func TestLevelIndexAndPointsAtDepthIdentities(t *testing.T) {
	s, err := pcidx.New(context.Background(), pcidx.Params{
		Dimensions: 3, NullDepth: 6, BaseDepth: 8, ColdDepth: 12, ChunkPoints: 262144,
	})
	require.NoError(t, err)

	want := uint64(1)
	for d := uint64(0); d < 10; d++ {
		// levelIndex(d+1) == levelIndex(d)*factor + 1
		got := s.LevelIndex(d).MulSmall(s.Factor()).Add(bigidx.One)
		assert.True(t, got.Equal(s.LevelIndex(d+1)), "d=%d", d)
		// pointsAtDepth(d) == factor^d, verified against an independently
		// computed power rather than the implementation's own Shl path.
		assert.Equal(t, want, s.PointsAtDepth(d).AsSimple(), "d=%d", d)
		want *= s.Factor()
	}
}
