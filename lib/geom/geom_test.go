package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digimatspa/entwine/lib/geom"
)

func full2d() geom.BBox {
	return geom.NewBBox2d(geom.Point{X: 0, Y: 0}, geom.Point{X: 8, Y: 8})
}

func full3d() geom.BBox {
	return geom.NewBBox3d(geom.Point{X: 0, Y: 0, Z: 0}, geom.Point{X: 8, Y: 8, Z: 8})
}

func TestBBoxInvariantPanics(t *testing.T) {
	assert.Panics(t, func() {
		geom.NewBBox2d(geom.Point{X: 1, Y: 0}, geom.Point{X: 0, Y: 1})
	})
}

func TestChildQuadrantsPartitionTheParent(t *testing.T) {
	b := full2d()
	nwd := b.GoNwd()
	ned := b.GoNed()
	swd := b.GoSwd()
	sed := b.GoSed()

	for _, c := range []geom.BBox{nwd, ned, swd, sed} {
		assert.InDelta(t, b.Volume()/4, c.Volume(), 1e-9)
	}
	assert.Equal(t, geom.Point{X: 0, Y: 4}, nwd.Min)
	assert.Equal(t, geom.Point{X: 4, Y: 8}, nwd.Max)
	assert.Equal(t, geom.Point{X: 4, Y: 0}, sed.Min)
	assert.Equal(t, geom.Point{X: 8, Y: 4}, sed.Max)
}

func Test3DDirectionRejectedOn2D(t *testing.T) {
	b := full2d()
	assert.Panics(t, func() { b.Go(geom.DirNwu) })
}

func TestClimberDescendsAndComposes(t *testing.T) {
	c := geom.NewClimber(full2d())
	c.Go(geom.DirSed).Go(geom.DirNwd)
	want := full2d().GoSed().GoNwd()
	require.Equal(t, want, c.BBox())
}

func TestDirFromBitsMatchesSubsetEncoding(t *testing.T) {
	assert.Equal(t, geom.DirNwd, geom.DirFromBits(0))
	assert.Equal(t, geom.DirNed, geom.DirFromBits(1))
	assert.Equal(t, geom.DirSwd, geom.DirFromBits(2))
	assert.Equal(t, geom.DirSed, geom.DirFromBits(3))
}

func TestOctantVolumeIsEighthIn3D(t *testing.T) {
	b := full3d()
	oct := b.Go(geom.DirNeu)
	assert.InDelta(t, b.Volume()/8, oct.Volume(), 1e-9)
}

func TestUnionOfAllFourChildrenRecoversTheParent(t *testing.T) {
	b := full2d()
	nwd := b.GoNwd()
	sed := b.GoSed()
	union := nwd.Union(sed).Union(b.GoNed()).Union(b.GoSwd())
	assert.Equal(t, b.Min, union.Min)
	assert.Equal(t, b.Max, union.Max)
}

func TestUnionRejectsMismatchedDimensionality(t *testing.T) {
	assert.Panics(t, func() { full2d().Union(full3d()) })
}
