package reader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digimatspa/entwine/lib/geom"
	"github.com/digimatspa/entwine/lib/reader"
)

type fakeDriver struct {
	srs    string
	points []geom.Point
}

func (f *fakeDriver) Good(path string) bool { return true }

func (f *fakeDriver) Preview(path string, reproj *reader.Reprojection) (reader.Preview, error) {
	srs, err := reader.ResolveSourceSRS(reproj, f.srs)
	if err != nil {
		return reader.Preview{}, err
	}
	return reader.Preview{SRS: srs, PointCount: uint64(len(f.points))}, nil
}

func (f *fakeDriver) Run(ctx context.Context, table *reader.PointTable, path string, reproj *reader.Reprojection) error {
	if _, err := reader.ResolveSourceSRS(reproj, f.srs); err != nil {
		return err
	}
	table.Points = append(table.Points, f.points...)
	return nil
}

func registryWithFake(srs string, points []geom.Point) *reader.Registry {
	reg := reader.NewRegistry()
	reg.Register(".fake", func(path string) (reader.Driver, error) {
		return &fakeDriver{srs: srs, points: points}, nil
	})
	return reg
}

func TestGoodReportsKnownDriver(t *testing.T) {
	p := reader.NewPipeline(registryWithFake("EPSG:4326", nil))
	assert.True(t, p.Good("cloud.fake"))
	assert.False(t, p.Good("cloud.unknown"))
}

func TestPreviewFallsBackToDriverSRS(t *testing.T) {
	p := reader.NewPipeline(registryWithFake("EPSG:4326", []geom.Point{{X: 1, Y: 2}}))
	reproj := &reader.Reprojection{TargetSRS: "EPSG:3857"}
	preview, ok := p.Preview(context.Background(), "cloud.fake", reproj)
	require.True(t, ok)
	assert.Equal(t, "EPSG:4326", preview.SRS)
	assert.Equal(t, uint64(1), preview.PointCount)
}

func TestPreviewFailsWhenNoSRSAvailable(t *testing.T) {
	p := reader.NewPipeline(registryWithFake("", nil))
	reproj := &reader.Reprojection{TargetSRS: "EPSG:3857"}
	_, ok := p.Preview(context.Background(), "cloud.fake", reproj)
	assert.False(t, ok)
}

func TestRunEmitsPointsAndReturnsTableToPool(t *testing.T) {
	pts := []geom.Point{{X: 1}, {X: 2}, {X: 3}}
	p := reader.NewPipeline(registryWithFake("EPSG:4326", pts))

	var got []geom.Point
	ok := p.Run(context.Background(), "cloud.fake", nil, func(t *reader.PointTable) error {
		got = append(got, t.Points...)
		return nil
	})
	require.True(t, ok)
	assert.Equal(t, pts, got)
}

func TestRunFailsForUnknownDriver(t *testing.T) {
	p := reader.NewPipeline(registryWithFake("EPSG:4326", nil))
	ok := p.Run(context.Background(), "cloud.unknown", nil, nil)
	assert.False(t, ok)
}

func TestResolveSourceSRSFallbackRule(t *testing.T) {
	srs, err := reader.ResolveSourceSRS(nil, "EPSG:4326")
	require.NoError(t, err)
	assert.Equal(t, "EPSG:4326", srs)

	srs, err = reader.ResolveSourceSRS(&reader.Reprojection{SourceSRS: "EPSG:3857"}, "EPSG:4326")
	require.NoError(t, err)
	assert.Equal(t, "EPSG:3857", srs)

	_, err = reader.ResolveSourceSRS(&reader.Reprojection{}, "")
	assert.ErrorIs(t, err, reader.ErrReprojectionUnresolved)
}
