package pcidx

import (
	"context"

	"git.lukeshu.com/go/lowmemjson"
)

// metadataDoc is the persisted-metadata shape: the fields a
// chunk store or config loader round-trips through disk.
type metadataDoc struct {
	NullDepth     uint64    `json:"nullDepth"`
	BaseDepth     uint64    `json:"baseDepth"`
	ColdDepth     uint64    `json:"coldDepth"`
	ChunkPoints   uint64    `json:"chunkPoints"`
	Dimensions    uint8     `json:"dimensions"`
	NumPointsHint uint64    `json:"numPointsHint"`
	DynamicChunks bool      `json:"dynamicChunks"`
	Subset        [2]uint64 `json:"subset"`
}

// ToJSON serializes the Structure's construction parameters.
// Round-trip law: New(ctx, FromJSON(ToJSON(s)).params) yields an equal
// Structure.
func (s *Structure) ToJSON() ([]byte, error) {
	doc := metadataDoc{
		NullDepth:     s.params.NullDepth,
		BaseDepth:     s.params.BaseDepth,
		ColdDepth:     s.params.ColdDepth,
		ChunkPoints:   s.params.ChunkPoints,
		Dimensions:    s.params.Dimensions,
		NumPointsHint: s.params.NumPointsHint,
		DynamicChunks: s.params.DynamicChunks,
		Subset:        [2]uint64{s.params.Subset.ID, s.params.Subset.Splits},
	}
	return lowmemjson.Marshal(doc)
}

// FromJSON parses a persisted-metadata document and constructs a
// Structure from it.
func FromJSON(ctx context.Context, data []byte) (*Structure, error) {
	var doc metadataDoc
	if err := lowmemjson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return New(ctx, Params{
		NullDepth:     doc.NullDepth,
		BaseDepth:     doc.BaseDepth,
		ColdDepth:     doc.ColdDepth,
		ChunkPoints:   doc.ChunkPoints,
		Dimensions:    doc.Dimensions,
		NumPointsHint: doc.NumPointsHint,
		DynamicChunks: doc.DynamicChunks,
		Subset:        Subset{ID: doc.Subset[0], Splits: doc.Subset[1]},
	})
}
