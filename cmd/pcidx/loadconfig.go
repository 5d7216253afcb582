package main

import (
	"context"
	"fmt"
	"os"

	"github.com/digimatspa/entwine/lib/pcidx"
)

// loadStructure reads a persisted metadata document from path and
// constructs the Structure it describes.
func loadStructure(ctx context.Context, path string) (*pcidx.Structure, error) {
	if path == "" {
		return nil, fmt.Errorf("pcidx: --metadata is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pcidx: reading %s: %w", path, err)
	}
	s, err := pcidx.FromJSON(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("pcidx: parsing %s: %w", path, err)
	}
	return s, nil
}
