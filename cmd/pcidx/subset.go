package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/digimatspa/entwine/lib/geom"
)

func newSubsetCommand(metadataPath *string) *cobra.Command {
	var minX, minY, maxX, maxY float64

	cmd := &cobra.Command{
		Use:   "subset",
		Short: "print a structure's subset bbox and filename postfix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadStructure(cmd.Context(), *metadataPath)
			if err != nil {
				return err
			}

			full := geom.NewBBox2d(geom.Point{X: minX, Y: minY}, geom.Point{X: maxX, Y: maxY})
			bbox, err := s.SubsetBBox(full)
			if err != nil {
				return fmt.Errorf("pcidx: subset bbox: %w", err)
			}
			fmt.Printf("postfix=%q min=(%g,%g) max=(%g,%g)\n",
				s.SubsetPostfix(), bbox.Min.X, bbox.Min.Y, bbox.Max.X, bbox.Max.Y)
			return nil
		},
	}
	cmd.Flags().Float64Var(&minX, "min-x", 0, "full-region min X")
	cmd.Flags().Float64Var(&minY, "min-y", 0, "full-region min Y")
	cmd.Flags().Float64Var(&maxX, "max-x", 0, "full-region max X")
	cmd.Flags().Float64Var(&maxY, "max-y", 0, "full-region max Y")
	return cmd
}
