package main

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newDumpCommand(metadataPath *string) *cobra.Command {
	var sampleCount uint64

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "spew a structure's parameters and a handful of sample ChunkInfos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadStructure(cmd.Context(), *metadataPath)
			if err != nil {
				return err
			}

			dumper := spew.NewDefaultConfig()
			dumper.DisablePointerAddresses = true

			dumper.Fdump(os.Stdout, s.Params())
			for n := uint64(0); n < sampleCount; n++ {
				dumper.Fdump(os.Stdout, s.GetInfoFromNum(n))
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&sampleCount, "samples", 3, "number of leading chunks to dump by chunk number")
	return cmd
}
