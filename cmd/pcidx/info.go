package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/digimatspa/entwine/lib/bigidx"
)

func newInfoCommand(metadataPath *string) *cobra.Command {
	var index, chunkNum uint64
	var byChunkNum bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "print the ChunkInfo for a tree index or a chunk number",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadStructure(cmd.Context(), *metadataPath)
			if err != nil {
				return err
			}

			p := message.NewPrinter(language.English)

			if byChunkNum {
				ci := s.GetInfoFromNum(chunkNum)
				p.Printf("depth=%d chunkID=%s chunkNum=%d chunkOffset=%d chunkPoints=%d\n",
					ci.Depth, ci.ChunkID, ci.ChunkNum, ci.ChunkOffset, ci.ChunkPoints)
				return nil
			}

			ci := s.ChunkInfoAt(bigidx.FromU64(index))
			p.Printf("depth=%d chunkID=%s chunkNum=%d chunkOffset=%d chunkPoints=%d\n",
				ci.Depth, ci.ChunkID, ci.ChunkNum, ci.ChunkOffset, ci.ChunkPoints)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&index, "index", 0, "tree index to resolve to a ChunkInfo")
	cmd.Flags().Uint64Var(&chunkNum, "chunk-num", 0, "chunk number to resolve to a ChunkInfo (inverse lookup)")
	cmd.Flags().BoolVar(&byChunkNum, "by-chunk-num", false, "resolve --chunk-num instead of --index")
	return cmd
}
