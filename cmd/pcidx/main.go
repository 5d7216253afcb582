// Command pcidx is a thin inspector over a persisted point-cloud index
// Structure: it loads a metadata document and answers index↔chunk and
// subset queries against it. It owns no invariants of its own — those all
// live in lib/pcidx — and exists only because a real repo ships a CLI.
package main

import (
	"fmt"
	"os"

	"github.com/datawire/dlib/dcontext"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/digimatspa/entwine/lib/textui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pcidx: error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	logLevel := &textui.LogLevelFlag{Level: dlog.LogLevelInfo}
	var metadataPath string

	root := &cobra.Command{
		Use:           "pcidx",
		Short:         "inspect a persisted point-cloud index Structure",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := dcontext.WithSoftness(cmd.Context())
			logger := textui.NewLogger(os.Stderr, logLevel.Level)
			cmd.SetContext(dlog.WithLogger(ctx, logger))
			return nil
		},
	}
	root.PersistentFlags().Var(logLevel, "log-level", "log level: error|warn|info|debug|trace")
	root.PersistentFlags().StringVar(&metadataPath, "metadata", "", "path to a persisted Structure metadata JSON file")

	root.AddCommand(
		newInfoCommand(&metadataPath),
		newSubsetCommand(&metadataPath),
		newDumpCommand(&metadataPath),
	)
	return root
}
