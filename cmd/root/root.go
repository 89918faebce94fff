package root

import (
	"github.com/spf13/cobra"

	"github.com/takakv/bpattest/cmd/attest"
	"github.com/takakv/bpattest/cmd/relativity"
	"github.com/takakv/bpattest/cmd/version"
)

func GetRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:          "bpattest",
		Short:        "Bit-pair attestations of hashed attribute values",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(attest.GetCommand())
	rootCmd.AddCommand(relativity.GetCommand())
	rootCmd.AddCommand(version.GetCommand())
	return rootCmd
}
