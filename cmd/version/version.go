package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Command to show current binary version",
		Run:   runCommand,
	}

	return cmd
}

func runCommand(c *cobra.Command, args []string) {
	fmt.Fprintln(c.OutOrStdout(), Version)
}
