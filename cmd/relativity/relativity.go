package relativity

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takakv/bpattest/config"
	"github.com/takakv/bpattest/relativity"
)

const (
	valueFlag = "value"
	hashFlag  = "hash"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relativity",
		Short: "Print the expected response histogram of a value",
		RunE:  runCommand,
	}
	cmd.Flags().String(valueFlag, "", "Attribute value to hash")
	cmd.Flags().String(hashFlag, config.HashSHA256x4, "Hash: sha256, sha512 or sha256_4")
	_ = cmd.MarkFlagRequired(valueFlag)
	return cmd
}

func runCommand(c *cobra.Command, args []string) error {
	value, _ := c.Flags().GetString(valueFlag)
	cfg := config.Default()
	cfg.Hash, _ = c.Flags().GetString(hashFlag)

	hash, bitSpace, err := cfg.HashFunc()
	if err != nil {
		return err
	}
	h, err := relativity.BinaryRelativity(hash([]byte(value)), bitSpace)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), h.String())
	return nil
}
