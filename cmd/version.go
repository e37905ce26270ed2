package cmd

import (
	"fmt"

	"github.com/Layr-Labs/slotledger/internal/version"
	"github.com/spf13/cobra"
)

var runVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of slotledger",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "SlotledgerVersion: %s\nCommit: %s\n", version.GetVersion(), version.GetCommit())
	},
}
