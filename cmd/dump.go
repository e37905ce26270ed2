package cmd

import (
	"fmt"

	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/storage/stateRoot"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write every stored slot as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(lg *ledger) error {
			rows := make([]*storage.SlotRow, 0)
			err := lg.backend.Iterate(func(addr storage.SlotAddress, value storage.Slot) error {
				rows = append(rows, storage.NewSlotRow(addr, value))
				return nil
			})
			if err != nil {
				return err
			}
			return gocsv.Marshal(rows, cmd.OutOrStdout())
		})
	},
}

var stateRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the merkle root committing to every non-zero slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(lg *ledger) error {
			root, err := stateRoot.GenerateStateRoot(lg.backend, lg.logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		})
	},
}
