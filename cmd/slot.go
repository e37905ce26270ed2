package cmd

import (
	"fmt"

	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/spf13/cobra"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Read and write raw 32 byte slots",
}

var slotGetCmd = &cobra.Command{
	Use:   "get <pointer> <subpointer>",
	Short: "Print a slot as hex",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[0], args[1])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			v, err := lg.session.Get(addr, storage.Slot{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.Hex())
			return nil
		})
	},
}

var slotSetCmd = &cobra.Command{
	Use:   "set <pointer> <subpointer> <value>",
	Short: "Store a 256 bit value, decimal or 0x hex, in a slot",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[0], args[1])
		if err != nil {
			return err
		}
		value, err := parseSlot(args[2])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			return lg.session.Set(addr, value)
		})
	},
}

var slotHasCmd = &cobra.Command{
	Use:   "has <pointer> <subpointer>",
	Short: "Report whether a slot was ever written",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[0], args[1])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			ok, err := lg.session.Has(addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		})
	},
}

func init() {
	slotCmd.AddCommand(slotGetCmd, slotSetCmd, slotHasCmd)
}
