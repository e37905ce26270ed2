package cmd

import (
	"fmt"

	"github.com/Layr-Labs/slotledger/pkg/slots"
	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Read and write text slots",
}

var textGetCmd = &cobra.Command{
	Use:   "get <pointer> <subpointer>",
	Short: "Print a text slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[0], args[1])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			v, err := slots.NewTextSlot(lg.session, addr.Pointer, addr.SubPointer, "").Value()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

var textSetCmd = &cobra.Command{
	Use:   "set <pointer> <subpointer> <text>",
	Short: "Store up to 2048 bytes of text",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddress(args[0], args[1])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			return slots.NewTextSlot(lg.session, addr.Pointer, addr.SubPointer, "").Set(args[2])
		})
	},
}

func init() {
	textCmd.AddCommand(textGetCmd, textSetCmd)
}
