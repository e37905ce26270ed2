package cmd

import (
	"fmt"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/Layr-Labs/slotledger/pkg/slots"
	"github.com/Layr-Labs/slotledger/pkg/types/numbers"
	"github.com/spf13/cobra"
)

const decimalsFlag = "decimals"

var scalarCmd = &cobra.Command{
	Use:   "scalar",
	Short: "Checked arithmetic on integer slots",
}

func scalarAt(lg *ledger, pointer, subPointer string) (*slots.ScalarSlot[mpint.Int], error) {
	addr, err := parseAddress(pointer, subPointer)
	if err != nil {
		return nil, err
	}
	return slots.NewScalarSlot(lg.session, addr.Pointer, addr.SubPointer, mpint.Zero), nil
}

var scalarGetCmd = &cobra.Command{
	Use:   "get <pointer> <subpointer>",
	Short: "Print an integer slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		decimals, _ := cmd.Flags().GetInt32(decimalsFlag)
		return withLedger(func(lg *ledger) error {
			s, err := scalarAt(lg, args[0], args[1])
			if err != nil {
				return err
			}
			v, err := s.Value()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), numbers.FormatUnits(v, decimals))
			return nil
		})
	},
}

func scalarMutator(use, short string, op func(s *slots.ScalarSlot[mpint.Int], amount mpint.Int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <pointer> <subpointer> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			decimals, _ := cmd.Flags().GetInt32(decimalsFlag)
			amount, err := numbers.ParseUnits(args[2], decimals)
			if err != nil {
				return err
			}
			return withLedger(func(lg *ledger) error {
				s, err := scalarAt(lg, args[0], args[1])
				if err != nil {
					return err
				}
				if err := op(s, amount); err != nil {
					return err
				}
				v, err := s.Value()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), numbers.FormatUnits(v, decimals))
				return nil
			})
		},
	}
}

var (
	scalarAddCmd = scalarMutator("add", "Add to an integer slot, failing on overflow", (*slots.ScalarSlot[mpint.Int]).Add)
	scalarSubCmd = scalarMutator("sub", "Subtract from an integer slot, failing on underflow", (*slots.ScalarSlot[mpint.Int]).Sub)
)

func init() {
	scalarCmd.PersistentFlags().Int32(decimalsFlag, 0, `Number of fractional digits amounts are expressed in`)
	scalarCmd.AddCommand(scalarGetCmd, scalarAddCmd, scalarSubCmd)
}
