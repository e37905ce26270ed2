package cmd

import (
	"fmt"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/Layr-Labs/slotledger/pkg/slots"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

const prefixFlag = "prefix"

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Read and write keyed integer maps",
	Long: `Keys that look like addresses are keyed by address, anything else by its text.
Two keys address a compound map, e.g. an allowance per owner and spender.`,
}

// rawKey picks the key form a command line argument stands for.
type rawKey string

func (k rawKey) KeyBytes() []byte {
	if common.IsHexAddress(string(k)) {
		return slots.AddressKeyFromHex(string(k)).KeyBytes()
	}
	return slots.StringKey(k).KeyBytes()
}

// resolveMapAddress returns the slot behind one or two keys.
func resolveMapAddress(lg *ledger, pointer uint16, prefix string, keys []string) storage.SlotAddress {
	if len(keys) == 1 {
		return slots.NewKeyedSlotMap[rawKey](lg.session, pointer, prefix, mpint.Zero, lg.hasher).Address(rawKey(keys[0]))
	}
	return slots.NewCompoundKeyedSlotMap[rawKey, rawKey](lg.session, pointer, prefix, mpint.Zero, lg.hasher).
		Address(rawKey(keys[0]), rawKey(keys[1]))
}

var mapGetCmd = &cobra.Command{
	Use:   "get <pointer> <key> [key2]",
	Short: "Print the value stored under a key",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pointer, err := parsePointer(args[0])
		if err != nil {
			return err
		}
		prefix, _ := cmd.Flags().GetString(prefixFlag)
		return withLedger(func(lg *ledger) error {
			addr := resolveMapAddress(lg, pointer, prefix, args[1:])
			v, err := slots.NewScalarSlot(lg.session, addr.Pointer, addr.SubPointer, mpint.Zero).Value()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", addr, v)
			return nil
		})
	},
}

var mapSetCmd = &cobra.Command{
	Use:   "set <pointer> <key> [key2] <value>",
	Short: "Store a value under a key",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		pointer, err := parsePointer(args[0])
		if err != nil {
			return err
		}
		value, err := mpint.FromString(args[len(args)-1], 10)
		if err != nil {
			return err
		}
		prefix, _ := cmd.Flags().GetString(prefixFlag)
		return withLedger(func(lg *ledger) error {
			addr := resolveMapAddress(lg, pointer, prefix, args[1:len(args)-1])
			return slots.NewScalarSlot(lg.session, addr.Pointer, addr.SubPointer, mpint.Zero).Set(value)
		})
	},
}

func init() {
	mapCmd.PersistentFlags().String(prefixFlag, "", `Constant prefix that separates maps sharing a pointer`)
	mapCmd.AddCommand(mapGetCmd, mapSetCmd)
}
