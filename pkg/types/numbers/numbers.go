package numbers

import (
	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FormatUnits renders a raw integer amount as a decimal with the given number
// of fractional digits, e.g. 1500000 with 6 decimals is "1.5".
func FormatUnits(amount mpint.Int, decimals int32) string {
	return decimal.NewFromBigInt(amount.BigInt(), -decimals).String()
}

// ParseUnits is the inverse of FormatUnits. Amounts with more fractional
// digits than decimals are rejected rather than rounded.
func ParseUnits(s string, decimals int32) (mpint.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return mpint.Zero, errors.Wrapf(err, "failed to parse amount '%s'", s)
	}
	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return mpint.Zero, errors.Errorf("amount '%s' has more than %d decimal places", s, decimals)
	}
	return mpint.FromBigInt(shifted.BigInt()), nil
}
