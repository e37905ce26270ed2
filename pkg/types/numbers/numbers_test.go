package numbers

import (
	"testing"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/stretchr/testify/assert"
)

func Test_numbers(t *testing.T) {
	t.Run("Should format raw amounts with decimals", func(t *testing.T) {
		assert.Equal(t, "1.5", FormatUnits(mpint.FromU64(1500000), 6))
		assert.Equal(t, "0.000001", FormatUnits(mpint.One, 6))
		assert.Equal(t, "42", FormatUnits(mpint.FromU32(42), 0))
		assert.Equal(t, "-2.5", FormatUnits(mpint.FromI64(-25), 1))
	})

	t.Run("Should format the largest 256 bit value", func(t *testing.T) {
		assert.Equal(t,
			"115792089237316195423570985008687907853269984665640564039457.584007913129639935",
			FormatUnits(mpint.MaxU256, 18),
		)
	})

	t.Run("Should parse amounts back into raw integers", func(t *testing.T) {
		v, err := ParseUnits("1.5", 6)
		assert.Nil(t, err)
		assert.Equal(t, "1500000", v.String())

		v, err = ParseUnits("13389173346", 18)
		assert.Nil(t, err)
		assert.Equal(t, "13389173346000000000000000000", v.String())
	})

	t.Run("Should reject amounts that need rounding", func(t *testing.T) {
		_, err := ParseUnits("0.0000001", 6)
		assert.NotNil(t, err)

		_, err = ParseUnits("abc", 6)
		assert.NotNil(t, err)
	})
}
