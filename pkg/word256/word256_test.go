package word256

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var two256 = new(big.Int).Lsh(big.NewInt(1), 256)

func toBig(w Word256) *big.Int {
	b, _ := w.Bytes32()
	return new(big.Int).SetBytes(b[:])
}

func randomWords(n int) []Word256 {
	r := rand.New(rand.NewSource(11))
	out := []Word256{Zero, One, Max, FromU64(^uint64(0)), FromLimbs(0, 1, 0, 0), FromLimbs(0, 0, 0, 1<<63)}
	for i := 0; i < n; i++ {
		w := FromLimbs(r.Uint64(), r.Uint64(), r.Uint64(), r.Uint64())
		out = append(out, w.Rsh(uint(r.Intn(256))))
	}
	return out
}

func Test_Word256(t *testing.T) {
	words := randomWords(40)

	t.Run("Should flag the overflow of (2^128-1)^2", func(t *testing.T) {
		a := FromLimbs(^uint64(0), ^uint64(0), 0, 0)
		p := a.Mul(a)
		assert.False(t, p.Overflow())

		big128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
		want := new(big.Int).Mul(big128, big128)
		assert.Equal(t, want.String(), toBig(p).String())

		b := FromLimbs(0, 0, ^uint64(0), ^uint64(0))
		q := b.Mul(b)
		assert.True(t, q.Overflow())
		wantLow := new(big.Int).Mul(toBig(b), toBig(b))
		wantLow.Mod(wantLow, two256)
		assert.Equal(t, wantLow.String(), q.String())
	})

	t.Run("Should match math/big modulo 2^256", func(t *testing.T) {
		for _, a := range words {
			for _, b := range words {
				x, y := toBig(a), toBig(b)

				sum := new(big.Int).Add(x, y)
				assert.Equal(t, sum.Mod(sum, two256).String(), a.Add(b).String())

				diff := new(big.Int).Sub(x, y)
				assert.Equal(t, diff.Mod(diff, two256).String(), a.Sub(b).String())

				prod := new(big.Int).Mul(x, y)
				full := a.MulFull(b)
				assert.Equal(t, prod.String(), full.String())
				assert.Equal(t, prod.BitLen() > 256, a.Mul(b).Overflow())
				assert.Equal(t, new(big.Int).Mod(prod, two256).String(), a.Mul(b).String())
				assert.True(t, full.Low().Eq(a.Mul(b)))
			}
		}
	})

	t.Run("Should agree with holiman/uint256", func(t *testing.T) {
		for _, a := range words {
			for _, b := range words {
				ua, ub := a.ToUint256(), b.ToUint256()
				assert.Equal(t, new(uint256.Int).Add(ua, ub).Dec(), a.Add(b).String())
				assert.Equal(t, new(uint256.Int).Sub(ua, ub).Dec(), a.Sub(b).String())
				assert.Equal(t, new(uint256.Int).Mul(ua, ub).Dec(), a.Mul(b).String())
				if !b.IsZero() {
					q, r, err := a.DivMod(b)
					require.NoError(t, err)
					assert.Equal(t, new(uint256.Int).Div(ua, ub).Dec(), q.String())
					assert.Equal(t, new(uint256.Int).Mod(ua, ub).Dec(), r.String())
				}
			}
		}
	})

	t.Run("Should satisfy the division identity", func(t *testing.T) {
		for _, a := range words {
			for _, b := range words {
				q, r, err := a.DivMod(b)
				if b.IsZero() {
					assert.True(t, errors.Is(err, ErrDivideByZero))
					continue
				}
				require.NoError(t, err)
				assert.True(t, q.Mul(b).Add(r).Eq(a))
				assert.True(t, r.Lt(b))
			}
		}
		_, err := One.Div(Zero)
		assert.True(t, errors.Is(err, ErrDivideByZero))
		_, err = One.Mod(Zero)
		assert.True(t, errors.Is(err, ErrDivideByZero))
	})

	t.Run("Should divide when the divisor has its top bit set", func(t *testing.T) {
		d := FromLimbs(1, 0, 0, 1<<63)
		q, r, err := Max.DivMod(d)
		require.NoError(t, err)
		assert.Equal(t, "1", q.String())
		assert.True(t, r.Eq(Max.Sub(d)))
	})

	t.Run("Should shift across limbs", func(t *testing.T) {
		for _, a := range words {
			x := toBig(a)
			for _, n := range []uint{0, 1, 63, 64, 65, 128, 200, 255, 256, 300} {
				l := new(big.Int).Lsh(x, n)
				assert.Equal(t, l.Mod(l, two256).String(), a.Lsh(n).String())
				assert.Equal(t, new(big.Int).Rsh(x, n).String(), a.Rsh(n).String())
			}
		}
		assert.True(t, Max.Lsh(256).IsZero())
		assert.True(t, Max.Rsh(256).IsZero())
	})

	t.Run("Should apply bitwise operators", func(t *testing.T) {
		for _, a := range words {
			for _, b := range words {
				x, y := toBig(a), toBig(b)
				assert.Equal(t, new(big.Int).And(x, y).String(), a.And(b).String())
				assert.Equal(t, new(big.Int).Or(x, y).String(), a.Or(b).String())
				assert.Equal(t, new(big.Int).Xor(x, y).String(), a.Xor(b).String())
			}
			assert.True(t, a.Not().Xor(a).Eq(Max))
		}
	})

	t.Run("Should round trip bytes and conversions", func(t *testing.T) {
		for _, a := range words {
			b, err := a.Bytes32()
			require.NoError(t, err)
			assert.True(t, FromBytes32(b).Eq(a))
			assert.True(t, Zero.Decode32(b).Eq(a))
			assert.True(t, FromBytes(b[:], true).Eq(a))

			le := make([]byte, 32)
			for i := range b {
				le[i] = b[31-i]
			}
			assert.True(t, FromBytes(le, false).Eq(a))

			assert.True(t, FromUint256(a.ToUint256()).Eq(a))

			m, err := FromMPInt(a.MPInt())
			require.NoError(t, err)
			assert.True(t, m.Eq(a))
			assert.Equal(t, a.String(), a.MPInt().String())

			d, err := FromDecimal(a.String())
			require.NoError(t, err)
			assert.True(t, d.Eq(a))
			assert.Equal(t, toBig(a).BitLen(), a.BitLen())
		}
		assert.Equal(t, "0xff", FromU64(255).Hex())
	})

	t.Run("Should reject values that do not fit", func(t *testing.T) {
		_, err := FromMPInt(mpint.MaxU256.Add(mpint.One))
		assert.True(t, errors.Is(err, mpint.ErrNarrowing))
		_, err = FromMPInt(mpint.NegOne)
		assert.True(t, errors.Is(err, mpint.ErrNarrowing))
		_, err = FromDecimal("not a number")
		assert.Error(t, err)
	})

	t.Run("Should take floor square roots", func(t *testing.T) {
		for _, a := range words {
			s, err := a.Sqrt()
			require.NoError(t, err)
			assert.Equal(t, new(big.Int).Sqrt(toBig(a)).String(), s.String())
		}
	})

	t.Run("Should never alias results", func(t *testing.T) {
		a := FromU64(7)
		b := a
		b = b.Add(One)
		assert.Equal(t, "7", a.String())
		assert.Equal(t, "8", b.String())
	})

	t.Run("Should expose the halves of a 512 bit product", func(t *testing.T) {
		full := Max.MulFull(Max)
		assert.Equal(t, "1", full.Low().String())
		assert.True(t, full.High().Eq(Max.Sub(One)))
		assert.False(t, full.IsZero())
		assert.True(t, Zero.MulFull(Max).IsZero())
		b := full.Bytes64()
		assert.Equal(t, byte(0xff), b[0])
		assert.Equal(t, byte(0x01), b[63])
		assert.Equal(t, full.Limbs()[0], uint64(1))
	})
}
