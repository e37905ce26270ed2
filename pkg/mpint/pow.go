package mpint

import "math"

// Pow returns x^k by square-and-multiply.
func (x Int) Pow(k int) (Int, error) {
	if k < 0 {
		return Zero, ErrNegativeExponent
	}
	result := One
	base := x
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base = base.Square()
		}
	}
	return result, nil
}

// Sqrt returns floor(sqrt(x)).
func (x Int) Sqrt() (Int, error) {
	if x.neg {
		return Zero, ErrNegativeSqrt
	}
	if x.IsZero() {
		return Zero, nil
	}
	if x.Lte(maxSafeFloat) {
		v := x.low64()
		r := uint64(math.Sqrt(float64(v)))
		// float rounding can land one off near perfect squares
		for r*r > v {
			r--
		}
		for (r+1)*(r+1) <= v {
			r++
		}
		return FromU64(r), nil
	}

	// Newton-Raphson from a power of two that is never below the root.
	z := One.Lsh((x.BitLen() + 1) / 2)
	for {
		q, _, _ := x.DivMod(z)
		y := z.Add(q).Rsh(1)
		if y.Gte(z) {
			return z, nil
		}
		z = y
	}
}
