package mpint

import (
	"math/bits"

	"github.com/pkg/errors"
)

// divModAbs divides magnitudes. Operands are bounded to a few hundred bits in
// practice, so the quotient is produced one bit at a time by restoring
// division. Swap this function out for a faster algorithm if that changes.
func divModAbs(a, b []uint32) (q, r []uint32) {
	switch c := cmpAbs(a, b); {
	case c < 0:
		r = makeDigits(len(a))
		copy(r, a)
		return nil, r
	case c == 0:
		return []uint32{1}, nil
	}

	q = makeDigits(len(a))
	r = makeDigits(0)
	for i := (Int{d: a}).BitLen() - 1; i >= 0; i-- {
		bit := (a[i/digitBits] >> (i % digitBits)) & 1
		r = shlOr(r, bit)
		if cmpAbs(r, b) >= 0 {
			r = subInPlace(r, b)
			q[i/digitBits] |= 1 << (i % digitBits)
		}
	}
	return q, r
}

// shlOr sets r = r<<1 | bit in place on a normalized scratch buffer.
func shlOr(r []uint32, bit uint32) []uint32 {
	carry := bit
	for i := range r {
		next := r[i] >> (digitBits - 1)
		r[i] = (r[i]<<1 | carry) & digitMask
		carry = next
	}
	if carry != 0 {
		r = append(r, carry)
	}
	return r
}

// subInPlace sets r = r - b for |r| >= |b| and trims the result.
func subInPlace(r, b []uint32) []uint32 {
	var borrow uint32
	for i := range r {
		s := r[i] - borrow
		if i < len(b) {
			s -= b[i]
		}
		borrow = s >> 31
		r[i] = s & digitMask
	}
	n := len(r)
	for n > 0 && r[n-1] == 0 {
		n--
	}
	return r[:n]
}

// DivMod returns the quotient truncated toward zero and the remainder, which
// takes the sign of x.
func (x Int) DivMod(y Int) (Int, Int, error) {
	if y.IsZero() {
		return Zero, Zero, ErrDivideByZero
	}
	q, r := divModAbs(x.d, y.d)
	return normalize(q, x.neg != y.neg), normalize(r, x.neg), nil
}

func (x Int) Div(y Int) (Int, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

func (x Int) Mod(y Int) (Int, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// DivModInt divides by a single word. The quotient truncates toward zero and
// keeps the sign of x; the remainder is |x| mod v.
func (x Int) DivModInt(v uint32) (Int, uint32, error) {
	if v == 0 {
		return Zero, 0, ErrDivideByZero
	}
	if v > digitMask {
		q, r, err := x.Abs().DivMod(FromU32(v))
		if err != nil {
			return Zero, 0, err
		}
		rv, err := r.ToU32()
		if err != nil {
			return Zero, 0, errors.Wrap(err, "remainder")
		}
		if x.neg {
			q = q.Neg()
		}
		return q, rv, nil
	}
	if v&(v-1) == 0 {
		k := bits.TrailingZeros32(v)
		var r uint32
		if len(x.d) > 0 {
			r = x.d[0] & (v - 1)
		}
		return x.DivPowTwo(uint(k)), r, nil
	}
	q, r := divSmall(x.clone(), v)
	return normalize(q, x.neg), r, nil
}

func (x Int) DivInt(v uint32) (Int, error) {
	q, _, err := x.DivModInt(v)
	return q, err
}

func (x Int) ModInt(v uint32) (uint32, error) {
	_, r, err := x.DivModInt(v)
	return r, err
}

// RoundedDiv returns x / y rounded to the nearest integer, halves away from
// zero.
func (x Int) RoundedDiv(y Int) (Int, error) {
	q, r, err := x.DivMod(y)
	if err != nil {
		return Zero, err
	}
	if r.IsZero() || r.Abs().Mul2().CmpAbs(y) < 0 {
		return q, nil
	}
	if x.neg != y.neg {
		return q.Sub(One), nil
	}
	return q.Add(One), nil
}

func (x Int) RoundedDivInt(v uint32) (Int, error) {
	return x.RoundedDiv(FromU32(v))
}
