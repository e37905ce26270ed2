package word256

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// Add returns w + o modulo 2^256.
func (w Word256) Add(o Word256) Word256 {
	var r Word256
	var carry uint64
	for i := 0; i < 4; i++ {
		a, b := w.limbs[i], o.limbs[i]
		sum := a + b + carry
		carry = ((a & b) | ((a | b) &^ sum)) >> 63
		r.limbs[i] = sum
	}
	return r
}

// Sub returns w - o modulo 2^256.
func (w Word256) Sub(o Word256) Word256 {
	var r Word256
	var borrow uint64
	for i := 0; i < 4; i++ {
		a, b := w.limbs[i], o.limbs[i]
		diff := a - b - borrow
		borrow = ((^a & b) | (^(a ^ b) & diff)) >> 63
		r.limbs[i] = diff
	}
	return r
}

// MulFull returns the exact 512 bit product.
func (w Word256) MulFull(o Word256) Word512 {
	var r Word512
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(w.limbs[i], o.limbs[j])
			var c uint64
			lo, c = bits.Add64(lo, r.limbs[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			r.limbs[i+j] = lo
			carry = hi
		}
		r.limbs[i+4] = carry
	}
	return r
}

// Mul returns the low 256 bits of w * o. The result reports Overflow when any
// of the high 256 bits were set.
func (w Word256) Mul(o Word256) Word256 {
	full := w.MulFull(o)
	r := full.Low()
	r.overflow = !full.High().IsZero()
	return r
}

// DivMod returns the quotient and remainder of w / o.
func (w Word256) DivMod(o Word256) (Word256, Word256, error) {
	if o.IsZero() {
		return Zero, Zero, ErrDivideByZero
	}
	switch c := w.Cmp(o); {
	case c < 0:
		return Zero, Word256{limbs: w.limbs}, nil
	case c == 0:
		return One, Zero, nil
	}

	if o.limbs[1]|o.limbs[2]|o.limbs[3] == 0 {
		var q Word256
		var rem uint64
		for i := 3; i >= 0; i-- {
			q.limbs[i], rem = bits.Div64(rem, w.limbs[i], o.limbs[0])
		}
		return q, FromU64(rem), nil
	}

	// shift-subtract over the significant bits of w
	var q, r Word256
	for i := w.BitLen() - 1; i >= 0; i-- {
		top := r.limbs[3] >> 63
		r = r.Lsh(1)
		r.limbs[0] |= (w.limbs[i/64] >> (i % 64)) & 1
		// a set top bit means r exceeded 2^256 and is certainly above o
		if top == 1 || r.Cmp(o) >= 0 {
			r = r.Sub(o)
			q.limbs[i/64] |= 1 << (i % 64)
		}
	}
	return q, r, nil
}

func (w Word256) Div(o Word256) (Word256, error) {
	q, _, err := w.DivMod(o)
	return q, err
}

func (w Word256) Mod(o Word256) (Word256, error) {
	_, r, err := w.DivMod(o)
	return r, err
}

// Sqrt returns floor(sqrt(w)). It never fails.
func (w Word256) Sqrt() (Word256, error) {
	return FromUint256(new(uint256.Int).Sqrt(w.ToUint256())), nil
}

// Lsh returns w << n. Shifts of 256 or more give zero.
func (w Word256) Lsh(n uint) Word256 {
	if n >= 256 {
		return Zero
	}
	var r Word256
	ls, bs := int(n/64), n%64
	for i := 3; i >= ls; i-- {
		v := w.limbs[i-ls] << bs
		if bs > 0 && i-ls-1 >= 0 {
			v |= w.limbs[i-ls-1] >> (64 - bs)
		}
		r.limbs[i] = v
	}
	return r
}

// Rsh returns w >> n. Shifts of 256 or more give zero.
func (w Word256) Rsh(n uint) Word256 {
	if n >= 256 {
		return Zero
	}
	var r Word256
	ls, bs := int(n/64), n%64
	for i := 0; i+ls < 4; i++ {
		v := w.limbs[i+ls] >> bs
		if bs > 0 && i+ls+1 < 4 {
			v |= w.limbs[i+ls+1] << (64 - bs)
		}
		r.limbs[i] = v
	}
	return r
}

func (w Word256) Shl(n uint) Word256 { return w.Lsh(n) }
func (w Word256) Shr(n uint) Word256 { return w.Rsh(n) }

func (w Word256) And(o Word256) Word256 {
	var r Word256
	for i := range r.limbs {
		r.limbs[i] = w.limbs[i] & o.limbs[i]
	}
	return r
}

func (w Word256) Or(o Word256) Word256 {
	var r Word256
	for i := range r.limbs {
		r.limbs[i] = w.limbs[i] | o.limbs[i]
	}
	return r
}

func (w Word256) Xor(o Word256) Word256 {
	var r Word256
	for i := range r.limbs {
		r.limbs[i] = w.limbs[i] ^ o.limbs[i]
	}
	return r
}

func (w Word256) Not() Word256 {
	var r Word256
	for i := range r.limbs {
		r.limbs[i] = ^w.limbs[i]
	}
	return r
}
