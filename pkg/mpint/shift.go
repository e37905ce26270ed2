package mpint

// Lsh returns x * 2^k. A negative k shifts right.
func (x Int) Lsh(k int) Int {
	if k < 0 {
		return x.Rsh(-k)
	}
	if x.IsZero() || k == 0 {
		return x
	}
	ds, bs := k/digitBits, uint(k%digitBits)
	out := makeDigits(len(x.d) + ds + 1)
	for i, d := range x.d {
		v := uint64(d) << bs
		out[i+ds] |= uint32(v) & digitMask
		out[i+ds+1] |= uint32(v >> digitBits)
	}
	return normalize(out, x.neg)
}

// Rsh returns floor(x / 2^k); negative values round toward negative infinity
// like an arithmetic shift. A negative k shifts left.
func (x Int) Rsh(k int) Int {
	if k < 0 {
		return x.Lsh(-k)
	}
	if x.IsZero() || k == 0 {
		return x
	}
	d, lost := rshAbs(x.d, k)
	r := normalize(d, x.neg)
	if x.neg && lost {
		r = normalize(addAbs(d, []uint32{1}), true)
	}
	return r
}

// rshAbs shifts a magnitude right and reports whether any set bit fell off.
func rshAbs(a []uint32, k int) ([]uint32, bool) {
	ds, bs := k/digitBits, uint(k%digitBits)
	if ds >= len(a) {
		return nil, len(a) > 0
	}
	lost := a[ds]&(uint32(1)<<bs-1) != 0
	for i := 0; i < ds && !lost; i++ {
		lost = a[i] != 0
	}
	out := makeDigits(len(a) - ds)
	for i := range out {
		v := a[i+ds] >> bs
		if bs > 0 && i+ds+1 < len(a) {
			v |= a[i+ds+1] << (digitBits - bs)
		}
		out[i] = v & digitMask
	}
	return out, lost
}

// MulPowTwo returns x * 2^k.
func (x Int) MulPowTwo(k uint) Int {
	return x.Lsh(int(k))
}

// DivPowTwo returns x / 2^k truncated toward zero.
func (x Int) DivPowTwo(k uint) Int {
	d, _ := rshAbs(x.d, int(k))
	return normalize(d, x.neg)
}

// ModPowTwo returns the low k bits of |x| with the sign of x.
func (x Int) ModPowTwo(k uint) Int {
	if x.IsZero() || k == 0 {
		return Zero
	}
	if int(k) >= x.BitLen() {
		return x
	}
	n := int(k+digitBits-1) / digitBits
	out := makeDigits(n)
	copy(out, x.d[:n])
	if rem := k % digitBits; rem != 0 {
		out[n-1] &= uint32(1)<<rem - 1
	}
	return normalize(out, x.neg)
}

// Shl is Lsh for unsigned shift counts.
func (x Int) Shl(n uint) Int {
	return x.Lsh(int(n))
}

// Shr is Rsh for unsigned shift counts.
func (x Int) Shr(n uint) Int {
	return x.Rsh(int(n))
}
