package mpint

// addAbs returns |a| + |b| as an unnormalized digit slice.
func addAbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := makeDigits(len(a) + 1)
	var carry uint32
	for i := 0; i < len(b); i++ {
		s := a[i] + b[i] + carry
		out[i] = s & digitMask
		carry = s >> digitBits
	}
	for i := len(b); i < len(a); i++ {
		s := a[i] + carry
		out[i] = s & digitMask
		carry = s >> digitBits
	}
	out[len(a)] = carry
	return out
}

// subAbs returns |a| - |b|. The caller guarantees |a| >= |b|.
func subAbs(a, b []uint32) []uint32 {
	out := makeDigits(len(a))
	var borrow uint32
	for i := 0; i < len(b); i++ {
		s := a[i] - b[i] - borrow
		borrow = s >> 31
		out[i] = s & digitMask
	}
	for i := len(b); i < len(a); i++ {
		s := a[i] - borrow
		borrow = s >> 31
		out[i] = s & digitMask
	}
	return out
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return normalize(addAbs(x.d, y.d), x.neg)
	}
	if cmpAbs(x.d, y.d) >= 0 {
		return normalize(subAbs(x.d, y.d), x.neg)
	}
	return normalize(subAbs(y.d, x.d), y.neg)
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Neg())
}

func (x Int) AddInt(v uint32) Int {
	return x.Add(FromU32(v))
}

func (x Int) SubInt(v uint32) Int {
	return x.Sub(FromU32(v))
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Zero
	}
	return normalize(mulAbs(x.d, y.d), x.neg != y.neg)
}

func mulAbs(a, b []uint32) []uint32 {
	n := len(a) + len(b)
	if n+1 < maxComba && min(len(a), len(b)) < maxComba {
		return mulComba(a, b, n)
	}
	return mulSchoolbook(a, b, n)
}

// mulComba computes the low n digits of a*b one output column at a time.
func mulComba(a, b []uint32, n int) []uint32 {
	out := makeDigits(n)
	var w uint64
	for ix := 0; ix < n; ix++ {
		ty := min(len(b)-1, ix)
		tx := ix - ty
		iy := min(len(a)-tx, ty+1)
		for iz := 0; iz < iy; iz++ {
			w += uint64(a[tx+iz]) * uint64(b[ty-iz])
		}
		out[ix] = uint32(w) & digitMask
		w >>= digitBits
	}
	return out
}

// mulSchoolbook computes the low n digits of a*b row by row.
func mulSchoolbook(a, b []uint32, n int) []uint32 {
	out := makeDigits(n)
	for i := 0; i < len(a); i++ {
		var u uint64
		pb := min(len(b), n-i)
		for j := 0; j < pb; j++ {
			r := uint64(out[i+j]) + uint64(a[i])*uint64(b[j]) + u
			out[i+j] = uint32(r) & digitMask
			u = r >> digitBits
		}
		if i+pb < n {
			out[i+pb] = uint32(u)
		}
	}
	return out
}

// Square returns x * x.
func (x Int) Square() Int {
	if x.IsZero() {
		return Zero
	}
	n := 2 * len(x.d)
	if n+1 < maxComba {
		return normalize(squareComba(x.d, n), false)
	}
	return normalize(squareSchoolbook(x.d, n), false)
}

// squareComba is mulComba with each symmetric cross term computed once and
// doubled.
func squareComba(a []uint32, n int) []uint32 {
	out := makeDigits(n)
	var w uint64
	for ix := 0; ix < n; ix++ {
		ty := min(len(a)-1, ix)
		tx := ix - ty
		iy := min(len(a)-tx, ty+1)
		iy = min(iy, (ty-tx+1)>>1)

		var w1 uint64
		for iz := 0; iz < iy; iz++ {
			w1 += uint64(a[tx+iz]) * uint64(a[ty-iz])
		}
		acc := w + 2*w1
		if ix&1 == 0 {
			acc += uint64(a[ix>>1]) * uint64(a[ix>>1])
		}
		out[ix] = uint32(acc) & digitMask
		w = acc >> digitBits
	}
	return out
}

func squareSchoolbook(a []uint32, n int) []uint32 {
	out := makeDigits(n)
	for ix := 0; ix < len(a); ix++ {
		r := uint64(out[2*ix]) + uint64(a[ix])*uint64(a[ix])
		out[2*ix] = uint32(r) & digitMask
		u := r >> digitBits
		for iy := ix + 1; iy < len(a); iy++ {
			r = 2*uint64(a[ix])*uint64(a[iy]) + uint64(out[ix+iy]) + u
			out[ix+iy] = uint32(r) & digitMask
			u = r >> digitBits
		}
		for k := ix + len(a); u != 0 && k < n; k++ {
			r = uint64(out[k]) + u
			out[k] = uint32(r) & digitMask
			u = r >> digitBits
		}
	}
	return out
}

// MulInt returns x * v.
func (x Int) MulInt(v uint32) Int {
	if v > digitMask {
		return x.Mul(FromU32(v))
	}
	if x.IsZero() || v == 0 {
		return Zero
	}
	out := makeDigits(len(x.d) + 1)
	var u uint64
	for i, d := range x.d {
		r := uint64(d)*uint64(v) + u
		out[i] = uint32(r) & digitMask
		u = r >> digitBits
	}
	out[len(x.d)] = uint32(u)
	return normalize(out, x.neg)
}

// Mul2 returns 2x.
func (x Int) Mul2() Int {
	return x.Lsh(1)
}

// Div2 returns x / 2 truncated toward zero.
func (x Int) Div2() Int {
	return x.DivPowTwo(1)
}

// mulAddSmall sets d = d*m + a in place on a scratch buffer.
func mulAddSmall(d []uint32, m, a uint32) []uint32 {
	u := uint64(a)
	for i := range d {
		r := uint64(d[i])*uint64(m) + u
		d[i] = uint32(r) & digitMask
		u = r >> digitBits
	}
	for u != 0 {
		d = append(d, uint32(u)&digitMask)
		u >>= digitBits
	}
	return d
}

// divSmall sets d = d / v in place on a scratch buffer and returns the
// remainder. v must be non-zero and fit in a digit.
func divSmall(d []uint32, v uint32) ([]uint32, uint32) {
	var r uint64
	for i := len(d) - 1; i >= 0; i-- {
		cur := r<<digitBits | uint64(d[i])
		d[i] = uint32(cur / uint64(v))
		r = cur % uint64(v)
	}
	n := len(d)
	for n > 0 && d[n-1] == 0 {
		n--
	}
	return d[:n], uint32(r)
}
