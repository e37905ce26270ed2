package mpint

// Bitwise operators behave as if the operands were two's-complement with
// infinite sign extension. Negative operands are handled through the
// identity -v == ^(v-1), so every case reduces to operations on magnitudes.

func andAbs(a, b []uint32) []uint32 {
	n := min(len(a), len(b))
	out := makeDigits(n)
	for i := 0; i < n; i++ {
		out[i] = a[i] & b[i]
	}
	return out
}

func orAbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := makeDigits(len(a))
	copy(out, a)
	for i := range b {
		out[i] |= b[i]
	}
	return out
}

func xorAbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := makeDigits(len(a))
	copy(out, a)
	for i := range b {
		out[i] ^= b[i]
	}
	return out
}

// andNotAbs returns a &^ b.
func andNotAbs(a, b []uint32) []uint32 {
	out := makeDigits(len(a))
	copy(out, a)
	for i := 0; i < min(len(a), len(b)); i++ {
		out[i] &^= b[i]
	}
	return out
}

// magMinusOne returns |x| - 1 for non-zero x.
func magMinusOne(x Int) []uint32 {
	return normalize(subAbs(x.d, []uint32{1}), false).d
}

// negOf returns -(m + 1).
func negOf(m []uint32) Int {
	return normalize(addAbs(m, []uint32{1}), true)
}

// Not returns ^x, which is -x - 1.
func (x Int) Not() Int {
	if x.neg {
		return normalize(magMinusOne(x), false)
	}
	return negOf(x.d)
}

func (x Int) And(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return normalize(andAbs(x.d, y.d), false)
	case x.neg && y.neg:
		return negOf(normalize(orAbs(magMinusOne(x), magMinusOne(y)), false).d)
	case x.neg:
		x, y = y, x
	}
	return normalize(andNotAbs(x.d, magMinusOne(y)), false)
}

func (x Int) Or(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return normalize(orAbs(x.d, y.d), false)
	case x.neg && y.neg:
		return negOf(normalize(andAbs(magMinusOne(x), magMinusOne(y)), false).d)
	case x.neg:
		x, y = y, x
	}
	return negOf(normalize(andNotAbs(magMinusOne(y), x.d), false).d)
}

func (x Int) Xor(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return normalize(xorAbs(x.d, y.d), false)
	case x.neg && y.neg:
		return normalize(xorAbs(magMinusOne(x), magMinusOne(y)), false)
	case x.neg:
		x, y = y, x
	}
	return negOf(normalize(xorAbs(x.d, magMinusOne(y)), false).d)
}
