package mpint

// cmpAbs compares magnitudes: digit count first, then the most significant
// differing digit.
func cmpAbs(a, b []uint32) int {
	if len(a) > len(b) {
		return 1
	}
	if len(a) < len(b) {
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CmpAbs compares |x| and |y|.
func (x Int) CmpAbs(y Int) int {
	return cmpAbs(x.d, y.d)
}

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return cmpAbs(y.d, x.d)
	default:
		return cmpAbs(x.d, y.d)
	}
}

func (x Int) Eq(y Int) bool  { return x.Cmp(y) == 0 }
func (x Int) Ne(y Int) bool  { return x.Cmp(y) != 0 }
func (x Int) Lt(y Int) bool  { return x.Cmp(y) < 0 }
func (x Int) Lte(y Int) bool { return x.Cmp(y) <= 0 }
func (x Int) Gt(y Int) bool  { return x.Cmp(y) > 0 }
func (x Int) Gte(y Int) bool { return x.Cmp(y) >= 0 }
