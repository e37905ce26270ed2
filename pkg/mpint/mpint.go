// Package mpint implements arbitrary precision signed integers stored in
// sign-magnitude form.
//
// The magnitude is a little-endian sequence of base 2^28 digits. Using 28 of
// the 32 available bits per digit leaves enough headroom that digit products
// and carries can be accumulated in a uint64 without overflow. The number of
// used digits is the slice length; the slice capacity is the allocation.
//
// Values are immutable: every operation returns a new Int and never writes to
// the digits of its operands. Scratch buffers owned by a single operation may
// be mutated in place.
package mpint

const (
	digitBits = 28
	digitMask = uint32(1)<<digitBits - 1

	// maxComba bounds the column height of a Comba multiplication so that the
	// accumulated uint64 column never overflows: 2^(64 - 2*digitBits).
	maxComba = 256

	// precision is the allocation granularity in digits (fits 280 bit integers).
	precision = 10
)

// Int is an arbitrary precision signed integer. The zero value is 0.
type Int struct {
	d   []uint32
	neg bool
}

var (
	Zero    = Int{}
	One     = FromU64(1)
	NegOne  = One.Neg()
	MaxU256 = FromBytes([]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}, true)

	// maxSafeFloat is the largest integer a float64 represents exactly.
	maxSafeFloat = FromU64(1<<53 - 1)
)

// makeDigits returns a zeroed digit slice of length n whose capacity is
// rounded up to the allocation granularity.
func makeDigits(n int) []uint32 {
	size := n
	if extra := size % precision; extra != 0 || size == 0 {
		size += precision - extra
	}
	return make([]uint32, n, size)
}

// normalize trims most significant zero digits and forces zero to be
// non-negative.
func normalize(d []uint32, neg bool) Int {
	n := len(d)
	for n > 0 && d[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Int{}
	}
	return Int{d: d[:n], neg: neg}
}

func FromU16(v uint16) Int {
	return FromU64(uint64(v))
}

func FromU32(v uint32) Int {
	return FromU64(uint64(v))
}

func FromU64(v uint64) Int {
	d := makeDigits(0)
	for v != 0 {
		d = append(d, uint32(v)&digitMask)
		v >>= digitBits
	}
	return normalize(d, false)
}

func FromI16(v int16) Int {
	return FromI64(int64(v))
}

func FromI32(v int32) Int {
	return FromI64(int64(v))
}

func FromI64(v int64) Int {
	if v >= 0 {
		return FromU64(uint64(v))
	}
	// -(v+1)+1 keeps math.MinInt64 representable.
	m := uint64(-(v + 1)) + 1
	r := FromU64(m)
	r.neg = true
	return r
}

// FromBytes builds a non-negative Int from raw magnitude bytes.
func FromBytes(b []byte, bigEndian bool) Int {
	d := makeDigits(0)
	var acc uint64
	var bits uint
	for i := 0; i < len(b); i++ {
		c := b[i]
		if bigEndian {
			c = b[len(b)-1-i]
		}
		acc |= uint64(c) << bits
		bits += 8
		for bits >= digitBits {
			d = append(d, uint32(acc)&digitMask)
			acc >>= digitBits
			bits -= digitBits
		}
	}
	if bits > 0 {
		d = append(d, uint32(acc)&digitMask)
	}
	return normalize(d, false)
}

func FromBytesBE(b []byte) Int {
	return FromBytes(b, true)
}

func FromBytesLE(b []byte) Int {
	return FromBytes(b, false)
}

// FromBytes32 decodes a big-endian 32 byte slot payload.
func FromBytes32(b [32]byte) Int {
	return FromBytes(b[:], true)
}

// Decode32 is FromBytes32 in method form; the receiver only selects the type.
func (x Int) Decode32(b [32]byte) Int {
	return FromBytes32(b)
}

func (x Int) clone() []uint32 {
	d := makeDigits(len(x.d))
	copy(d, x.d)
	return d
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{d: x.d}
}

// Neg returns -x. Zero stays non-negative.
func (x Int) Neg() Int {
	if len(x.d) == 0 {
		return x
	}
	return Int{d: x.d, neg: !x.neg}
}

func (x Int) IsZero() bool {
	return len(x.d) == 0
}

func (x Int) IsNeg() bool {
	return x.neg
}

func (x Int) IsOdd() bool {
	return len(x.d) > 0 && x.d[0]&1 == 1
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	switch {
	case len(x.d) == 0:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// BitLen returns the number of bits in |x|.
func (x Int) BitLen() int {
	n := len(x.d)
	if n == 0 {
		return 0
	}
	bits := (n - 1) * digitBits
	for q := x.d[n-1]; q > 0; q >>= 1 {
		bits++
	}
	return bits
}

// Digits returns the number of used base 2^28 digits.
func (x Int) Digits() int {
	return len(x.d)
}

func (x Int) Bool() bool {
	return !x.IsZero()
}
