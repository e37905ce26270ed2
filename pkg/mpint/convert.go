package mpint

import "math/big"

// low64 returns the low 64 bits of |x|.
func (x Int) low64() uint64 {
	var v uint64
	for i := min(len(x.d), 3) - 1; i >= 0; i-- {
		v = v<<digitBits | uint64(x.d[i])
	}
	return v
}

func (x Int) ToU32() (uint32, error) {
	if x.neg {
		return 0, &NarrowingError{Target: "u32", Negative: true}
	}
	if b := x.BitLen(); b > 32 {
		return 0, &NarrowingError{Target: "u32", Bits: b}
	}
	return uint32(x.low64()), nil
}

func (x Int) ToU64() (uint64, error) {
	if x.neg {
		return 0, &NarrowingError{Target: "u64", Negative: true}
	}
	if b := x.BitLen(); b > 64 {
		return 0, &NarrowingError{Target: "u64", Bits: b}
	}
	return x.low64(), nil
}

func (x Int) ToI32() (int32, error) {
	v, err := x.toSigned(32, "i32")
	return int32(v), err
}

func (x Int) ToI64() (int64, error) {
	return x.toSigned(64, "i64")
}

// toSigned accepts magnitudes up to 2^(width-1)-1, or exactly 2^(width-1)
// for negative values.
func (x Int) toSigned(width int, target string) (int64, error) {
	b := x.BitLen()
	fits := b < width || (x.neg && b == width && x.Eq(One.Lsh(width-1).Neg()))
	if !fits {
		return 0, &NarrowingError{Target: target, Bits: b}
	}
	m := x.low64()
	if x.neg {
		return -int64(m-1) - 1, nil
	}
	return int64(m), nil
}

// Bytes returns the magnitude as raw bytes. With pad32 the result is zero
// padded to at least 32 bytes on the most significant side.
func (x Int) Bytes(bigEndian, pad32 bool) []byte {
	n := (x.BitLen() + 7) / 8
	size := n
	if pad32 && size < 32 {
		size = 32
	}
	out := make([]byte, size)
	var acc uint64
	var have uint
	di := 0
	for i := 0; i < n; i++ {
		for have < 8 && di < len(x.d) {
			acc |= uint64(x.d[di]) << have
			have += digitBits
			di++
		}
		b := byte(acc)
		acc >>= 8
		have -= min(have, 8)
		if bigEndian {
			out[size-1-i] = b
		} else {
			out[i] = b
		}
	}
	return out
}

// Bytes32 encodes x as a 32 byte big-endian slot payload.
func (x Int) Bytes32() ([32]byte, error) {
	var out [32]byte
	if x.neg {
		return out, &NarrowingError{Target: "uint256", Negative: true}
	}
	if b := x.BitLen(); b > 256 {
		return out, &NarrowingError{Target: "uint256", Bits: b}
	}
	copy(out[:], x.Bytes(true, true))
	return out, nil
}

// Overflowed reports whether x no longer fits in 256 bits.
func (x Int) Overflowed() bool {
	return x.BitLen() > 256
}

func (x Int) BigInt() *big.Int {
	r := new(big.Int).SetBytes(x.Bytes(true, false))
	if x.neg {
		r.Neg(r)
	}
	return r
}

func FromBigInt(b *big.Int) Int {
	r := FromBytesBE(b.Bytes())
	if b.Sign() < 0 {
		r = r.Neg()
	}
	return r
}
