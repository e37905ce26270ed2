// Package safeMath implements checked unsigned 256 bit arithmetic over any
// Number implementation. Every rejected operation returns an *ArithError.
package safeMath

import (
	"fmt"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
)

// Number is the arithmetic shared by the variable length and fixed width
// integer types. T is the implementing type itself.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	DivMod(T) (T, T, error)
	Cmp(T) int
	IsZero() bool
	BitLen() int
	Shl(uint) T
	Shr(uint) T
	And(T) T
	Or(T) T
	Xor(T) T
	Sqrt() (T, error)
	Bytes32() ([32]byte, error)
	// Decode32 ignores its receiver and decodes a big-endian slot payload.
	Decode32([32]byte) T
	// Overflowed reports whether the value left the 256 bit range.
	Overflowed() bool
	String() string
}

var (
	_ Number[mpint.Int]       = mpint.Int{}
	_ Number[word256.Word256] = word256.Word256{}
)

var (
	ErrOverflow     = errors.New("overflow")
	ErrUnderflow    = errors.New("underflow")
	ErrDivideByZero = errors.New("division by zero")
)

// ArithError names the operation that was rejected and why.
type ArithError struct {
	Op   string
	Kind error
}

func (e *ArithError) Error() string {
	return fmt.Sprintf("SafeMath: %s %s", e.Op, e.Kind)
}

func (e *ArithError) Unwrap() error {
	return e.Kind
}

func fail[T Number[T]](op string, kind error) (T, error) {
	var zero T
	return zero, &ArithError{Op: op, Kind: kind}
}

// One returns 1 in the representation of T.
func One[T Number[T]]() T {
	var b [32]byte
	b[31] = 1
	var zero T
	return zero.Decode32(b)
}

func Add[T Number[T]](a, b T) (T, error) {
	c := a.Add(b)
	if c.Cmp(a) < 0 || c.Cmp(b) < 0 || c.Overflowed() {
		return fail[T]("addition", ErrOverflow)
	}
	return c, nil
}

func Sub[T Number[T]](a, b T) (T, error) {
	if a.Cmp(b) < 0 {
		return fail[T]("subtraction", ErrUnderflow)
	}
	return a.Sub(b), nil
}

func Mul[T Number[T]](a, b T) (T, error) {
	var zero T
	if a.IsZero() || b.IsZero() {
		return zero, nil
	}
	c := a.Mul(b)
	if c.Overflowed() {
		return fail[T]("multiplication", ErrOverflow)
	}
	if q, _, err := c.DivMod(a); err != nil || q.Cmp(b) != 0 {
		return fail[T]("multiplication", ErrOverflow)
	}
	return c, nil
}

func Div[T Number[T]](a, b T) (T, error) {
	if b.IsZero() {
		return fail[T]("division", ErrDivideByZero)
	}
	q, _, err := a.DivMod(b)
	if err != nil {
		return fail[T]("division", ErrDivideByZero)
	}
	return q, nil
}

func Mod[T Number[T]](a, b T) (T, error) {
	if b.IsZero() {
		return fail[T]("modulo", ErrDivideByZero)
	}
	_, r, err := a.DivMod(b)
	if err != nil {
		return fail[T]("modulo", ErrDivideByZero)
	}
	return r, nil
}

// MulMod returns (a * b) mod m. The product itself must fit in 256 bits.
func MulMod[T Number[T]](a, b, m T) (T, error) {
	if m.IsZero() {
		return fail[T]("modulo", ErrDivideByZero)
	}
	p, err := Mul(a, b)
	if err != nil {
		return p, err
	}
	return Mod(p, m)
}

// Pow returns base^exp by checked square-and-multiply.
func Pow[T Number[T]](base T, exp uint) (T, error) {
	result := One[T]()
	for exp > 0 {
		if exp&1 == 1 {
			r, err := Mul(result, base)
			if err != nil {
				return fail[T]("exponentiation", ErrOverflow)
			}
			result = r
		}
		exp >>= 1
		if exp > 0 {
			b, err := Mul(base, base)
			if err != nil {
				return fail[T]("exponentiation", ErrOverflow)
			}
			base = b
		}
	}
	return result, nil
}

func Inc[T Number[T]](a T) (T, error) {
	r, err := Add(a, One[T]())
	if err != nil {
		return fail[T]("increment", ErrOverflow)
	}
	return r, nil
}

func Dec[T Number[T]](a T) (T, error) {
	r, err := Sub(a, One[T]())
	if err != nil {
		return fail[T]("decrement", ErrUnderflow)
	}
	return r, nil
}

func Sqrt[T Number[T]](a T) (T, error) {
	r, err := a.Sqrt()
	if err != nil {
		return fail[T]("sqrt", err)
	}
	return r, nil
}

func Min[T Number[T]](a, b T) T {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}

func Max[T Number[T]](a, b T) T {
	if a.Cmp(b) > 0 {
		return a
	}
	return b
}

func Shl[T Number[T]](a T, n uint) T { return a.Shl(n) }
func Shr[T Number[T]](a T, n uint) T { return a.Shr(n) }
func And[T Number[T]](a, b T) T      { return a.And(b) }
func Or[T Number[T]](a, b T) T       { return a.Or(b) }
func Xor[T Number[T]](a, b T) T      { return a.Xor(b) }
