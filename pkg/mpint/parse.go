package mpint

import (
	"strings"

	"github.com/pkg/errors"
)

const digitChars = "0123456789abcdef"

func digitValue(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// FromString parses s in the given radix (2 through 16). A leading '-' makes
// the value negative. A "0x" prefix switches to radix 16 when the requested
// radix is 10 or 16.
func FromString(s string, radix int) (Int, error) {
	if radix < 2 || radix > 16 {
		return Zero, errors.Wrapf(ErrUnsupportedRadix, "radix %d", radix)
	}
	body := s
	neg := strings.HasPrefix(body, "-")
	if neg {
		body = body[1:]
	}
	if (radix == 10 || radix == 16) && (strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X")) {
		radix = 16
		body = body[2:]
	}
	if body == "" {
		return Zero, errors.Wrapf(ErrInvalidDigit, "no digits in %q", s)
	}

	d := makeDigits(0)
	for i := 0; i < len(body); i++ {
		v, ok := digitValue(body[i])
		if !ok || v >= uint32(radix) {
			return Zero, errors.Wrapf(ErrInvalidDigit, "%q at offset %d of %q", body[i], i, s)
		}
		d = mulAddSmall(d, uint32(radix), v)
	}
	return normalize(d, neg), nil
}

// MustFromString is FromString for constants; it panics on malformed input.
func MustFromString(s string, radix int) Int {
	v, err := FromString(s, radix)
	if err != nil {
		panic(err)
	}
	return v
}

// Text returns x in the given radix (2 through 16) with lowercase digits.
func (x Int) Text(radix int) (string, error) {
	if radix < 2 || radix > 16 {
		return "", errors.Wrapf(ErrUnsupportedRadix, "radix %d", radix)
	}
	if x.IsZero() {
		return "0", nil
	}
	var out []byte
	d := x.clone()
	var r uint32
	for len(d) > 0 {
		d, r = divSmall(d, uint32(radix))
		out = append(out, digitChars[r])
	}
	if x.neg {
		out = append(out, '-')
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func (x Int) String() string {
	s, _ := x.Text(10)
	return s
}
