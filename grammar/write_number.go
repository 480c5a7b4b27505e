package grammar

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-waml/codec"
)

// FormatFloat returns the shortest literal that reads back as f at the
// given bit size. The literal always carries a '.' or an exponent so that
// it reads back as a decimal.
func FormatFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("cannot write non-finite number %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s, nil
}

// WriteFloat returns a writer for the literal of f.
func WriteFloat(f float64, bits int) codec.Writer {
	s, err := FormatFloat(f, bits)
	if err != nil {
		return codec.WriteFail(err)
	}
	return Literal(s)
}

// WriteInteger returns a writer for the decimal literal of n.
func WriteInteger(n int64) codec.Writer {
	return Literal(strconv.FormatInt(n, 10))
}

// WriteUnsigned returns a writer for the decimal literal of n.
func WriteUnsigned(n uint64) codec.Writer {
	return Literal(strconv.FormatUint(n, 10))
}

// WriteHex returns a writer for the hexadecimal literal of the low bits of
// n, padded to bits/4 digits.
func WriteHex(n uint64, bits int) codec.Writer {
	return Literal(fmt.Sprintf("0x%0*x", bits/4, n))
}
