package generator

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrUnknownEncoding is returned for an Encoding value Token does not support.
var ErrUnknownEncoding = errors.New("unknown token encoding")

// Encoding selects how Token renders its random bytes.
type Encoding int

const (
	// Hex renders two lowercase hexadecimal digits per byte.
	Hex Encoding = iota
	// Base64 renders standard padded base64.
	Base64
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case Hex:
		return "hex"
	case Base64:
		return "base64"
	default:
		return "unknown"
	}
}

// BitsPerByte is the entropy contributed by each random byte of a token.
const BitsPerByte = 8

// ValidateToken checks that Token can draw byteCount bytes.
func ValidateToken(byteCount int) error {
	if byteCount <= 0 || byteCount > MaxLength {
		return fmt.Errorf("%w: got %d bytes, maximum is %d", ErrInvalidLength, byteCount, MaxLength)
	}
	return nil
}

// Token draws byteCount uniform bytes and encodes them.
// Every byte comes from Source.IntN(256), so tokens are reproducible with a
// seeded Source just like passwords.
func Token(src Source, enc Encoding, byteCount int) (string, error) {
	if enc != Hex && enc != Base64 {
		return "", fmt.Errorf("%w: %d", ErrUnknownEncoding, int(enc))
	}
	if err := ValidateToken(byteCount); err != nil {
		return "", err
	}

	buf := make([]byte, byteCount)
	for i := range buf {
		buf[i] = byte(src.IntN(256))
	}

	if enc == Hex {
		return hex.EncodeToString(buf), nil
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
