package internal

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// EscapeNonASCII rewrites every rune above 0x7F in already-encoded JSON as a
// \uXXXX escape, using surrogate pairs outside the BMP. JSON syntax is pure
// ASCII, so non-ASCII bytes only ever occur inside string literals and the
// rewrite keeps the document valid.
func EscapeNonASCII(data []byte) []byte {
	ascii := true
	for _, b := range data {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return data
	}

	out := make([]byte, 0, len(data)+len(data)/2)
	for i := 0; i < len(data); {
		b := data[i]
		if b < utf8.RuneSelf {
			out = append(out, b)
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		i += size
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			out = appendUnicodeEscape(out, r1)
			out = appendUnicodeEscape(out, r2)
			continue
		}
		out = appendUnicodeEscape(out, r)
	}
	return out
}

func appendUnicodeEscape(out []byte, r rune) []byte {
	out = append(out, '\\', 'u')
	hex := strconv.FormatInt(int64(r), 16)
	for pad := len(hex); pad < 4; pad++ {
		out = append(out, '0')
	}
	return append(out, hex...)
}
