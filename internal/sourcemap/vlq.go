// Package sourcemap builds Source Map v3 files that map shaken output back
// to the lines of the original source.
//
// The format is specified at https://sourcemaps.info/spec.html
package sourcemap

import "strings"

// Base64 alphabet used for VLQ encoding in source maps
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// VLQ constants
const (
	vlqBaseShift       = 5
	vlqBase            = 1 << vlqBaseShift // 32
	vlqBaseMask        = vlqBase - 1       // 31 (0x1F)
	vlqContinuationBit = vlqBase           // 32 (0x20)
	vlqSignBit         = 1
)

// EncodeVLQ encodes a signed integer as a VLQ base64 string.
func EncodeVLQ(value int) string {
	var buf strings.Builder
	writeVLQ(&buf, value)
	return buf.String()
}

func writeVLQ(buf *strings.Builder, value int) {
	// Positive numbers: value << 1, negative numbers: ((-value) << 1) | 1
	var vlq uint32
	if value < 0 {
		vlq = uint32((-value)<<1) | vlqSignBit
	} else {
		vlq = uint32(value << 1)
	}

	for {
		digit := vlq & vlqBaseMask
		vlq >>= vlqBaseShift
		if vlq > 0 {
			digit |= vlqContinuationBit
		}
		buf.WriteByte(base64Alphabet[digit])
		if vlq == 0 {
			return
		}
	}
}
