package wire

import "github.com/kalexmills/protodyn/protoerr"

func errMalformed(format string, args ...interface{}) error {
	return protoerr.New(protoerr.Malformed, format, args...)
}

// maxVarintBytes is the longest a base-128 varint encoding of a uint64 can be.
const maxVarintBytes = 10

// AppendVarint appends the base-128 varint encoding of v to b.
func AppendVarint(b []byte, v uint64) []byte {
	switch {
	case v < 1<<7:
		return append(b, byte(v))
	case v < 1<<14:
		return append(b, byte(v|0x80), byte(v>>7))
	}
	// General loop for the remaining, less common, larger values.
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// SizeVarint reports the number of bytes AppendVarint would produce for v.
func SizeVarint(v uint64) int {
	// Avoid allocation: compute bit length directly.
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// ConsumeVarint parses a base-128 varint at the start of b. It returns the
// decoded value and the number of bytes consumed, or a negative error code.
func ConsumeVarint(b []byte) (uint64, int) {
	var v uint64
	for i := 0; i < len(b); i++ {
		if i >= maxVarintBytes {
			return 0, errCodeOverflow
		}
		c := b[i]
		v |= uint64(c&0x7f) << (7 * uint(i))
		if c < 0x80 {
			if i == maxVarintBytes-1 && c > 1 {
				return 0, errCodeOverflow
			}
			return v, i + 1
		}
	}
	return 0, errCodeTruncated
}

// EncodeZigZag32 maps a signed 32-bit integer to an unsigned 32-bit integer
// so that numbers with small magnitude (regardless of sign) have a small
// varint-encoded size.
func EncodeZigZag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

// DecodeZigZag32 is the inverse of EncodeZigZag32.
func DecodeZigZag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// EncodeZigZag64 is the 64-bit analogue of EncodeZigZag32.
func EncodeZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// DecodeZigZag64 is the inverse of EncodeZigZag64.
func DecodeZigZag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
