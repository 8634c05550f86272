// Package wire implements the Protocol Buffers binary wire format: tag
// composition, varints, zigzag encoding, fixed-width integers, and
// length-delimited records. It has no knowledge of descriptors or messages;
// every other package in this module builds on top of it.
package wire

// Type is the wire type embedded in the low three bits of a tag.
type Type int8

const (
	VarintType     Type = 0
	Fixed64Type    Type = 1
	BytesType      Type = 2
	StartGroupType Type = 3
	EndGroupType   Type = 4
	Fixed32Type    Type = 5
)

// Number is a protobuf field number.
type Number int32

const (
	MinValidNumber      Number = 1
	FirstReservedNumber Number = 19000
	LastReservedNumber  Number = 19999
	MaxValidNumber      Number = 1<<29 - 1
)

// IsValidNumber reports whether n falls within the field numbers the wire
// format permits, excluding the reserved range used internally by the
// protobuf implementations themselves.
func IsValidNumber(n Number) bool {
	return n >= MinValidNumber && n <= MaxValidNumber &&
		!(n >= FirstReservedNumber && n <= LastReservedNumber)
}

// EncodeTag composes a field number and wire type into a tag value.
func EncodeTag(num Number, typ Type) uint64 {
	return uint64(num)<<3 | uint64(typ&7)
}

// DecodeTag splits a tag value into its field number and wire type.
func DecodeTag(tag uint64) (Number, Type) {
	return Number(tag >> 3), Type(tag & 7)
}

// AppendTag appends the wire-encoded tag for (num, typ) to b.
func AppendTag(b []byte, num Number, typ Type) []byte {
	return AppendVarint(b, EncodeTag(num, typ))
}

// ConsumeTag parses a tag at the start of b. It returns the field number,
// wire type, and number of bytes consumed, or a negative value on failure
// (see ParseError).
func ConsumeTag(b []byte) (Number, Type, int) {
	v, n := ConsumeVarint(b)
	if n < 0 {
		return 0, 0, n
	}
	num, typ := DecodeTag(v)
	if num < MinValidNumber {
		return 0, 0, errCodeMalformed
	}
	return num, typ, n
}

// ConsumeFieldValue parses and skips over the value of a field with the
// given wire type, returning the number of bytes consumed or a negative
// error code. num is accepted for symmetry with the upstream API shape but
// is only used to pair a StartGroup with its EndGroup.
func ConsumeFieldValue(num Number, typ Type, b []byte) int {
	switch typ {
	case VarintType:
		_, n := ConsumeVarint(b)
		return n
	case Fixed32Type:
		if len(b) < 4 {
			return errCodeTruncated
		}
		return 4
	case Fixed64Type:
		if len(b) < 8 {
			return errCodeTruncated
		}
		return 8
	case BytesType:
		_, n := ConsumeBytes(b)
		return n
	case StartGroupType:
		return consumeGroup(num, b)
	case EndGroupType:
		// An EndGroup with no matching StartGroup is malformed in this
		// position; callers only ever see it via consumeGroup.
		return errCodeMalformed
	default:
		return errCodeMalformed
	}
}

func consumeGroup(num Number, b []byte) int {
	origLen := len(b)
	for {
		gnum, gtyp, n := ConsumeTag(b)
		if n < 0 {
			return n
		}
		b = b[n:]
		if gtyp == EndGroupType {
			if gnum != num {
				return errCodeMalformed
			}
			return origLen - len(b)
		}
		n = ConsumeFieldValue(gnum, gtyp, b)
		if n < 0 {
			return n
		}
		b = b[n:]
	}
}

// Negative sentinel return values used throughout this package: a negative
// length signals a parse error rather than a consumed byte count.
const (
	errCodeTruncated = -1
	errCodeMalformed = -2
	errCodeOverflow  = -3
)

// ParseError turns one of the negative error codes above into a *protoerr.Error
// styled message. offset, when known, should be added by the caller.
func ParseError(code int) error {
	switch code {
	case errCodeTruncated:
		return errMalformed("truncated wire data")
	case errCodeOverflow:
		return errMalformed("varint overflows 64 bits")
	default:
		return errMalformed("invalid wire data")
	}
}
