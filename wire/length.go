package wire

// AppendBytes appends v as a length-delimited record: varint(len(v)) || v.
func AppendBytes(b []byte, v []byte) []byte {
	b = AppendVarint(b, uint64(len(v)))
	return append(b, v...)
}

// AppendString is AppendBytes for a string, avoiding an intermediate copy.
func AppendString(b []byte, v string) []byte {
	b = AppendVarint(b, uint64(len(v)))
	return append(b, v...)
}

// ConsumeBytes parses a length-delimited record at the start of b and
// returns the inner slice (aliasing b) plus the total bytes consumed
// including the length prefix.
func ConsumeBytes(b []byte) ([]byte, int) {
	m, n := ConsumeVarint(b)
	if n < 0 {
		return nil, n
	}
	if m > uint64(len(b)-n) {
		return nil, errCodeTruncated
	}
	v := b[n : n+int(m)]
	return v, n + int(m)
}

// AppendSpeculativeLength reserves one placeholder byte for a length that
// will be patched in afterwards by FinishSpeculativeLength, avoiding a
// separate encode-to-measure pass for length-delimited message and
// map-entry records.
func AppendSpeculativeLength(b []byte) ([]byte, int) {
	pos := len(b)
	return append(b, 0), pos
}

// FinishSpeculativeLength patches the varint length of the record started at
// pos by AppendSpeculativeLength, shifting the payload if the final length
// no longer fits in the reserved byte.
func FinishSpeculativeLength(b []byte, pos int) []byte {
	const reserved = 1
	mlen := len(b) - pos - reserved
	msize := SizeVarint(uint64(mlen))
	if msize != reserved {
		for i := 0; i < msize-reserved; i++ {
			b = append(b, 0)
		}
		copy(b[pos+msize:], b[pos+reserved:pos+reserved+mlen])
		b = b[:pos+msize+mlen]
	}
	AppendVarint(b[:pos], uint64(mlen))
	return b
}
