package wire

// Kind identifies one of the scalar, message, enum, or group field types.
// It lives in the wire package (rather than schema) because wire-type
// selection is purely a function of Kind and nothing else.
type Kind int8

const (
	InvalidKind Kind = iota
	DoubleKind
	FloatKind
	Int32Kind
	Int64Kind
	Uint32Kind
	Uint64Kind
	Sint32Kind
	Sint64Kind
	Fixed32Kind
	Fixed64Kind
	Sfixed32Kind
	Sfixed64Kind
	BoolKind
	StringKind
	BytesKind
	MessageKind
	EnumKind
	GroupKind
)

// wireTypes is a total, table-driven mapping from Kind to the wire Type used
// to encode a singular value of that kind.
var wireTypes = [...]Type{
	DoubleKind:   Fixed64Type,
	FloatKind:    Fixed32Type,
	Int32Kind:    VarintType,
	Int64Kind:    VarintType,
	Uint32Kind:   VarintType,
	Uint64Kind:   VarintType,
	Sint32Kind:   VarintType,
	Sint64Kind:   VarintType,
	Fixed32Kind:  Fixed32Type,
	Fixed64Kind:  Fixed64Type,
	Sfixed32Kind: Fixed32Type,
	Sfixed64Kind: Fixed64Type,
	BoolKind:     VarintType,
	StringKind:   BytesType,
	BytesKind:    BytesType,
	MessageKind:  BytesType,
	EnumKind:     VarintType,
	GroupKind:    BytesType,
}

// WireType returns the wire type used to encode a singular value of kind k.
// It is total over all valid Kind values; true group framing (StartGroup/
// EndGroup markers) is out of scope, so GroupKind maps to BytesType like
// MessageKind — a Group field is encoded as a length-delimited embedded
// message, matching what appendSingularField and the decoder actually do.
func WireType(k Kind) Type {
	return wireTypes[k]
}

// IsPackable reports whether repeated fields of kind k use packed encoding:
// all numeric and bool types, plus enum.
func IsPackable(k Kind) bool {
	switch k {
	case StringKind, BytesKind, MessageKind, GroupKind:
		return false
	case InvalidKind:
		return false
	default:
		return true
	}
}

func (k Kind) String() string {
	names := [...]string{
		InvalidKind:  "invalid",
		DoubleKind:   "double",
		FloatKind:    "float",
		Int32Kind:    "int32",
		Int64Kind:    "int64",
		Uint32Kind:   "uint32",
		Uint64Kind:   "uint64",
		Sint32Kind:   "sint32",
		Sint64Kind:   "sint64",
		Fixed32Kind:  "fixed32",
		Fixed64Kind:  "fixed64",
		Sfixed32Kind: "sfixed32",
		Sfixed64Kind: "sfixed64",
		BoolKind:     "bool",
		StringKind:   "string",
		BytesKind:    "bytes",
		MessageKind:  "message",
		EnumKind:     "enum",
		GroupKind:    "group",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// IsScalar reports whether k is one of the 15 scalar types, i.e. neither
// message, enum, nor group.
func IsScalar(k Kind) bool {
	switch k {
	case MessageKind, EnumKind, GroupKind, InvalidKind:
		return false
	default:
		return true
	}
}

// IsValidMapKeyKind reports whether k may be used as a map key: any scalar
// other than the floating-point and bytes kinds.
func IsValidMapKeyKind(k Kind) bool {
	switch k {
	case Int32Kind, Int64Kind, Uint32Kind, Uint64Kind, Sint32Kind, Sint64Kind,
		Fixed32Kind, Fixed64Kind, Sfixed32Kind, Sfixed64Kind, BoolKind, StringKind:
		return true
	default:
		return false
	}
}
