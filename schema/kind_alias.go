package schema

import "github.com/kalexmills/protodyn/wire"

// Re-exported Kind constants so callers need not import wire directly when
// building or inspecting descriptors.
const (
	DoubleKind   = wire.DoubleKind
	FloatKind    = wire.FloatKind
	Int32Kind    = wire.Int32Kind
	Int64Kind    = wire.Int64Kind
	Uint32Kind   = wire.Uint32Kind
	Uint64Kind   = wire.Uint64Kind
	Sint32Kind   = wire.Sint32Kind
	Sint64Kind   = wire.Sint64Kind
	Fixed32Kind  = wire.Fixed32Kind
	Fixed64Kind  = wire.Fixed64Kind
	Sfixed32Kind = wire.Sfixed32Kind
	Sfixed64Kind = wire.Sfixed64Kind
	BoolKind     = wire.BoolKind
	StringKind   = wire.StringKind
	BytesKind    = wire.BytesKind
	MessageKind  = wire.MessageKind
	EnumKind     = wire.EnumKind
	GroupKind    = wire.GroupKind
)
