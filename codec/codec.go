// Package codec implements the wire codec: encoding a dynamic.Message to
// bytes and decoding bytes back into one, including unknown-field capture,
// packed/unpacked repeated fields, and map-as-repeated-entries encoding. It
// is grounded on proto/encode.go and proto/decode.go's field-by-field walk,
// generalized here to drive off a schema.MessageDescriptor instead of a
// generated Go struct's field table.
package codec

import (
	"math"
	"sort"

	"github.com/kalexmills/protodyn/dynamic"
	"github.com/kalexmills/protodyn/factory"
	"github.com/kalexmills/protodyn/schema"
	"github.com/kalexmills/protodyn/wire"
)

// MarshalOptions configures Marshal. The zero value is the default: require
// a structurally complete message.
type MarshalOptions struct {
	// AllowPartial permits marshaling a message that fails
	// factory.Validate (e.g. a required field left unset) instead of
	// failing the encode.
	AllowPartial bool
}

// Marshal encodes msg using the default MarshalOptions.
func Marshal(msg *dynamic.Message) ([]byte, error) {
	return MarshalOptions{}.Marshal(msg)
}

// Marshal encodes msg: fields in declaration order, unknown fields last,
// verbatim. Map entries are always emitted in a deterministic key order so
// that encoding a message twice yields identical bytes regardless of Go's
// randomized map iteration.
func (o MarshalOptions) Marshal(msg *dynamic.Message) ([]byte, error) {
	if !o.AllowPartial {
		if err := factory.FirstError(factory.Validate(msg)); err != nil {
			return nil, err
		}
	}
	return appendMessage(nil, msg, o)
}

func appendMessage(b []byte, msg *dynamic.Message, o MarshalOptions) ([]byte, error) {
	desc := msg.Descriptor()
	var err error
	for _, fd := range desc.Fields() {
		has, _ := msg.HasByNumber(fd.Number())
		if !has {
			continue
		}
		v, _ := msg.GetByNumber(fd.Number())
		switch {
		case fd.IsMap():
			// Evaluate IsMap before IsRepeated: a map field carries both
			// flags, and encoding it as an ordinary repeated message field
			// would silently drop the key/value structure.
			b, err = appendMapField(b, fd, v.(dynamic.Map), o)
		case fd.IsRepeated():
			b, err = appendRepeatedField(b, fd, v.(dynamic.List), o)
		default:
			b, err = appendSingularField(b, fd.Number(), fd, v, o)
		}
		if err != nil {
			return nil, err
		}
	}
	b = append(b, msg.UnknownFields()...)
	return b, nil
}

func appendSingularField(b []byte, num wire.Number, fd *schema.FieldDescriptor, v interface{}, o MarshalOptions) ([]byte, error) {
	kind := fd.Kind()
	switch kind {
	case schema.DoubleKind, schema.Fixed64Kind, schema.Sfixed64Kind:
		b = wire.AppendTag(b, num, wire.Fixed64Type)
		b = wire.AppendFixed64(b, fixed64Bits(kind, v))
	case schema.FloatKind, schema.Fixed32Kind, schema.Sfixed32Kind:
		b = wire.AppendTag(b, num, wire.Fixed32Type)
		b = wire.AppendFixed32(b, fixed32Bits(kind, v))
	case schema.StringKind:
		b = wire.AppendTag(b, num, wire.BytesType)
		b = wire.AppendString(b, v.(string))
	case schema.BytesKind:
		b = wire.AppendTag(b, num, wire.BytesType)
		b = wire.AppendBytes(b, v.([]byte))
	case schema.MessageKind, schema.GroupKind:
		nested := v.(*dynamic.Message)
		sub, err := appendMessage(nil, nested, o)
		if err != nil {
			return nil, err
		}
		b = wire.AppendTag(b, num, wire.BytesType)
		b = wire.AppendBytes(b, sub)
	default:
		b = wire.AppendTag(b, num, wire.VarintType)
		b = wire.AppendVarint(b, varintValue(kind, v))
	}
	return b, nil
}

func appendRepeatedField(b []byte, fd *schema.FieldDescriptor, list dynamic.List, o MarshalOptions) ([]byte, error) {
	if len(list) == 0 {
		return b, nil
	}
	if wire.IsPackable(fd.Kind()) {
		b = wire.AppendTag(b, fd.Number(), wire.BytesType)
		var buf []byte
		for _, el := range list {
			buf = appendPackedElement(buf, fd.Kind(), el)
		}
		b = wire.AppendBytes(b, buf)
		return b, nil
	}
	var err error
	for _, el := range list {
		b, err = appendSingularField(b, fd.Number(), fd, el, o)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func appendPackedElement(b []byte, kind schema.Kind, v interface{}) []byte {
	switch kind {
	case schema.DoubleKind, schema.Fixed64Kind, schema.Sfixed64Kind:
		return wire.AppendFixed64(b, fixed64Bits(kind, v))
	case schema.FloatKind, schema.Fixed32Kind, schema.Sfixed32Kind:
		return wire.AppendFixed32(b, fixed32Bits(kind, v))
	default:
		return wire.AppendVarint(b, varintValue(kind, v))
	}
}

func appendMapField(b []byte, fd *schema.FieldDescriptor, m dynamic.Map, o MarshalOptions) ([]byte, error) {
	valField := fd.MapValueField()
	keys := sortedMapKeys(m, fd.MapKeyKind())
	for _, k := range keys {
		v := m[k]
		var entry []byte
		entry = appendMapKeyField(entry, fd.MapKeyKind(), k)
		var err error
		entry, err = appendSingularField(entry, 2, valField, v, o)
		if err != nil {
			return nil, err
		}
		b = wire.AppendTag(b, fd.Number(), wire.BytesType)
		b = wire.AppendBytes(b, entry)
	}
	return b, nil
}

func appendMapKeyField(b []byte, kind schema.Kind, k interface{}) []byte {
	switch kind {
	case schema.StringKind:
		b = wire.AppendTag(b, 1, wire.BytesType)
		b = wire.AppendString(b, k.(string))
	case schema.DoubleKind, schema.Fixed64Kind, schema.Sfixed64Kind:
		b = wire.AppendTag(b, 1, wire.Fixed64Type)
		b = wire.AppendFixed64(b, fixed64Bits(kind, k))
	case schema.FloatKind, schema.Fixed32Kind, schema.Sfixed32Kind:
		b = wire.AppendTag(b, 1, wire.Fixed32Type)
		b = wire.AppendFixed32(b, fixed32Bits(kind, k))
	default:
		b = wire.AppendTag(b, 1, wire.VarintType)
		b = wire.AppendVarint(b, varintValue(kind, k))
	}
	return b
}

// sortedMapKeys returns m's keys in a deterministic order per kind, so that
// Marshal is stable across calls without depending on Go's randomized map
// iteration.
func sortedMapKeys(m dynamic.Map, kind schema.Kind) []interface{} {
	keys := make([]interface{}, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	switch kind {
	case schema.StringKind:
		sort.Slice(keys, func(i, j int) bool { return keys[i].(string) < keys[j].(string) })
	case schema.BoolKind:
		sort.Slice(keys, func(i, j int) bool { return !keys[i].(bool) && keys[j].(bool) })
	case schema.Int32Kind, schema.Sint32Kind, schema.Sfixed32Kind:
		sort.Slice(keys, func(i, j int) bool { return keys[i].(int32) < keys[j].(int32) })
	case schema.Int64Kind, schema.Sint64Kind, schema.Sfixed64Kind:
		sort.Slice(keys, func(i, j int) bool { return keys[i].(int64) < keys[j].(int64) })
	case schema.Uint32Kind, schema.Fixed32Kind:
		sort.Slice(keys, func(i, j int) bool { return keys[i].(uint32) < keys[j].(uint32) })
	case schema.Uint64Kind, schema.Fixed64Kind:
		sort.Slice(keys, func(i, j int) bool { return keys[i].(uint64) < keys[j].(uint64) })
	}
	return keys
}

func varintValue(kind schema.Kind, v interface{}) uint64 {
	switch kind {
	case schema.Int32Kind:
		return uint64(int64(v.(int32)))
	case schema.Int64Kind:
		return uint64(v.(int64))
	case schema.Uint32Kind:
		return uint64(v.(uint32))
	case schema.Uint64Kind:
		return v.(uint64)
	case schema.Sint32Kind:
		return uint64(wire.EncodeZigZag32(v.(int32)))
	case schema.Sint64Kind:
		return wire.EncodeZigZag64(v.(int64))
	case schema.BoolKind:
		if v.(bool) {
			return 1
		}
		return 0
	case schema.EnumKind:
		return uint64(int64(int32(v.(schema.EnumNumber))))
	default:
		return 0
	}
}

func fixed32Bits(kind schema.Kind, v interface{}) uint32 {
	switch kind {
	case schema.Fixed32Kind:
		return v.(uint32)
	case schema.Sfixed32Kind:
		return uint32(v.(int32))
	case schema.FloatKind:
		return math.Float32bits(v.(float32))
	default:
		return 0
	}
}

func fixed64Bits(kind schema.Kind, v interface{}) uint64 {
	switch kind {
	case schema.Fixed64Kind:
		return v.(uint64)
	case schema.Sfixed64Kind:
		return uint64(v.(int64))
	case schema.DoubleKind:
		return math.Float64bits(v.(float64))
	default:
		return 0
	}
}
