package codec

import (
	"math"

	"github.com/kalexmills/protodyn/dynamic"
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
	"github.com/kalexmills/protodyn/wire"
)

// UnmarshalOptions configures Unmarshal.
type UnmarshalOptions struct {
	// DiscardUnknown drops fields the descriptor does not recognize
	// instead of capturing them for later re-encoding. The default
	// behavior always captures unknown fields; this is an explicit
	// opt-out.
	DiscardUnknown bool
}

// Unmarshal decodes b into a new dynamic.Message conforming to desc, using
// the default UnmarshalOptions.
func Unmarshal(b []byte, desc *schema.MessageDescriptor) (*dynamic.Message, error) {
	return UnmarshalOptions{}.Unmarshal(b, desc)
}

// Unmarshal decodes b into a new dynamic.Message conforming to desc.
func (o UnmarshalOptions) Unmarshal(b []byte, desc *schema.MessageDescriptor) (*dynamic.Message, error) {
	msg := dynamic.New(desc)
	if err := o.unmarshalInto(b, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (o UnmarshalOptions) unmarshalInto(b []byte, msg *dynamic.Message) error {
	desc := msg.Descriptor()
	for len(b) > 0 {
		num, typ, n := wire.ConsumeTag(b)
		if n < 0 {
			return wire.ParseError(n)
		}
		b = b[n:]

		fd := desc.FieldByNumber(num)
		if fd == nil {
			n := wire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return wire.ParseError(n)
			}
			if !o.DiscardUnknown {
				msg.AppendUnknownFields(wire.AppendTag(nil, num, typ))
				msg.AppendUnknownFields(b[:n])
			}
			b = b[n:]
			continue
		}

		switch {
		case fd.IsMap():
			if typ != wire.BytesType {
				return protoerr.New(protoerr.WireTypeMismatch, "%s: expected length-delimited wire type for map entry, got %v", fd, typ)
			}
			entry, n := wire.ConsumeBytes(b)
			if n < 0 {
				return wire.ParseError(n)
			}
			b = b[n:]
			key, val, err := o.decodeMapEntry(entry, fd)
			if err != nil {
				return err
			}
			if err := msg.SetMapEntry(fd.Name(), key, val); err != nil {
				return err
			}
		case fd.IsRepeated():
			if typ == wire.BytesType && wire.IsPackable(fd.Kind()) {
				packed, n := wire.ConsumeBytes(b)
				if n < 0 {
					return wire.ParseError(n)
				}
				b = b[n:]
				if err := o.appendPacked(msg, fd, packed); err != nil {
					return err
				}
				continue
			}
			expected := wire.WireType(fd.Kind())
			if typ != expected {
				return protoerr.New(protoerr.WireTypeMismatch, "%s: expected wire type %v, got %v", fd, expected, typ)
			}
			v, n, err := o.decodeValueOfKind(fd.Kind(), fd.Message(), b)
			if err != nil {
				return err
			}
			b = b[n:]
			if err := msg.AppendRepeated(fd.Name(), v); err != nil {
				return err
			}
		default:
			expected := wire.WireType(fd.Kind())
			if typ != expected {
				return protoerr.New(protoerr.WireTypeMismatch, "%s: expected wire type %v, got %v", fd, expected, typ)
			}
			v, n, err := o.decodeValueOfKind(fd.Kind(), fd.Message(), b)
			if err != nil {
				return err
			}
			b = b[n:]
			// Later wins for singular fields.
			if err := msg.SetByNumber(fd.Number(), v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o UnmarshalOptions) appendPacked(msg *dynamic.Message, fd *schema.FieldDescriptor, b []byte) error {
	for len(b) > 0 {
		v, n, err := o.decodeValueOfKind(fd.Kind(), nil, b)
		if err != nil {
			return err
		}
		b = b[n:]
		if err := msg.AppendRepeated(fd.Name(), v); err != nil {
			return err
		}
	}
	return nil
}

func (o UnmarshalOptions) decodeMapEntry(b []byte, fd *schema.FieldDescriptor) (interface{}, interface{}, error) {
	key := zeroScalar(fd.MapKeyKind())
	valField := fd.MapValueField()
	val := zeroScalar(valField.Kind())
	for len(b) > 0 {
		num, typ, n := wire.ConsumeTag(b)
		if n < 0 {
			return nil, nil, wire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			expected := wire.WireType(fd.MapKeyKind())
			if typ != expected {
				return nil, nil, protoerr.New(protoerr.WireTypeMismatch, "%s: map key: expected wire type %v, got %v", fd, expected, typ)
			}
			v, n, err := o.decodeValueOfKind(fd.MapKeyKind(), nil, b)
			if err != nil {
				return nil, nil, err
			}
			key = v
			b = b[n:]
		case 2:
			expected := wire.WireType(valField.Kind())
			if typ != expected {
				return nil, nil, protoerr.New(protoerr.WireTypeMismatch, "%s: map value: expected wire type %v, got %v", fd, expected, typ)
			}
			v, n, err := o.decodeValueOfKind(valField.Kind(), valField.Message(), b)
			if err != nil {
				return nil, nil, err
			}
			val = v
			b = b[n:]
		default:
			n := wire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, nil, wire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if val == nil && (valField.Kind() == schema.MessageKind || valField.Kind() == schema.GroupKind) {
		// A map value of message type that never appeared in the entry's
		// wire bytes still materializes as the message's zero value, not
		// an absent value.
		val = dynamic.New(valField.Message())
	}
	return key, val, nil
}

// decodeValueOfKind decodes a single value of the given kind from the head
// of b (after its tag has already been consumed by the caller). target is
// the resolved message descriptor when kind is Message/Group, and is
// ignored otherwise.
func (o UnmarshalOptions) decodeValueOfKind(kind schema.Kind, target *schema.MessageDescriptor, b []byte) (interface{}, int, error) {
	switch kind {
	case schema.StringKind:
		raw, n := wire.ConsumeBytes(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return string(raw), n, nil
	case schema.BytesKind:
		raw, n := wire.ConsumeBytes(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return append([]byte(nil), raw...), n, nil
	case schema.MessageKind, schema.GroupKind:
		raw, n := wire.ConsumeBytes(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		if target == nil {
			return nil, 0, protoerr.New(protoerr.TypeNotFound, "unresolved message type for field of kind %v", kind)
		}
		nested := dynamic.New(target)
		if err := o.unmarshalInto(raw, nested); err != nil {
			return nil, 0, err
		}
		return nested, n, nil
	case schema.EnumKind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return schema.EnumNumber(int32(v)), n, nil
	case schema.DoubleKind:
		v, n := wire.ConsumeFixed64(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return math.Float64frombits(v), n, nil
	case schema.FloatKind:
		v, n := wire.ConsumeFixed32(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return math.Float32frombits(v), n, nil
	case schema.Fixed64Kind:
		v, n := wire.ConsumeFixed64(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return v, n, nil
	case schema.Sfixed64Kind:
		v, n := wire.ConsumeFixed64(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return int64(v), n, nil
	case schema.Fixed32Kind:
		v, n := wire.ConsumeFixed32(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return v, n, nil
	case schema.Sfixed32Kind:
		v, n := wire.ConsumeFixed32(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return int32(v), n, nil
	case schema.BoolKind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return v != 0, n, nil
	case schema.Int32Kind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return int32(int64(v)), n, nil
	case schema.Int64Kind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return int64(v), n, nil
	case schema.Uint32Kind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return uint32(v), n, nil
	case schema.Uint64Kind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return v, n, nil
	case schema.Sint32Kind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return wire.DecodeZigZag32(uint32(v)), n, nil
	case schema.Sint64Kind:
		v, n := wire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, wire.ParseError(n)
		}
		return wire.DecodeZigZag64(v), n, nil
	default:
		return nil, 0, protoerr.New(protoerr.Malformed, "unsupported field kind %v", kind)
	}
}

// zeroScalar returns the wire-level default for a map key/value kind absent
// from an entry message.
func zeroScalar(kind schema.Kind) interface{} {
	switch kind {
	case schema.StringKind:
		return ""
	case schema.BytesKind:
		return []byte(nil)
	case schema.BoolKind:
		return false
	case schema.DoubleKind:
		return float64(0)
	case schema.FloatKind:
		return float32(0)
	case schema.Int32Kind, schema.Sint32Kind, schema.Sfixed32Kind:
		return int32(0)
	case schema.Int64Kind, schema.Sint64Kind, schema.Sfixed64Kind:
		return int64(0)
	case schema.Uint32Kind, schema.Fixed32Kind:
		return uint32(0)
	case schema.Uint64Kind, schema.Fixed64Kind:
		return uint64(0)
	case schema.EnumKind:
		return schema.EnumNumber(0)
	default:
		return nil
	}
}
