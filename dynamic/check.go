package dynamic

import (
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

// checkValue validates v against fd's full cardinality: singular, repeated,
// or map.
func checkValue(fd *schema.FieldDescriptor, v interface{}) error {
	switch {
	case fd.IsMap():
		mp, ok := v.(Map)
		if !ok {
			return protoerr.New(protoerr.TypeMismatch, "%s: expected dynamic.Map, got %T", fd, v)
		}
		for k, val := range mp {
			if err := checkScalarOrRef(fd.MapKeyKind(), nil, nil, k); err != nil {
				return protoerr.New(protoerr.TypeMismatch, "%s: map key: %v", fd, err)
			}
			if err := checkSingular(fd.MapValueField(), val); err != nil {
				return err
			}
		}
		return nil
	case fd.IsRepeated():
		list, ok := v.(List)
		if !ok {
			return protoerr.New(protoerr.TypeMismatch, "%s: expected dynamic.List, got %T", fd, v)
		}
		for _, el := range list {
			if err := checkSingular(fd, el); err != nil {
				return err
			}
		}
		return nil
	default:
		return checkSingular(fd, v)
	}
}

// checkSingular validates a single element against fd's declared kind.
func checkSingular(fd *schema.FieldDescriptor, v interface{}) error {
	if err := checkScalarOrRef(fd.Kind(), fd.Message(), fd.Enum(), v); err != nil {
		return protoerr.New(protoerr.TypeMismatch, "%s: %v", fd, err)
	}
	return nil
}

// checkScalarOrRef enforces native-kind rules: no numeric/string coercion,
// message fields require a *Message whose descriptor's fully-qualified name
// matches, and enum fields accept either a raw 32-bit number or a
// descriptor reference to a value of the target enum.
func checkScalarOrRef(kind schema.Kind, msg *schema.MessageDescriptor, enum *schema.EnumDescriptor, v interface{}) error {
	switch kind {
	case schema.DoubleKind:
		if _, ok := v.(float64); !ok {
			return mismatch("float64", v)
		}
	case schema.FloatKind:
		if _, ok := v.(float32); !ok {
			return mismatch("float32", v)
		}
	case schema.Int32Kind, schema.Sint32Kind, schema.Sfixed32Kind:
		if _, ok := v.(int32); !ok {
			return mismatch("int32", v)
		}
	case schema.Int64Kind, schema.Sint64Kind, schema.Sfixed64Kind:
		if _, ok := v.(int64); !ok {
			return mismatch("int64", v)
		}
	case schema.Uint32Kind, schema.Fixed32Kind:
		if _, ok := v.(uint32); !ok {
			return mismatch("uint32", v)
		}
	case schema.Uint64Kind, schema.Fixed64Kind:
		if _, ok := v.(uint64); !ok {
			return mismatch("uint64", v)
		}
	case schema.BoolKind:
		if _, ok := v.(bool); !ok {
			return mismatch("bool", v)
		}
	case schema.StringKind:
		if _, ok := v.(string); !ok {
			return mismatch("string", v)
		}
	case schema.BytesKind:
		if _, ok := v.([]byte); !ok {
			return mismatch("[]byte", v)
		}
	case schema.MessageKind, schema.GroupKind:
		nested, ok := v.(*Message)
		if !ok {
			return mismatch("*dynamic.Message", v)
		}
		if msg != nil && nested.Descriptor().FullName() != msg.FullName() {
			return mismatch("message "+string(msg.FullName()), v)
		}
	case schema.EnumKind:
		switch n := v.(type) {
		case int32:
		case schema.EnumNumber:
		case *schema.EnumValueDescriptor:
			if enum != nil && n.Parent() != enum {
				return mismatch("enum value of "+string(enum.FullName()), v)
			}
		default:
			return mismatch("int32, schema.EnumNumber, or *schema.EnumValueDescriptor", v)
		}
	default:
		return mismatch("a valid field kind", v)
	}
	return nil
}

func mismatch(expected string, actual interface{}) error {
	return protoerr.New(protoerr.TypeMismatch, "expected %s, got %T", expected, actual)
}

// normalize converts a validated value into its canonical storage
// representation: repeated/map containers recurse element-wise, enum
// values collapse to a bare schema.EnumNumber regardless of which of the
// three accepted enum representations the caller passed in.
func normalize(fd *schema.FieldDescriptor, v interface{}) interface{} {
	switch {
	case fd.IsMap():
		mp := v.(Map)
		out := make(Map, len(mp))
		for k, val := range mp {
			out[normalizeKey(fd.MapKeyKind(), k)] = normalizeSingular(fd.MapValueField(), val)
		}
		return out
	case fd.IsRepeated():
		list := v.(List)
		out := make(List, len(list))
		for i, el := range list {
			out[i] = normalizeSingular(fd, el)
		}
		return out
	default:
		return normalizeSingular(fd, v)
	}
}

func normalizeSingular(fd *schema.FieldDescriptor, v interface{}) interface{} {
	if fd.Kind() != schema.EnumKind {
		return v
	}
	switch n := v.(type) {
	case int32:
		return schema.EnumNumber(n)
	case schema.EnumNumber:
		return n
	case *schema.EnumValueDescriptor:
		return n.Number()
	}
	return v
}

// normalizeKey is the identity function: map keys are always one of the
// scalar kinds in wire.IsValidMapKeyKind, which excludes enum, so no
// tagged-variant collapsing (as in normalizeSingular) is ever needed.
func normalizeKey(kind schema.Kind, k interface{}) interface{} {
	return k
}
