// Package factory implements the message factory and structural validator:
// bulk construction of a dynamic.Message from a name/number-keyed set of
// field values, deep cloning, and required-field validation. It is grounded
// on the construction patterns of types/dynamicpb/dynamic.go (New/Set) plus
// proto/isinit.go's recursive required-field walk, adapted here to walk the
// dynamic.Message/schema types of this module instead of protoreflect.
package factory

import (
	"fmt"

	"github.com/kalexmills/protodyn/dynamic"
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

// NameValue pairs a field's simple name with a value to set, preserving
// caller-supplied order: values are applied in slice order, not the
// randomized order of a Go map.
type NameValue struct {
	Name  schema.Name
	Value interface{}
}

// NumberValue is NameValue addressed by field number.
type NumberValue struct {
	Number schema.FieldNumber
	Value  interface{}
}

// New returns an empty dynamic.Message conforming to desc.
func New(desc *schema.MessageDescriptor) *dynamic.Message {
	return dynamic.New(desc)
}

// NewFromNames builds a message by applying values in slice order, so that
// when two fields belong to the same oneof the later entry wins
// deterministically. Any Set failure aborts construction and propagates.
func NewFromNames(desc *schema.MessageDescriptor, values []NameValue) (*dynamic.Message, error) {
	m := dynamic.New(desc)
	for _, nv := range values {
		if err := m.SetByName(nv.Name, nv.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewFromNumbers is NewFromNames addressed by field number.
func NewFromNumbers(desc *schema.MessageDescriptor, values []NumberValue) (*dynamic.Message, error) {
	m := dynamic.New(desc)
	for _, nv := range values {
		if err := m.SetByNumber(nv.Number, nv.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewFromNameMap is the map-keyed convenience form of NewFromNames. Go map
// iteration order is randomized, so when a plain map is used to populate
// more than one member of the same oneof, which member survives is
// unspecified; callers that care about oneof resolution order should use
// NewFromNames instead.
func NewFromNameMap(desc *schema.MessageDescriptor, values map[string]interface{}) (*dynamic.Message, error) {
	m := dynamic.New(desc)
	for name, v := range values {
		if err := m.SetByName(schema.Name(name), v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Clone returns a deep copy of msg: scalars are copied by value, repeated
// and map fields are copied into fresh containers, and nested messages are
// recursively cloned so the clone shares no mutable state with msg.
func Clone(msg *dynamic.Message) (*dynamic.Message, error) {
	out := dynamic.New(msg.Descriptor())
	var err error
	msg.Range(func(fd *schema.FieldDescriptor, v interface{}) bool {
		var cv interface{}
		cv, err = cloneValue(fd, v)
		if err != nil {
			return false
		}
		err = out.SetByNumber(fd.Number(), cv)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	out.SetUnknownFields(append([]byte(nil), msg.UnknownFields()...))
	return out, nil
}

func cloneValue(fd *schema.FieldDescriptor, v interface{}) (interface{}, error) {
	switch {
	case fd.IsMap():
		mp := v.(dynamic.Map)
		out := make(dynamic.Map, len(mp))
		for k, val := range mp {
			cv, err := cloneSingular(fd.MapValueField(), val)
			if err != nil {
				return nil, err
			}
			out[k] = cv
		}
		return out, nil
	case fd.IsRepeated():
		list := v.(dynamic.List)
		out := make(dynamic.List, len(list))
		for i, el := range list {
			cv, err := cloneSingular(fd, el)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	default:
		return cloneSingular(fd, v)
	}
}

func cloneSingular(fd *schema.FieldDescriptor, v interface{}) (interface{}, error) {
	switch fd.Kind() {
	case schema.MessageKind, schema.GroupKind:
		return Clone(v.(*dynamic.Message))
	case schema.BytesKind:
		b := v.([]byte)
		return append([]byte(nil), b...), nil
	default:
		return v, nil
	}
}

// ValidationErrorKind classifies a single structural validation failure.
type ValidationErrorKind int

const (
	MissingRequiredField ValidationErrorKind = iota
)

func (k ValidationErrorKind) String() string {
	if k == MissingRequiredField {
		return "MissingRequiredField"
	}
	return "Unknown"
}

// ValidationError reports one structural defect found in a message, with a
// dotted/indexed path identifying where it occurred: a bare field name, a
// nested field path ("address.city"), a repeated element index
// ("tags[3]"), or a stringified map key ("labels[\"en\"]").
type ValidationError struct {
	Path string
	Kind ValidationErrorKind
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

// ValidationResult is the aggregate outcome of Validate.
type ValidationResult struct {
	OK     bool
	Errors []ValidationError
}

// Validate walks msg and its nested messages (through singular, repeated,
// and map message fields) reporting every field declared required but
// absent. It performs no business-rule checking and never rejects
// additional/unknown-to-the-caller fields.
func Validate(msg *dynamic.Message) ValidationResult {
	var errs []ValidationError
	validateMessage(msg, "", &errs)
	return ValidationResult{OK: len(errs) == 0, Errors: errs}
}

func validateMessage(msg *dynamic.Message, path string, errs *[]ValidationError) {
	desc := msg.Descriptor()
	for _, fd := range desc.Fields() {
		fieldPath := joinPath(path, string(fd.Name()))
		has, _ := msg.HasByNumber(fd.Number())
		if fd.IsRequired() && !has {
			*errs = append(*errs, ValidationError{Path: fieldPath, Kind: MissingRequiredField})
			continue
		}
		if !has {
			continue
		}
		v, _ := msg.GetByNumber(fd.Number())
		switch {
		case fd.IsMap():
			if fd.MapValueField().Kind() != schema.MessageKind {
				continue
			}
			for k, val := range v.(dynamic.Map) {
				validateMessage(val.(*dynamic.Message), fmt.Sprintf("%s[%q]", fieldPath, fmt.Sprint(k)), errs)
			}
		case fd.IsRepeated():
			if fd.Kind() != schema.MessageKind && fd.Kind() != schema.GroupKind {
				continue
			}
			for i, el := range v.(dynamic.List) {
				validateMessage(el.(*dynamic.Message), fmt.Sprintf("%s[%d]", fieldPath, i), errs)
			}
		default:
			if fd.Kind() == schema.MessageKind || fd.Kind() == schema.GroupKind {
				validateMessage(v.(*dynamic.Message), fieldPath, errs)
			}
		}
	}
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// FirstError returns an error describing the first validation failure, or
// nil if res is OK. Exported so callers outside this package (the wire
// codec's AllowPartial option) can convert a ValidationResult into a single
// *protoerr.Error without re-implementing the formatting.
func FirstError(res ValidationResult) error {
	if res.OK {
		return nil
	}
	return protoerr.New(protoerr.InvalidDescriptorStructure, "%s", res.Errors[0].Error())
}
