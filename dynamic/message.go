// Package dynamic implements the dynamic message value carrier: a mutable
// value that conforms to a schema.MessageDescriptor and stores field values
// in a type-erased fashion, enforcing per-field type and cardinality
// invariants.
//
// Values are carried as a tagged variant over plain Go types rather than
// through reflection: a singular scalar field stores its Go-native type
// directly (int32, uint64, string, []byte, ...), a singular message field
// stores a *Message, a singular enum field stores a schema.EnumNumber, a
// repeated field stores a List, and a map field stores a Map. Type checks
// become discriminant comparisons in checkSingular instead of runtime
// reflection.
package dynamic

import (
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
	"github.com/kalexmills/protodyn/wire"
)

// List is the storage representation of a repeated field: an ordered
// sequence of values, each satisfying the field's singular type rule.
type List []interface{}

// Map is the storage representation of a map field. Keys are the Go-native
// representation of the map's key kind (string, bool, int32, int64, uint32,
// or uint64); values satisfy the map-entry's value field rule. Iteration
// order over a Map is unspecified.
type Map map[interface{}]interface{}

// Message is a dynamically constructed protocol buffer message value
// conforming to a schema.MessageDescriptor. Operations on a Message are not
// safe for concurrent use.
type Message struct {
	desc    *schema.MessageDescriptor
	values  map[wire.Number]interface{}
	unknown []byte
}

// New returns an empty Message conforming to desc, with no fields set.
func New(desc *schema.MessageDescriptor) *Message {
	return &Message{desc: desc, values: make(map[wire.Number]interface{})}
}

// Descriptor returns the message's descriptor.
func (m *Message) Descriptor() *schema.MessageDescriptor { return m.desc }

func (m *Message) lookupByName(name schema.Name) (*schema.FieldDescriptor, error) {
	fd := m.desc.FieldByName(name)
	if fd == nil {
		return nil, protoerr.New(protoerr.UnknownField, "%s: unknown field %q", m.desc.FullName(), name)
	}
	return fd, nil
}

func (m *Message) lookupByNumber(num wire.Number) (*schema.FieldDescriptor, error) {
	fd := m.desc.FieldByNumber(num)
	if fd == nil {
		return nil, protoerr.New(protoerr.UnknownField, "%s: unknown field number %d", m.desc.FullName(), num)
	}
	return fd, nil
}

// GetByName returns the current value of the named field, or nil if absent.
func (m *Message) GetByName(name schema.Name) (interface{}, error) {
	fd, err := m.lookupByName(name)
	if err != nil {
		return nil, err
	}
	return m.values[fd.Number()], nil
}

// GetByNumber returns the current value of the numbered field, or nil if
// absent.
func (m *Message) GetByNumber(num wire.Number) (interface{}, error) {
	if _, err := m.lookupByNumber(num); err != nil {
		return nil, err
	}
	return m.values[num], nil
}

// HasByName reports whether the named field currently holds a value.
func (m *Message) HasByName(name schema.Name) (bool, error) {
	fd, err := m.lookupByName(name)
	if err != nil {
		return false, err
	}
	_, ok := m.values[fd.Number()]
	return ok, nil
}

// HasByNumber reports whether the numbered field currently holds a value.
func (m *Message) HasByNumber(num wire.Number) (bool, error) {
	if _, err := m.lookupByNumber(num); err != nil {
		return false, err
	}
	_, ok := m.values[num]
	return ok, nil
}

// ClearByName removes any value stored for the named field.
func (m *Message) ClearByName(name schema.Name) error {
	fd, err := m.lookupByName(name)
	if err != nil {
		return err
	}
	delete(m.values, fd.Number())
	return nil
}

// ClearByNumber removes any value stored for the numbered field.
func (m *Message) ClearByNumber(num wire.Number) error {
	if _, err := m.lookupByNumber(num); err != nil {
		return err
	}
	delete(m.values, num)
	return nil
}

// SetByName stores v in the named field after validating it against the
// field's declared type and cardinality.
func (m *Message) SetByName(name schema.Name, v interface{}) error {
	fd, err := m.lookupByName(name)
	if err != nil {
		return err
	}
	return m.set(fd, v)
}

// SetByNumber is SetByName addressed by field number.
func (m *Message) SetByNumber(num wire.Number, v interface{}) error {
	fd, err := m.lookupByNumber(num)
	if err != nil {
		return err
	}
	return m.set(fd, v)
}

func (m *Message) set(fd *schema.FieldDescriptor, v interface{}) error {
	if err := checkValue(fd, v); err != nil {
		return err
	}
	m.clearOtherOneofFields(fd)
	m.values[fd.Number()] = normalize(fd, v)
	return nil
}

// AppendRepeated appends v to the named repeated field, creating the List
// if this is the field's first element. Used by the wire codec while
// decoding repeated and packed fields one element at a time.
func (m *Message) AppendRepeated(name schema.Name, v interface{}) error {
	fd, err := m.lookupByName(name)
	if err != nil {
		return err
	}
	if !fd.IsRepeated() || fd.IsMap() {
		return protoerr.New(protoerr.TypeMismatch, "%s: not a repeated scalar/message field", fd)
	}
	if err := checkSingular(fd, v); err != nil {
		return err
	}
	list, _ := m.values[fd.Number()].(List)
	m.values[fd.Number()] = append(list, normalizeSingular(fd, v))
	return nil
}

// SetMapEntry stores value under key in the named map field, failing unless
// the field is a map and value/key satisfy the map's value/key type.
func (m *Message) SetMapEntry(name schema.Name, key, value interface{}) error {
	fd, err := m.lookupByName(name)
	if err != nil {
		return err
	}
	if !fd.IsMap() {
		return protoerr.New(protoerr.TypeMismatch, "%s: not a map field", fd)
	}
	if err := checkScalarOrRef(fd.MapKeyKind(), nil, nil, key); err != nil {
		return protoerr.New(protoerr.TypeMismatch, "%s: map key: %v", fd, err)
	}
	if err := checkSingular(fd.MapValueField(), value); err != nil {
		return err
	}
	mp, _ := m.values[fd.Number()].(Map)
	if mp == nil {
		mp = make(Map)
	}
	mp[normalizeKey(fd.MapKeyKind(), key)] = normalizeSingular(fd.MapValueField(), value)
	m.values[fd.Number()] = mp
	return nil
}

func (m *Message) clearOtherOneofFields(fd *schema.FieldDescriptor) {
	od := fd.ContainingOneof()
	if od == nil {
		return
	}
	for _, sibling := range od.Fields() {
		if sibling.Number() != fd.Number() {
			delete(m.values, sibling.Number())
		}
	}
}

// Range visits every populated field in the message's declaration order.
func (m *Message) Range(f func(fd *schema.FieldDescriptor, v interface{}) bool) {
	for _, fd := range m.desc.Fields() {
		if v, ok := m.values[fd.Number()]; ok {
			if !f(fd, v) {
				return
			}
		}
	}
}

// UnknownFields returns the raw wire bytes of fields captured during decode
// that the descriptor did not recognize.
func (m *Message) UnknownFields() []byte { return m.unknown }

// SetUnknownFields replaces the raw unknown-field buffer.
func (m *Message) SetUnknownFields(b []byte) { m.unknown = b }

// AppendUnknownFields appends raw wire bytes to the unknown-field buffer.
func (m *Message) AppendUnknownFields(b []byte) { m.unknown = append(m.unknown, b...) }
