package schema

import "strconv"

// FieldDescriptor describes a single field of a message.
//
// FieldDescriptors reference message/enum types by fully-qualified name
// (TypeName); the resolved pointer (Message/Enum) is filled in by
// FileBuilder.Build when the target is declared in the same file, and by the
// type registry during registration otherwise. The descriptor tree itself stays acyclic;
// only the reference graph — resolved lazily — may contain cycles, as with
// a self-referential tree node message.
type FieldDescriptor struct {
	name        Name
	number      FieldNumber
	jsonName    string
	hasJSONName bool
	kind        Kind
	typeName    FullName // valid iff kind is Message, Enum, or Group

	cardinality Cardinality
	parent      *MessageDescriptor
	oneof       *OneofDescriptor

	isMap       bool
	mapKeyKind  Kind
	mapValField *FieldDescriptor // synthetic "value" field info, see MapValueField

	resolvedMessage *MessageDescriptor
	resolvedEnum    *EnumDescriptor

	opaqueOptions []byte // unrecognized FieldOptions sub-fields, preserved verbatim
}

// Name returns the field's simple name, e.g. "name".
func (f *FieldDescriptor) Name() Name { return f.name }

// Number returns the field's wire number.
func (f *FieldDescriptor) Number() FieldNumber { return f.number }

// JSONName returns the field's JSON name, defaulting to Name if unset.
func (f *FieldDescriptor) JSONName() string {
	if f.hasJSONName {
		return f.jsonName
	}
	return string(f.name)
}

// HasJSONName reports whether an explicit JSON name was set.
func (f *FieldDescriptor) HasJSONName() bool { return f.hasJSONName }

// Kind returns the field's basic type.
func (f *FieldDescriptor) Kind() Kind { return f.kind }

// TypeName returns the fully-qualified name of the referenced message or
// enum type. It is only meaningful when Kind is Message, Enum, or Group.
func (f *FieldDescriptor) TypeName() FullName { return f.typeName }

// Cardinality returns the field's multiplicity.
func (f *FieldDescriptor) Cardinality() Cardinality { return f.cardinality }

// IsRepeated reports whether the field is repeated (includes map fields).
func (f *FieldDescriptor) IsRepeated() bool { return f.cardinality == Repeated }

// IsRequired reports whether the field is a proto2 required field.
func (f *FieldDescriptor) IsRequired() bool { return f.cardinality == Required }

// IsOptional reports whether the field is a singular, non-required field.
func (f *FieldDescriptor) IsOptional() bool { return f.cardinality == Optional }

// Parent returns the owning MessageDescriptor.
func (f *FieldDescriptor) Parent() *MessageDescriptor { return f.parent }

// ContainingOneof returns the oneof this field belongs to, or nil.
func (f *FieldDescriptor) ContainingOneof() *OneofDescriptor { return f.oneof }

// IsMap reports whether this field represents a map: repeated,
// message-typed, referencing a synthetic map-entry message.
func (f *FieldDescriptor) IsMap() bool { return f.isMap }

// MapKeyKind returns the scalar kind of the map key. Only valid if IsMap.
func (f *FieldDescriptor) MapKeyKind() Kind { return f.mapKeyKind }

// MapValueField returns the synthetic "value" field descriptor (name=
// "value", number=2) of the map-entry message, carrying the value's kind
// and, for message-typed maps, its resolved MessageDescriptor. Only valid
// if IsMap.
func (f *FieldDescriptor) MapValueField() *FieldDescriptor { return f.mapValField }

// Message returns the resolved MessageDescriptor for a Message/Group kind
// field, or nil if unresolved (e.g. the owning file has not yet been
// registered). See FieldDescriptor doc comment.
func (f *FieldDescriptor) Message() *MessageDescriptor { return f.resolvedMessage }

// Enum returns the resolved EnumDescriptor for an Enum kind field, or nil
// if unresolved.
func (f *FieldDescriptor) Enum() *EnumDescriptor { return f.resolvedEnum }

// IsResolved reports whether a Message/Enum-kind field's type reference has
// been bound to a concrete descriptor.
func (f *FieldDescriptor) IsResolved() bool {
	switch f.kind {
	case MessageKind, GroupKind:
		return f.resolvedMessage != nil
	case EnumKind:
		return f.resolvedEnum != nil
	default:
		return true
	}
}

// BindMessage sets the resolved message type for a Message/Group-kind field.
// It exists for the type registry to call once a cross-file reference is
// resolvable; ordinary callers never need it.
func (f *FieldDescriptor) BindMessage(md *MessageDescriptor) { f.resolvedMessage = md }

// BindEnum sets the resolved enum type for an Enum-kind field. See BindMessage.
func (f *FieldDescriptor) BindEnum(ed *EnumDescriptor) { f.resolvedEnum = ed }

func (f *FieldDescriptor) bindMessage(md *MessageDescriptor) { f.resolvedMessage = md }
func (f *FieldDescriptor) bindEnum(ed *EnumDescriptor)       { f.resolvedEnum = ed }

// OpaqueOptions returns the raw wire bytes of any FieldOptions sub-fields
// this module does not interpret (everything but packed), preserved so the
// bridge's round trip is lossless for options it doesn't understand.
func (f *FieldDescriptor) OpaqueOptions() []byte { return f.opaqueOptions }

func (f *FieldDescriptor) String() string {
	return "field " + string(f.parent.fullName) + "." + string(f.name) + " = " + strconv.Itoa(int(f.number))
}
