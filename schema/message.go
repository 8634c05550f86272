package schema

// MessageDescriptor describes a message type. Its FullName is
// the package prefix plus any chain of enclosing message names, joined by
// ".". Fields are indexed both by number and by name for O(1) lookup.
type MessageDescriptor struct {
	name     Name
	fullName FullName
	file     *FileDescriptor
	parent   *MessageDescriptor // nil if declared at file scope

	fields         []*FieldDescriptor
	fieldsByNumber map[FieldNumber]*FieldDescriptor
	fieldsByName   map[Name]*FieldDescriptor

	oneofs []*OneofDescriptor

	nestedMessages []*MessageDescriptor
	nestedEnums    []*EnumDescriptor

	isMapEntry      bool
	extensionRanges [][2]FieldNumber

	sealed bool

	opaqueOptions []byte // unrecognized MessageOptions sub-fields, preserved verbatim
}

// Name returns the message's simple name, e.g. "Any".
func (m *MessageDescriptor) Name() Name { return m.name }

// FullName returns the message's fully-qualified name.
func (m *MessageDescriptor) FullName() FullName { return m.fullName }

// File returns the FileDescriptor that (transitively) owns this message.
func (m *MessageDescriptor) File() *FileDescriptor { return m.file }

// Parent returns the enclosing MessageDescriptor, or nil if this message is
// declared at file scope.
func (m *MessageDescriptor) Parent() *MessageDescriptor { return m.parent }

// Fields returns the message's fields in declaration order.
func (m *MessageDescriptor) Fields() []*FieldDescriptor { return m.fields }

// FieldByNumber looks up a field by number, returning nil if absent.
func (m *MessageDescriptor) FieldByNumber(n FieldNumber) *FieldDescriptor {
	return m.fieldsByNumber[n]
}

// FieldByName looks up a field by its simple name, returning nil if absent.
func (m *MessageDescriptor) FieldByName(name Name) *FieldDescriptor {
	return m.fieldsByName[name]
}

// Oneofs returns the message's oneof declarations.
func (m *MessageDescriptor) Oneofs() []*OneofDescriptor { return m.oneofs }

// Messages returns nested message declarations in declaration order.
func (m *MessageDescriptor) Messages() []*MessageDescriptor { return m.nestedMessages }

// Enums returns nested enum declarations in declaration order.
func (m *MessageDescriptor) Enums() []*EnumDescriptor { return m.nestedEnums }

// IsMapEntry reports whether this is a synthetic map-entry message: it
// carries the map_entry option and has exactly two fields numbered 1 and 2
// named "key" and "value".
func (m *MessageDescriptor) IsMapEntry() bool { return m.isMapEntry }

// ExtensionRanges returns the proto2 extension number ranges declared on
// this message (structural only: no extension storage is implemented).
func (m *MessageDescriptor) ExtensionRanges() [][2]FieldNumber { return m.extensionRanges }

// IsSealed reports whether this message (and its owning file) is immutable.
func (m *MessageDescriptor) IsSealed() bool { return m.sealed }

// OpaqueOptions returns the raw wire bytes of any MessageOptions sub-fields
// this module does not interpret (everything but map_entry), preserved so
// the bridge's round trip is lossless for options it doesn't understand.
func (m *MessageDescriptor) OpaqueOptions() []byte { return m.opaqueOptions }

func (m *MessageDescriptor) String() string {
	return "message " + string(m.fullName)
}

// OneofDescriptor describes a oneof field group within a message: setting
// one member field clears any other member currently populated
// (grounded on dynamicpb.Message.clearOtherOneofFields).
type OneofDescriptor struct {
	name   Name
	parent *MessageDescriptor
	fields []*FieldDescriptor
}

// Name returns the oneof's simple name.
func (o *OneofDescriptor) Name() Name { return o.name }

// Parent returns the owning message.
func (o *OneofDescriptor) Parent() *MessageDescriptor { return o.parent }

// Fields returns the member fields of this oneof, in declaration order.
func (o *OneofDescriptor) Fields() []*FieldDescriptor { return o.fields }
