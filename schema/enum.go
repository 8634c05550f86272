package schema

// EnumDescriptor describes an enum type: a name plus ordered values, each
// with a simple name and a 32-bit signed number.
type EnumDescriptor struct {
	name       Name
	fullName   FullName
	file       *FileDescriptor
	parent     *MessageDescriptor // nil if declared at file scope
	values     []*EnumValueDescriptor
	byName     map[Name]*EnumValueDescriptor
	byNumber   map[EnumNumber]*EnumValueDescriptor // first-defined wins on aliasing
	allowAlias bool

	opaqueOptions []byte // unrecognized EnumOptions sub-fields, preserved verbatim
}

// Name returns the enum's simple name.
func (e *EnumDescriptor) Name() Name { return e.name }

// FullName returns the enum's fully-qualified name.
func (e *EnumDescriptor) FullName() FullName { return e.fullName }

// File returns the owning file.
func (e *EnumDescriptor) File() *FileDescriptor { return e.file }

// Parent returns the enclosing message, or nil if file-scoped.
func (e *EnumDescriptor) Parent() *MessageDescriptor { return e.parent }

// Values returns the enum's values in declaration order.
func (e *EnumDescriptor) Values() []*EnumValueDescriptor { return e.values }

// ValueByName looks up a value by its simple name.
func (e *EnumDescriptor) ValueByName(name Name) *EnumValueDescriptor { return e.byName[name] }

// ValueByNumber looks up a value by number. If multiple values share a
// number (aliasing, only legal when AllowAlias is set), the first declared
// one is returned.
func (e *EnumDescriptor) ValueByNumber(n EnumNumber) *EnumValueDescriptor { return e.byNumber[n] }

// AllowAlias reports whether this enum permits multiple value names to
// share the same number.
func (e *EnumDescriptor) AllowAlias() bool { return e.allowAlias }

// OpaqueOptions returns the raw wire bytes of any EnumOptions sub-fields
// this module does not interpret (everything but allow_alias), preserved so
// the bridge's round trip is lossless for options it doesn't understand.
func (e *EnumDescriptor) OpaqueOptions() []byte { return e.opaqueOptions }

func (e *EnumDescriptor) String() string {
	return "enum " + string(e.fullName)
}

// EnumValueDescriptor describes a single named constant of an enum.
type EnumValueDescriptor struct {
	name   Name
	number EnumNumber
	parent *EnumDescriptor
}

// Name returns the value's simple name, e.g. "FOO_VALUE".
func (v *EnumValueDescriptor) Name() Name { return v.name }

// Number returns the value's signed 32-bit number.
func (v *EnumValueDescriptor) Number() EnumNumber { return v.number }

// Parent returns the owning enum.
func (v *EnumValueDescriptor) Parent() *EnumDescriptor { return v.parent }
