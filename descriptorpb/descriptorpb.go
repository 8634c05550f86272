// Package descriptorpb defines the canonical wire representation of .proto
// descriptors themselves: the subset of google/protobuf/descriptor.proto
// needed to serialize and deserialize a schema package descriptor tree
// losslessly. Field numbers match the public descriptor.proto so that bytes
// produced here interoperate with any standard protobuf toolchain, even
// though this module never links protoc or code generation
// (types/descriptor/stub.go in the reference module forwards to the
// equivalent generated types; here they are hand-written since no codegen
// is involved).
package descriptorpb

// FieldDescriptorProto_Type enumerates the wire-level scalar/message/enum
// kinds of a field, using the same numeric values as descriptor.proto.
type FieldDescriptorProto_Type int32

const (
	TYPE_DOUBLE   FieldDescriptorProto_Type = 1
	TYPE_FLOAT    FieldDescriptorProto_Type = 2
	TYPE_INT64    FieldDescriptorProto_Type = 3
	TYPE_UINT64   FieldDescriptorProto_Type = 4
	TYPE_INT32    FieldDescriptorProto_Type = 5
	TYPE_FIXED64  FieldDescriptorProto_Type = 6
	TYPE_FIXED32  FieldDescriptorProto_Type = 7
	TYPE_BOOL     FieldDescriptorProto_Type = 8
	TYPE_STRING   FieldDescriptorProto_Type = 9
	TYPE_GROUP    FieldDescriptorProto_Type = 10
	TYPE_MESSAGE  FieldDescriptorProto_Type = 11
	TYPE_BYTES    FieldDescriptorProto_Type = 12
	TYPE_UINT32   FieldDescriptorProto_Type = 13
	TYPE_ENUM     FieldDescriptorProto_Type = 14
	TYPE_SFIXED32 FieldDescriptorProto_Type = 15
	TYPE_SFIXED64 FieldDescriptorProto_Type = 16
	TYPE_SINT32   FieldDescriptorProto_Type = 17
	TYPE_SINT64   FieldDescriptorProto_Type = 18
)

// FieldDescriptorProto_Label enumerates a field's cardinality.
type FieldDescriptorProto_Label int32

const (
	LABEL_OPTIONAL FieldDescriptorProto_Label = 1
	LABEL_REQUIRED FieldDescriptorProto_Label = 2
	LABEL_REPEATED FieldDescriptorProto_Label = 3
)

// FileDescriptorProto is the top-level serialized form of one .proto file.
type FileDescriptorProto struct {
	Name        *string
	Package     *string
	Dependency  []string
	MessageType []*DescriptorProto
	EnumType    []*EnumDescriptorProto
	Service     []*ServiceDescriptorProto
	Options     *FileOptions
	Syntax      *string
}

func (m *FileDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *FileDescriptorProto) GetPackage() string {
	if m == nil || m.Package == nil {
		return ""
	}
	return *m.Package
}

func (m *FileDescriptorProto) GetSyntax() string {
	if m == nil || m.Syntax == nil {
		return ""
	}
	return *m.Syntax
}

func (m *FileDescriptorProto) GetOptions() *FileOptions {
	if m == nil {
		return nil
	}
	return m.Options
}

// FileOptions carries file-level options. This module interprets none of
// them; every sub-field is preserved opaquely so a round trip through the
// bridge doesn't silently drop options it doesn't understand.
type FileOptions struct {
	Uninterpreted []byte
}

func (o *FileOptions) GetUninterpreted() []byte {
	if o == nil {
		return nil
	}
	return o.Uninterpreted
}

// DescriptorProto is the serialized form of a message type.
type DescriptorProto struct {
	Name            *string
	Field           []*FieldDescriptorProto
	NestedType      []*DescriptorProto
	EnumType        []*EnumDescriptorProto
	ExtensionRange  []*DescriptorProto_ExtensionRange
	OneofDecl       []*OneofDescriptorProto
	Options         *MessageOptions
}

func (m *DescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *DescriptorProto) GetOptions() *MessageOptions {
	if m == nil {
		return nil
	}
	return m.Options
}

// DescriptorProto_ExtensionRange is a [start, end) proto2 extension number
// range, structural-only in this module.
type DescriptorProto_ExtensionRange struct {
	Start *int32
	End   *int32
}

// MessageOptions carries the handful of message-level options this module
// interprets; every other sub-field is preserved opaquely in Uninterpreted
// rather than dropped.
type MessageOptions struct {
	MapEntry      *bool
	Uninterpreted []byte
}

func (o *MessageOptions) GetMapEntry() bool {
	if o == nil || o.MapEntry == nil {
		return false
	}
	return *o.MapEntry
}

func (o *MessageOptions) GetUninterpreted() []byte {
	if o == nil {
		return nil
	}
	return o.Uninterpreted
}

// OneofDescriptorProto names one oneof group declared on the enclosing
// message.
type OneofDescriptorProto struct {
	Name *string
}

func (m *OneofDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

// FieldDescriptorProto is the serialized form of a single message field.
type FieldDescriptorProto struct {
	Name       *string
	Number     *int32
	Label      *FieldDescriptorProto_Label
	Type       *FieldDescriptorProto_Type
	TypeName   *string
	OneofIndex *int32
	JsonName   *string
	Options    *FieldOptions
}

func (m *FieldDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *FieldDescriptorProto) GetNumber() int32 {
	if m == nil || m.Number == nil {
		return 0
	}
	return *m.Number
}

func (m *FieldDescriptorProto) GetLabel() FieldDescriptorProto_Label {
	if m == nil || m.Label == nil {
		return LABEL_OPTIONAL
	}
	return *m.Label
}

func (m *FieldDescriptorProto) GetType() FieldDescriptorProto_Type {
	if m == nil || m.Type == nil {
		return 0
	}
	return *m.Type
}

func (m *FieldDescriptorProto) GetTypeName() string {
	if m == nil || m.TypeName == nil {
		return ""
	}
	return *m.TypeName
}

func (m *FieldDescriptorProto) GetOneofIndex() int32 {
	if m == nil || m.OneofIndex == nil {
		return 0
	}
	return *m.OneofIndex
}

func (m *FieldDescriptorProto) HasOneofIndex() bool {
	return m != nil && m.OneofIndex != nil
}

func (m *FieldDescriptorProto) GetJsonName() string {
	if m == nil || m.JsonName == nil {
		return ""
	}
	return *m.JsonName
}

func (m *FieldDescriptorProto) GetOptions() *FieldOptions {
	if m == nil {
		return nil
	}
	return m.Options
}

// FieldOptions carries the one field-level option this module interprets;
// every other sub-field is preserved opaquely in Uninterpreted.
type FieldOptions struct {
	Packed        *bool
	Uninterpreted []byte
}

func (o *FieldOptions) GetPacked() bool {
	if o == nil || o.Packed == nil {
		return false
	}
	return *o.Packed
}

func (o *FieldOptions) GetUninterpreted() []byte {
	if o == nil {
		return nil
	}
	return o.Uninterpreted
}

// EnumDescriptorProto is the serialized form of an enum type.
type EnumDescriptorProto struct {
	Name    *string
	Value   []*EnumValueDescriptorProto
	Options *EnumOptions
}

func (m *EnumDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *EnumDescriptorProto) GetOptions() *EnumOptions {
	if m == nil {
		return nil
	}
	return m.Options
}

// EnumOptions carries the one enum-level option this module interprets;
// every other sub-field is preserved opaquely in Uninterpreted.
type EnumOptions struct {
	AllowAlias    *bool
	Uninterpreted []byte
}

func (o *EnumOptions) GetAllowAlias() bool {
	if o == nil || o.AllowAlias == nil {
		return false
	}
	return *o.AllowAlias
}

func (o *EnumOptions) GetUninterpreted() []byte {
	if o == nil {
		return nil
	}
	return o.Uninterpreted
}

// EnumValueDescriptorProto is one named constant of an enum.
type EnumValueDescriptorProto struct {
	Name   *string
	Number *int32
}

func (m *EnumValueDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *EnumValueDescriptorProto) GetNumber() int32 {
	if m == nil || m.Number == nil {
		return 0
	}
	return *m.Number
}

// ServiceDescriptorProto is the serialized form of an RPC service.
type ServiceDescriptorProto struct {
	Name   *string
	Method []*MethodDescriptorProto
}

func (m *ServiceDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

// MethodDescriptorProto is the serialized form of a single RPC method.
type MethodDescriptorProto struct {
	Name             *string
	InputType        *string
	OutputType       *string
	ClientStreaming  *bool
	ServerStreaming  *bool
}

func (m *MethodDescriptorProto) GetName() string {
	if m == nil || m.Name == nil {
		return ""
	}
	return *m.Name
}

func (m *MethodDescriptorProto) GetInputType() string {
	if m == nil || m.InputType == nil {
		return ""
	}
	return *m.InputType
}

func (m *MethodDescriptorProto) GetOutputType() string {
	if m == nil || m.OutputType == nil {
		return ""
	}
	return *m.OutputType
}

func (m *MethodDescriptorProto) GetClientStreaming() bool {
	return m != nil && m.ClientStreaming != nil && *m.ClientStreaming
}

func (m *MethodDescriptorProto) GetServerStreaming() bool {
	return m != nil && m.ServerStreaming != nil && *m.ServerStreaming
}

func boolPtr(b bool) *bool       { return &b }
func int32Ptr(i int32) *int32    { return &i }
func stringPtr(s string) *string { return &s }
