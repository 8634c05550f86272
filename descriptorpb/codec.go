package descriptorpb

import (
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/wire"
)

// Field numbers match google/protobuf/descriptor.proto exactly, so that the
// bytes this package produces are readable by any standard protobuf
// implementation even though nothing here was generated by protoc.
const (
	fileNameField       wire.Number = 1
	filePackageField    wire.Number = 2
	fileDependencyField wire.Number = 3
	fileMessageField    wire.Number = 4
	fileEnumField       wire.Number = 5
	fileServiceField    wire.Number = 6
	fileOptionsField    wire.Number = 8
	fileSyntaxField     wire.Number = 12

	msgNameField            wire.Number = 1
	msgFieldField           wire.Number = 2
	msgNestedTypeField      wire.Number = 3
	msgEnumTypeField        wire.Number = 4
	msgExtensionRangeField  wire.Number = 5
	msgOptionsField         wire.Number = 7
	msgOneofDeclField       wire.Number = 8

	extRangeStartField wire.Number = 1
	extRangeEndField   wire.Number = 2

	msgOptMapEntryField wire.Number = 7

	oneofNameField wire.Number = 1

	fieldNameField       wire.Number = 1
	fieldNumberField     wire.Number = 3
	fieldLabelField      wire.Number = 4
	fieldTypeField       wire.Number = 5
	fieldTypeNameField   wire.Number = 6
	fieldOptionsField    wire.Number = 8
	fieldOneofIndexField wire.Number = 9
	fieldJSONNameField   wire.Number = 10

	fieldOptPackedField wire.Number = 2

	enumNameField    wire.Number = 1
	enumValueField   wire.Number = 2
	enumOptionsField wire.Number = 3

	enumOptAllowAliasField wire.Number = 2

	enumValueNameField   wire.Number = 1
	enumValueNumberField wire.Number = 2

	svcNameField   wire.Number = 1
	svcMethodField wire.Number = 2

	methodNameField            wire.Number = 1
	methodInputTypeField       wire.Number = 2
	methodOutputTypeField      wire.Number = 3
	methodClientStreamingField wire.Number = 5
	methodServerStreamingField wire.Number = 6
)

func appendStringField(b []byte, num wire.Number, v *string) []byte {
	if v == nil {
		return b
	}
	b = wire.AppendTag(b, num, wire.BytesType)
	return wire.AppendString(b, *v)
}

func appendVarintField(b []byte, num wire.Number, v int32) []byte {
	b = wire.AppendTag(b, num, wire.VarintType)
	return wire.AppendVarint(b, uint64(uint32(v)))
}

func appendBoolField(b []byte, num wire.Number, v *bool) []byte {
	if v == nil {
		return b
	}
	b = wire.AppendTag(b, num, wire.VarintType)
	if *v {
		return wire.AppendVarint(b, 1)
	}
	return wire.AppendVarint(b, 0)
}

func appendMessageField(b []byte, num wire.Number, payload []byte) []byte {
	b = wire.AppendTag(b, num, wire.BytesType)
	return wire.AppendBytes(b, payload)
}

// Marshal serializes f into descriptor.proto wire format.
func (f *FileDescriptorProto) Marshal() ([]byte, error) {
	var b []byte
	b = appendStringField(b, fileNameField, f.Name)
	b = appendStringField(b, filePackageField, f.Package)
	for _, dep := range f.Dependency {
		b = wire.AppendTag(b, fileDependencyField, wire.BytesType)
		b = wire.AppendString(b, dep)
	}
	for _, m := range f.MessageType {
		payload, err := m.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessageField(b, fileMessageField, payload)
	}
	for _, e := range f.EnumType {
		payload, err := e.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessageField(b, fileEnumField, payload)
	}
	for _, s := range f.Service {
		payload, err := s.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessageField(b, fileServiceField, payload)
	}
	if f.Options != nil {
		b = appendMessageField(b, fileOptionsField, f.Options.marshal())
	}
	b = appendStringField(b, fileSyntaxField, f.Syntax)
	return b, nil
}

// Unmarshal parses descriptor.proto wire bytes into f.
func (f *FileDescriptorProto) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case fileNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			f.Name = &s
			b = b[n:]
		case filePackageField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			f.Package = &s
			b = b[n:]
		case fileDependencyField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			f.Dependency = append(f.Dependency, s)
			b = b[n:]
		case fileMessageField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			m := &DescriptorProto{}
			if err := m.Unmarshal(payload); err != nil {
				return err
			}
			f.MessageType = append(f.MessageType, m)
			b = b[n:]
		case fileEnumField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			e := &EnumDescriptorProto{}
			if err := e.Unmarshal(payload); err != nil {
				return err
			}
			f.EnumType = append(f.EnumType, e)
			b = b[n:]
		case fileServiceField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			s := &ServiceDescriptorProto{}
			if err := s.Unmarshal(payload); err != nil {
				return err
			}
			f.Service = append(f.Service, s)
			b = b[n:]
		case fileOptionsField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			opts := &FileOptions{}
			if err := opts.unmarshal(payload); err != nil {
				return err
			}
			f.Options = opts
			b = b[n:]
		case fileSyntaxField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			f.Syntax = &s
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// Marshal serializes m into descriptor.proto wire format.
func (m *DescriptorProto) Marshal() ([]byte, error) {
	var b []byte
	b = appendStringField(b, msgNameField, m.Name)
	for _, fd := range m.Field {
		payload, err := fd.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessageField(b, msgFieldField, payload)
	}
	for _, nt := range m.NestedType {
		payload, err := nt.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessageField(b, msgNestedTypeField, payload)
	}
	for _, et := range m.EnumType {
		payload, err := et.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessageField(b, msgEnumTypeField, payload)
	}
	if m.Options != nil {
		payload := m.Options.marshal()
		b = appendMessageField(b, msgOptionsField, payload)
	}
	for _, er := range m.ExtensionRange {
		payload := er.marshal()
		b = appendMessageField(b, msgExtensionRangeField, payload)
	}
	for _, od := range m.OneofDecl {
		payload := od.marshal()
		b = appendMessageField(b, msgOneofDeclField, payload)
	}
	return b, nil
}

// Unmarshal parses descriptor.proto wire bytes into m.
func (m *DescriptorProto) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case msgNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.Name = &s
			b = b[n:]
		case msgFieldField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			fd := &FieldDescriptorProto{}
			if err := fd.Unmarshal(payload); err != nil {
				return err
			}
			m.Field = append(m.Field, fd)
			b = b[n:]
		case msgNestedTypeField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			nt := &DescriptorProto{}
			if err := nt.Unmarshal(payload); err != nil {
				return err
			}
			m.NestedType = append(m.NestedType, nt)
			b = b[n:]
		case msgEnumTypeField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			et := &EnumDescriptorProto{}
			if err := et.Unmarshal(payload); err != nil {
				return err
			}
			m.EnumType = append(m.EnumType, et)
			b = b[n:]
		case msgOptionsField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			opts := &MessageOptions{}
			if err := opts.unmarshal(payload); err != nil {
				return err
			}
			m.Options = opts
			b = b[n:]
		case msgExtensionRangeField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			er := &DescriptorProto_ExtensionRange{}
			if err := er.unmarshal(payload); err != nil {
				return err
			}
			m.ExtensionRange = append(m.ExtensionRange, er)
			b = b[n:]
		case msgOneofDeclField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			od := &OneofDescriptorProto{}
			if err := od.unmarshal(payload); err != nil {
				return err
			}
			m.OneofDecl = append(m.OneofDecl, od)
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

func (er *DescriptorProto_ExtensionRange) marshal() []byte {
	var b []byte
	if er.Start != nil {
		b = appendVarintField(b, extRangeStartField, *er.Start)
	}
	if er.End != nil {
		b = appendVarintField(b, extRangeEndField, *er.End)
	}
	return b
}

func (er *DescriptorProto_ExtensionRange) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case extRangeStartField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			start := int32(v)
			er.Start = &start
			b = b[n:]
		case extRangeEndField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			end := int32(v)
			er.End = &end
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

func (o *MessageOptions) marshal() []byte {
	var b []byte
	b = appendBoolField(b, msgOptMapEntryField, o.MapEntry)
	b = append(b, o.Uninterpreted...)
	return b
}

func (o *MessageOptions) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case msgOptMapEntryField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			val := v != 0
			o.MapEntry = &val
			b = b[n:]
		default:
			n, err := captureUnknownOption(&o.Uninterpreted, num, typ, b)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

func (od *OneofDescriptorProto) marshal() []byte {
	return appendStringField(nil, oneofNameField, od.Name)
}

func (od *OneofDescriptorProto) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case oneofNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			od.Name = &s
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// Marshal serializes m into descriptor.proto wire format.
func (m *FieldDescriptorProto) Marshal() ([]byte, error) {
	var b []byte
	b = appendStringField(b, fieldNameField, m.Name)
	if m.Number != nil {
		b = appendVarintField(b, fieldNumberField, *m.Number)
	}
	if m.Label != nil {
		b = appendVarintField(b, fieldLabelField, int32(*m.Label))
	}
	if m.Type != nil {
		b = appendVarintField(b, fieldTypeField, int32(*m.Type))
	}
	b = appendStringField(b, fieldTypeNameField, m.TypeName)
	if m.Options != nil {
		b = appendMessageField(b, fieldOptionsField, m.Options.marshal())
	}
	if m.OneofIndex != nil {
		b = appendVarintField(b, fieldOneofIndexField, *m.OneofIndex)
	}
	b = appendStringField(b, fieldJSONNameField, m.JsonName)
	return b, nil
}

// Unmarshal parses descriptor.proto wire bytes into m.
func (m *FieldDescriptorProto) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case fieldNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.Name = &s
			b = b[n:]
		case fieldNumberField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			num := int32(v)
			m.Number = &num
			b = b[n:]
		case fieldLabelField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			lbl := FieldDescriptorProto_Label(v)
			m.Label = &lbl
			b = b[n:]
		case fieldTypeField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			t := FieldDescriptorProto_Type(v)
			m.Type = &t
			b = b[n:]
		case fieldTypeNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.TypeName = &s
			b = b[n:]
		case fieldOptionsField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			opts := &FieldOptions{}
			if err := opts.unmarshal(payload); err != nil {
				return err
			}
			m.Options = opts
			b = b[n:]
		case fieldOneofIndexField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			idx := int32(v)
			m.OneofIndex = &idx
			b = b[n:]
		case fieldJSONNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.JsonName = &s
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

func (o *FieldOptions) marshal() []byte {
	b := appendBoolField(nil, fieldOptPackedField, o.Packed)
	return append(b, o.Uninterpreted...)
}

func (o *FieldOptions) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case fieldOptPackedField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			val := v != 0
			o.Packed = &val
			b = b[n:]
		default:
			n, err := captureUnknownOption(&o.Uninterpreted, num, typ, b)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// Marshal serializes m into descriptor.proto wire format.
func (m *EnumDescriptorProto) Marshal() ([]byte, error) {
	var b []byte
	b = appendStringField(b, enumNameField, m.Name)
	for _, v := range m.Value {
		payload := v.marshal()
		b = appendMessageField(b, enumValueField, payload)
	}
	if m.Options != nil {
		b = appendMessageField(b, enumOptionsField, m.Options.marshal())
	}
	return b, nil
}

// Unmarshal parses descriptor.proto wire bytes into m.
func (m *EnumDescriptorProto) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case enumNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.Name = &s
			b = b[n:]
		case enumValueField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			v := &EnumValueDescriptorProto{}
			if err := v.unmarshal(payload); err != nil {
				return err
			}
			m.Value = append(m.Value, v)
			b = b[n:]
		case enumOptionsField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			opts := &EnumOptions{}
			if err := opts.unmarshal(payload); err != nil {
				return err
			}
			m.Options = opts
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

func (o *EnumOptions) marshal() []byte {
	b := appendBoolField(nil, enumOptAllowAliasField, o.AllowAlias)
	return append(b, o.Uninterpreted...)
}

func (o *EnumOptions) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case enumOptAllowAliasField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			val := v != 0
			o.AllowAlias = &val
			b = b[n:]
		default:
			n, err := captureUnknownOption(&o.Uninterpreted, num, typ, b)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

func (o *FileOptions) marshal() []byte {
	return append([]byte(nil), o.Uninterpreted...)
}

func (o *FileOptions) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		n, err = captureUnknownOption(&o.Uninterpreted, num, typ, b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func (v *EnumValueDescriptorProto) marshal() []byte {
	var b []byte
	b = appendStringField(b, enumValueNameField, v.Name)
	if v.Number != nil {
		b = appendVarintField(b, enumValueNumberField, *v.Number)
	}
	return b
}

func (v *EnumValueDescriptorProto) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case enumValueNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			v.Name = &s
			b = b[n:]
		case enumValueNumberField:
			val, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			num32 := int32(val)
			v.Number = &num32
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// Marshal serializes m into descriptor.proto wire format.
func (m *ServiceDescriptorProto) Marshal() ([]byte, error) {
	var b []byte
	b = appendStringField(b, svcNameField, m.Name)
	for _, method := range m.Method {
		payload, err := method.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessageField(b, svcMethodField, payload)
	}
	return b, nil
}

// Unmarshal parses descriptor.proto wire bytes into m.
func (m *ServiceDescriptorProto) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case svcNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.Name = &s
			b = b[n:]
		case svcMethodField:
			payload, n, err := consumeBytesField(b, typ)
			if err != nil {
				return err
			}
			method := &MethodDescriptorProto{}
			if err := method.Unmarshal(payload); err != nil {
				return err
			}
			m.Method = append(m.Method, method)
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// Marshal serializes m into descriptor.proto wire format.
func (m *MethodDescriptorProto) Marshal() ([]byte, error) {
	var b []byte
	b = appendStringField(b, methodNameField, m.Name)
	b = appendStringField(b, methodInputTypeField, m.InputType)
	b = appendStringField(b, methodOutputTypeField, m.OutputType)
	b = appendBoolField(b, methodClientStreamingField, m.ClientStreaming)
	b = appendBoolField(b, methodServerStreamingField, m.ServerStreaming)
	return b, nil
}

// Unmarshal parses descriptor.proto wire bytes into m.
func (m *MethodDescriptorProto) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return err
		}
		b = b[n:]
		switch num {
		case methodNameField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.Name = &s
			b = b[n:]
		case methodInputTypeField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.InputType = &s
			b = b[n:]
		case methodOutputTypeField:
			s, n, err := consumeString(b, typ)
			if err != nil {
				return err
			}
			m.OutputType = &s
			b = b[n:]
		case methodClientStreamingField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			val := v != 0
			m.ClientStreaming = &val
			b = b[n:]
		case methodServerStreamingField:
			v, n, err := consumeVarintField(b, typ)
			if err != nil {
				return err
			}
			val := v != 0
			m.ServerStreaming = &val
			b = b[n:]
		default:
			n, err := skipField(b, typ, num)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// --- low-level decode helpers shared across all Unmarshal methods ---

func consumeTag(b []byte) (wire.Number, wire.Type, int, error) {
	num, typ, n := wire.ConsumeTag(b)
	if n < 0 {
		return 0, 0, 0, wire.ParseError(n)
	}
	return num, typ, n, nil
}

func consumeString(b []byte, typ wire.Type) (string, int, error) {
	if typ != wire.BytesType {
		return "", 0, protoerr.New(protoerr.WireTypeMismatch, "expected bytes wire type for string field, got %v", typ)
	}
	v, n := wire.ConsumeBytes(b)
	if n < 0 {
		return "", 0, wire.ParseError(n)
	}
	return string(v), n, nil
}

func consumeBytesField(b []byte, typ wire.Type) ([]byte, int, error) {
	if typ != wire.BytesType {
		return nil, 0, protoerr.New(protoerr.WireTypeMismatch, "expected bytes wire type, got %v", typ)
	}
	v, n := wire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, wire.ParseError(n)
	}
	return v, n, nil
}

func consumeVarintField(b []byte, typ wire.Type) (uint64, int, error) {
	if typ != wire.VarintType {
		return 0, 0, protoerr.New(protoerr.WireTypeMismatch, "expected varint wire type, got %v", typ)
	}
	v, n := wire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, wire.ParseError(n)
	}
	return v, n, nil
}

// skipField advances past an unrecognized field so forward-compatible
// bytes from a richer descriptor.proto don't break Unmarshal.
func skipField(b []byte, typ wire.Type, num wire.Number) (int, error) {
	n := wire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, wire.ParseError(n)
	}
	return n, nil
}

// captureUnknownOption appends the verbatim tag+value bytes of an
// unrecognized option sub-field to dst and reports how many bytes of b were
// consumed, so an *Options.unmarshal can preserve options it doesn't
// interpret instead of discarding them via skipField.
func captureUnknownOption(dst *[]byte, num wire.Number, typ wire.Type, b []byte) (int, error) {
	n := wire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, wire.ParseError(n)
	}
	*dst = wire.AppendTag(*dst, num, typ)
	*dst = append(*dst, b[:n]...)
	return n, nil
}
