// Package bridge converts losslessly between the in-memory schema package
// descriptor model and the canonical descriptorpb wire form, grounded on
// reflect/protodesc/protodesc.go (bytes/proto -> descriptor) and
// reflect/protodesc/toproto.go (descriptor -> bytes/proto).
package bridge

import (
	"github.com/kalexmills/protodyn/descriptorpb"
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

// ToFileDescriptorProto converts a sealed schema.FileDescriptor into its
// descriptorpb wire representation, grounded on toproto.go's fileRaw
// builder.
func ToFileDescriptorProto(fd *schema.FileDescriptor) *descriptorpb.FileDescriptorProto {
	out := &descriptorpb.FileDescriptorProto{
		Name:       strPtr(fd.Path()),
		Dependency: fd.Dependencies(),
	}
	if fd.Package() != "" {
		out.Package = strPtr(string(fd.Package()))
	}
	out.Syntax = strPtr(fd.Syntax().String())
	if opaque := fd.OpaqueOptions(); len(opaque) > 0 {
		out.Options = &descriptorpb.FileOptions{Uninterpreted: opaque}
	}
	for _, m := range fd.Messages() {
		out.MessageType = append(out.MessageType, messageToProto(m))
	}
	for _, e := range fd.Enums() {
		out.EnumType = append(out.EnumType, enumToProto(e))
	}
	for _, s := range fd.Services() {
		out.Service = append(out.Service, serviceToProto(s))
	}
	return out
}

func messageToProto(m *schema.MessageDescriptor) *descriptorpb.DescriptorProto {
	out := &descriptorpb.DescriptorProto{Name: namePtr(m.Name())}
	oneofIndex := make(map[*schema.OneofDescriptor]int32, len(m.Oneofs()))
	for i, o := range m.Oneofs() {
		oneofIndex[o] = int32(i)
		out.OneofDecl = append(out.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: namePtr(o.Name())})
	}
	for _, f := range m.Fields() {
		out.Field = append(out.Field, fieldToProto(f, oneofIndex))
	}
	for _, nested := range m.Messages() {
		out.NestedType = append(out.NestedType, messageToProto(nested))
	}
	for _, e := range m.Enums() {
		out.EnumType = append(out.EnumType, enumToProto(e))
	}
	for _, r := range m.ExtensionRanges() {
		start, end := int32(r[0]), int32(r[1])
		out.ExtensionRange = append(out.ExtensionRange, &descriptorpb.DescriptorProto_ExtensionRange{
			Start: &start,
			End:   &end,
		})
	}
	opaque := m.OpaqueOptions()
	if m.IsMapEntry() || len(opaque) > 0 {
		opts := &descriptorpb.MessageOptions{Uninterpreted: opaque}
		if m.IsMapEntry() {
			opts.MapEntry = boolPtr(true)
		}
		out.Options = opts
	}
	return out
}

func fieldToProto(f *schema.FieldDescriptor, oneofIndex map[*schema.OneofDescriptor]int32) *descriptorpb.FieldDescriptorProto {
	num := int32(f.Number())
	out := &descriptorpb.FieldDescriptorProto{
		Name:   namePtr(f.Name()),
		Number: &num,
		Label:  labelPtr(f.Cardinality()),
		Type:   typePtr(f.Kind()),
	}
	if f.HasJSONName() {
		out.JsonName = strPtr(f.JSONName())
	}
	switch f.Kind() {
	case schema.MessageKind, schema.GroupKind, schema.EnumKind:
		out.TypeName = strPtr(string(f.TypeName()))
	}
	if o := f.ContainingOneof(); o != nil {
		idx := oneofIndex[o]
		out.OneofIndex = &idx
	}
	if opaque := f.OpaqueOptions(); len(opaque) > 0 {
		out.Options = &descriptorpb.FieldOptions{Uninterpreted: opaque}
	}
	return out
}

func enumToProto(e *schema.EnumDescriptor) *descriptorpb.EnumDescriptorProto {
	out := &descriptorpb.EnumDescriptorProto{Name: namePtr(e.Name())}
	opaque := e.OpaqueOptions()
	if e.AllowAlias() || len(opaque) > 0 {
		opts := &descriptorpb.EnumOptions{Uninterpreted: opaque}
		if e.AllowAlias() {
			opts.AllowAlias = boolPtr(true)
		}
		out.Options = opts
	}
	for _, v := range e.Values() {
		num := int32(v.Number())
		out.Value = append(out.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   namePtr(v.Name()),
			Number: &num,
		})
	}
	return out
}

func serviceToProto(s *schema.ServiceDescriptor) *descriptorpb.ServiceDescriptorProto {
	out := &descriptorpb.ServiceDescriptorProto{Name: namePtr(s.Name())}
	for _, method := range s.Methods() {
		out.Method = append(out.Method, &descriptorpb.MethodDescriptorProto{
			Name:            namePtr(method.Name()),
			InputType:       strPtr(string(method.InputTypeName())),
			OutputType:      strPtr(string(method.OutputTypeName())),
			ClientStreaming: boolPtrIf(method.IsStreamingClient()),
			ServerStreaming: boolPtrIf(method.IsStreamingServer()),
		})
	}
	return out
}

func labelPtr(c schema.Cardinality) *descriptorpb.FieldDescriptorProto_Label {
	var l descriptorpb.FieldDescriptorProto_Label
	switch c {
	case schema.Required:
		l = descriptorpb.LABEL_REQUIRED
	case schema.Repeated:
		l = descriptorpb.LABEL_REPEATED
	default:
		l = descriptorpb.LABEL_OPTIONAL
	}
	return &l
}

func typePtr(k schema.Kind) *descriptorpb.FieldDescriptorProto_Type {
	var t descriptorpb.FieldDescriptorProto_Type
	switch k {
	case schema.DoubleKind:
		t = descriptorpb.TYPE_DOUBLE
	case schema.FloatKind:
		t = descriptorpb.TYPE_FLOAT
	case schema.Int64Kind:
		t = descriptorpb.TYPE_INT64
	case schema.Uint64Kind:
		t = descriptorpb.TYPE_UINT64
	case schema.Int32Kind:
		t = descriptorpb.TYPE_INT32
	case schema.Fixed64Kind:
		t = descriptorpb.TYPE_FIXED64
	case schema.Fixed32Kind:
		t = descriptorpb.TYPE_FIXED32
	case schema.BoolKind:
		t = descriptorpb.TYPE_BOOL
	case schema.StringKind:
		t = descriptorpb.TYPE_STRING
	case schema.GroupKind:
		t = descriptorpb.TYPE_GROUP
	case schema.MessageKind:
		t = descriptorpb.TYPE_MESSAGE
	case schema.BytesKind:
		t = descriptorpb.TYPE_BYTES
	case schema.Uint32Kind:
		t = descriptorpb.TYPE_UINT32
	case schema.EnumKind:
		t = descriptorpb.TYPE_ENUM
	case schema.Sfixed32Kind:
		t = descriptorpb.TYPE_SFIXED32
	case schema.Sfixed64Kind:
		t = descriptorpb.TYPE_SFIXED64
	case schema.Sint32Kind:
		t = descriptorpb.TYPE_SINT32
	case schema.Sint64Kind:
		t = descriptorpb.TYPE_SINT64
	}
	return &t
}

func kindFromType(t descriptorpb.FieldDescriptorProto_Type) (schema.Kind, error) {
	switch t {
	case descriptorpb.TYPE_DOUBLE:
		return schema.DoubleKind, nil
	case descriptorpb.TYPE_FLOAT:
		return schema.FloatKind, nil
	case descriptorpb.TYPE_INT64:
		return schema.Int64Kind, nil
	case descriptorpb.TYPE_UINT64:
		return schema.Uint64Kind, nil
	case descriptorpb.TYPE_INT32:
		return schema.Int32Kind, nil
	case descriptorpb.TYPE_FIXED64:
		return schema.Fixed64Kind, nil
	case descriptorpb.TYPE_FIXED32:
		return schema.Fixed32Kind, nil
	case descriptorpb.TYPE_BOOL:
		return schema.BoolKind, nil
	case descriptorpb.TYPE_STRING:
		return schema.StringKind, nil
	case descriptorpb.TYPE_GROUP:
		return schema.GroupKind, nil
	case descriptorpb.TYPE_MESSAGE:
		return schema.MessageKind, nil
	case descriptorpb.TYPE_BYTES:
		return schema.BytesKind, nil
	case descriptorpb.TYPE_UINT32:
		return schema.Uint32Kind, nil
	case descriptorpb.TYPE_ENUM:
		return schema.EnumKind, nil
	case descriptorpb.TYPE_SFIXED32:
		return schema.Sfixed32Kind, nil
	case descriptorpb.TYPE_SFIXED64:
		return schema.Sfixed64Kind, nil
	case descriptorpb.TYPE_SINT32:
		return schema.Sint32Kind, nil
	case descriptorpb.TYPE_SINT64:
		return schema.Sint64Kind, nil
	default:
		return 0, protoerr.New(protoerr.UnsupportedFieldType, "unknown field type %d", t)
	}
}

func cardinalityFromLabel(l descriptorpb.FieldDescriptorProto_Label) schema.Cardinality {
	switch l {
	case descriptorpb.LABEL_REQUIRED:
		return schema.Required
	case descriptorpb.LABEL_REPEATED:
		return schema.Repeated
	default:
		return schema.Optional
	}
}

func strPtr(s string) *string { return &s }
func namePtr(n schema.Name) *string {
	s := string(n)
	return &s
}
func boolPtr(b bool) *bool { return &b }
func boolPtrIf(b bool) *bool {
	if !b {
		return nil
	}
	return &b
}
