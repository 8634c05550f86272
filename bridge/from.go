package bridge

import (
	"github.com/kalexmills/protodyn/descriptorpb"
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

// FromFileDescriptorProto converts a descriptorpb.FileDescriptorProto back
// into a sealed schema.FileDescriptor, grounded on protodesc.go's NewFile.
// Cross-file type references are left unresolved; callers register the
// result with a registry.TypeRegistry to complete resolution.
func FromFileDescriptorProto(in *descriptorpb.FileDescriptorProto) (*schema.FileDescriptor, error) {
	fb := &schema.FileBuilder{
		Path:          in.GetName(),
		Package:       schema.FullName(in.GetPackage()),
		Syntax:        syntaxFromString(in.GetSyntax()),
		Dependencies:  append([]string(nil), in.Dependency...),
		OpaqueOptions: in.GetOptions().GetUninterpreted(),
	}
	for _, m := range in.MessageType {
		mb, err := messageFromProto(m)
		if err != nil {
			return nil, err
		}
		fb.Messages = append(fb.Messages, mb)
	}
	for _, e := range in.EnumType {
		eb, err := enumFromProto(e)
		if err != nil {
			return nil, err
		}
		fb.Enums = append(fb.Enums, eb)
	}
	for _, s := range in.Service {
		fb.Services = append(fb.Services, serviceFromProto(s))
	}
	return fb.Build()
}

func syntaxFromString(s string) schema.Syntax {
	if s == "proto3" {
		return schema.Proto3
	}
	return schema.Proto2
}

func messageFromProto(in *descriptorpb.DescriptorProto) (*schema.MessageBuilder, error) {
	mb := &schema.MessageBuilder{
		Name:          schema.Name(in.GetName()),
		OpaqueOptions: in.GetOptions().GetUninterpreted(),
	}
	if in.GetOptions().GetMapEntry() {
		mb.IsMapEntry = true
	}
	for _, o := range in.OneofDecl {
		mb.OneofNames = append(mb.OneofNames, schema.Name(o.GetName()))
	}
	for _, f := range in.Field {
		fb, err := fieldFromProto(f, in.OneofDecl)
		if err != nil {
			return nil, err
		}
		mb.Fields = append(mb.Fields, fb)
	}
	for _, nt := range in.NestedType {
		nested, err := messageFromProto(nt)
		if err != nil {
			return nil, err
		}
		mb.Messages = append(mb.Messages, nested)
	}
	for _, et := range in.EnumType {
		nested, err := enumFromProto(et)
		if err != nil {
			return nil, err
		}
		mb.Enums = append(mb.Enums, nested)
	}
	for _, r := range in.ExtensionRange {
		if r.Start == nil || r.End == nil {
			continue
		}
		mb.ExtensionRanges = append(mb.ExtensionRanges, [2]schema.FieldNumber{
			schema.FieldNumber(*r.Start), schema.FieldNumber(*r.End),
		})
	}
	return mb, nil
}

func fieldFromProto(in *descriptorpb.FieldDescriptorProto, oneofs []*descriptorpb.OneofDescriptorProto) (*schema.FieldBuilder, error) {
	kind, err := kindFromType(in.GetType())
	if err != nil {
		return nil, err
	}
	fb := &schema.FieldBuilder{
		Name:          schema.Name(in.GetName()),
		Number:        schema.FieldNumber(in.GetNumber()),
		Kind:          kind,
		TypeName:      schema.FullName(in.GetTypeName()),
		Cardinality:   cardinalityFromLabel(in.GetLabel()),
		OpaqueOptions: in.GetOptions().GetUninterpreted(),
	}
	if in.JsonName != nil {
		fb.HasJSONName = true
		fb.JSONName = in.GetJsonName()
	}
	if in.HasOneofIndex() {
		idx := int(in.GetOneofIndex())
		if idx < 0 || idx >= len(oneofs) {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "field %s: oneof_index %d out of range", in.GetName(), idx)
		}
		fb.OneofName = schema.Name(oneofs[idx].GetName())
	}
	return fb, nil
}

func enumFromProto(in *descriptorpb.EnumDescriptorProto) (*schema.EnumBuilder, error) {
	eb := &schema.EnumBuilder{
		Name:          schema.Name(in.GetName()),
		AllowAlias:    in.GetOptions().GetAllowAlias(),
		OpaqueOptions: in.GetOptions().GetUninterpreted(),
	}
	for _, v := range in.Value {
		eb.Values = append(eb.Values, schema.EnumValueBuilder{
			Name:   schema.Name(v.GetName()),
			Number: schema.EnumNumber(v.GetNumber()),
		})
	}
	return eb, nil
}

func serviceFromProto(in *descriptorpb.ServiceDescriptorProto) *schema.ServiceBuilder {
	sb := &schema.ServiceBuilder{Name: schema.Name(in.GetName())}
	for _, m := range in.Method {
		sb.Methods = append(sb.Methods, schema.MethodBuilder{
			Name:              schema.Name(m.GetName()),
			InputTypeName:     schema.FullName(m.GetInputType()),
			OutputTypeName:    schema.FullName(m.GetOutputType()),
			IsStreamingClient: m.GetClientStreaming(),
			IsStreamingServer: m.GetServerStreaming(),
		})
	}
	return sb
}
