package schema

import (
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/wire"
)

// FileBuilder constructs an immutable *FileDescriptor. Build up the tree
// with ordinary field assignment and nested builders, then call Build once.
// The builder itself is not safe for concurrent use and must not be reused
// or mutated after a successful Build.
type FileBuilder struct {
	Path          string
	Package       FullName
	Syntax        Syntax
	Dependencies  []string
	Messages      []*MessageBuilder
	Enums         []*EnumBuilder
	Services      []*ServiceBuilder
	OpaqueOptions []byte // unrecognized FileOptions sub-fields, preserved verbatim
}

// MessageBuilder constructs an immutable *MessageDescriptor.
type MessageBuilder struct {
	Name            Name
	Fields          []*FieldBuilder
	OneofNames      []Name
	Messages        []*MessageBuilder
	Enums           []*EnumBuilder
	IsMapEntry      bool
	ExtensionRanges [][2]FieldNumber
	OpaqueOptions   []byte // unrecognized MessageOptions sub-fields, preserved verbatim
}

// FieldBuilder constructs an immutable *FieldDescriptor.
type FieldBuilder struct {
	Name          Name
	Number        FieldNumber
	JSONName      string // if empty, defaults to Name
	HasJSONName   bool
	Kind          Kind
	TypeName      FullName // required when Kind is Message, Enum, or Group
	Cardinality   Cardinality
	OneofName     Name   // must name an entry in the enclosing MessageBuilder.OneofNames
	OpaqueOptions []byte // unrecognized FieldOptions sub-fields, preserved verbatim
}

// EnumBuilder constructs an immutable *EnumDescriptor.
type EnumBuilder struct {
	Name          Name
	Values        []EnumValueBuilder
	AllowAlias    bool
	OpaqueOptions []byte // unrecognized EnumOptions sub-fields, preserved verbatim
}

// EnumValueBuilder constructs an immutable *EnumValueDescriptor.
type EnumValueBuilder struct {
	Name   Name
	Number EnumNumber
}

// ServiceBuilder constructs an immutable *ServiceDescriptor.
type ServiceBuilder struct {
	Name    Name
	Methods []MethodBuilder
}

// MethodBuilder constructs an immutable *MethodDescriptor.
type MethodBuilder struct {
	Name              Name
	InputTypeName     FullName
	OutputTypeName    FullName
	IsStreamingClient bool
	IsStreamingServer bool
}

// buildCtx accumulates the full-name index used for intra-file type
// resolution: the descriptor tree is acyclic, and same-file references are
// resolved once the whole tree exists.
type buildCtx struct {
	byName map[FullName]interface{}
}

// Build validates and constructs the FileDescriptor. On any invariant
// violation it returns a *protoerr.Error and builds nothing.
func (fb *FileBuilder) Build() (*FileDescriptor, error) {
	f := &FileDescriptor{
		path:          fb.Path,
		pkg:           fb.Package,
		syntax:        fb.Syntax,
		dependencies:  append([]string(nil), fb.Dependencies...),
		opaqueOptions: append([]byte(nil), fb.OpaqueOptions...),
	}
	ctx := &buildCtx{byName: make(map[FullName]interface{})}

	for _, mb := range fb.Messages {
		md, err := mb.build(f, nil, fb.Package, ctx)
		if err != nil {
			return nil, err
		}
		f.messages = append(f.messages, md)
	}
	for _, eb := range fb.Enums {
		ed, err := eb.build(f, nil, fb.Package, ctx)
		if err != nil {
			return nil, err
		}
		f.enums = append(f.enums, ed)
	}
	for _, sb := range fb.Services {
		sd, err := sb.build(f, fb.Package, ctx)
		if err != nil {
			return nil, err
		}
		f.services = append(f.services, sd)
	}

	if err := resolveIntraFile(ctx); err != nil {
		return nil, err
	}

	f.byName = ctx.byName
	f.sealed = true
	return f, nil
}

func (mb *MessageBuilder) build(file *FileDescriptor, parent *MessageDescriptor, scope FullName, ctx *buildCtx) (*MessageDescriptor, error) {
	full := scope.Append(mb.Name)
	if _, dup := ctx.byName[full]; dup {
		return nil, protoerr.New(protoerr.DuplicateSymbol, "%s", full)
	}
	md := &MessageDescriptor{
		name:            mb.Name,
		fullName:        full,
		file:            file,
		parent:          parent,
		isMapEntry:      mb.IsMapEntry,
		fieldsByNumber:  make(map[FieldNumber]*FieldDescriptor),
		fieldsByName:    make(map[Name]*FieldDescriptor),
		extensionRanges: append([][2]FieldNumber(nil), mb.ExtensionRanges...),
		opaqueOptions:   append([]byte(nil), mb.OpaqueOptions...),
	}
	ctx.byName[full] = md

	oneofByName := make(map[Name]*OneofDescriptor, len(mb.OneofNames))
	for _, name := range mb.OneofNames {
		od := &OneofDescriptor{name: name, parent: md}
		oneofByName[name] = od
		md.oneofs = append(md.oneofs, od)
	}

	nestedNames := make(map[Name]bool)
	for _, nb := range mb.Messages {
		if nestedNames[nb.Name] {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "duplicate nested type name %q in %s", nb.Name, full)
		}
		nestedNames[nb.Name] = true
		nested, err := nb.build(file, md, full, ctx)
		if err != nil {
			return nil, err
		}
		md.nestedMessages = append(md.nestedMessages, nested)
	}
	for _, eb := range mb.Enums {
		if nestedNames[eb.Name] {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "duplicate nested type name %q in %s", eb.Name, full)
		}
		nestedNames[eb.Name] = true
		nested, err := eb.build(file, md, full, ctx)
		if err != nil {
			return nil, err
		}
		md.nestedEnums = append(md.nestedEnums, nested)
	}

	for _, fieldB := range mb.Fields {
		fd, err := fieldB.build(md, oneofByName)
		if err != nil {
			return nil, err
		}
		if !wire.IsValidNumber(fd.number) {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s: field number %d out of range", full, fd.number)
		}
		if _, dup := md.fieldsByNumber[fd.number]; dup {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s: duplicate field number %d", full, fd.number)
		}
		if _, dup := md.fieldsByName[fd.name]; dup {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s: duplicate field name %q", full, fd.name)
		}
		md.fields = append(md.fields, fd)
		md.fieldsByNumber[fd.number] = fd
		md.fieldsByName[fd.name] = fd
		ctx.byName[full.Append(fd.name)] = fd
	}

	if mb.IsMapEntry {
		if err := validateMapEntryShape(md); err != nil {
			return nil, err
		}
	}

	md.sealed = true
	return md, nil
}

func validateMapEntryShape(md *MessageDescriptor) error {
	if len(md.fields) != 2 {
		return protoerr.New(protoerr.InvalidDescriptorStructure, "%s: map entry must have exactly 2 fields, has %d", md.fullName, len(md.fields))
	}
	key := md.fieldsByNumber[1]
	val := md.fieldsByNumber[2]
	if key == nil || val == nil {
		return protoerr.New(protoerr.InvalidDescriptorStructure, "%s: map entry must number its fields 1 and 2", md.fullName)
	}
	if key.name != "key" || val.name != "value" {
		return protoerr.New(protoerr.InvalidDescriptorStructure, "%s: map entry fields must be named key/value", md.fullName)
	}
	if !wire.IsValidMapKeyKind(key.kind) {
		return protoerr.New(protoerr.InvalidDescriptorStructure, "%s: map entry key kind %v is not a valid map key", md.fullName, key.kind)
	}
	return nil
}

func (fieldB *FieldBuilder) build(parent *MessageDescriptor, oneofByName map[Name]*OneofDescriptor) (*FieldDescriptor, error) {
	if fieldB.Kind == MessageKind || fieldB.Kind == EnumKind || fieldB.Kind == GroupKind {
		if fieldB.TypeName == "" {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s.%s: %v field requires a TypeName", parent.fullName, fieldB.Name, fieldB.Kind)
		}
	}
	fd := &FieldDescriptor{
		name:          fieldB.Name,
		number:        fieldB.Number,
		jsonName:      fieldB.JSONName,
		hasJSONName:   fieldB.HasJSONName,
		kind:          fieldB.Kind,
		typeName:      fieldB.TypeName,
		cardinality:   fieldB.Cardinality,
		parent:        parent,
		opaqueOptions: append([]byte(nil), fieldB.OpaqueOptions...),
	}
	if fieldB.OneofName != "" {
		od, ok := oneofByName[fieldB.OneofName]
		if !ok {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s.%s: unknown oneof %q", parent.fullName, fieldB.Name, fieldB.OneofName)
		}
		fd.oneof = od
		od.fields = append(od.fields, fd)
	}
	return fd, nil
}

func (eb *EnumBuilder) build(file *FileDescriptor, parent *MessageDescriptor, scope FullName, ctx *buildCtx) (*EnumDescriptor, error) {
	full := scope.Append(eb.Name)
	if _, dup := ctx.byName[full]; dup {
		return nil, protoerr.New(protoerr.DuplicateSymbol, "%s", full)
	}
	ed := &EnumDescriptor{
		name:          eb.Name,
		fullName:      full,
		file:          file,
		parent:        parent,
		allowAlias:    eb.AllowAlias,
		byName:        make(map[Name]*EnumValueDescriptor),
		byNumber:      make(map[EnumNumber]*EnumValueDescriptor),
		opaqueOptions: append([]byte(nil), eb.OpaqueOptions...),
	}
	ctx.byName[full] = ed

	// Enum values are scoped to the enum's parent, not the enum itself,
	// mirroring protoreflect's EnumValueDescriptor.
	valueScope, ok := full.Parent()
	if !ok {
		valueScope = ""
	}

	for _, vb := range eb.Values {
		if _, dup := ed.byName[vb.Name]; dup {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s: duplicate enum value name %q", full, vb.Name)
		}
		if _, dup := ed.byNumber[vb.Number]; dup && !eb.AllowAlias {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s: duplicate enum value number %d without allow_alias", full, vb.Number)
		}
		vd := &EnumValueDescriptor{name: vb.Name, number: vb.Number, parent: ed}
		ed.values = append(ed.values, vd)
		ed.byName[vb.Name] = vd
		if _, exists := ed.byNumber[vb.Number]; !exists {
			ed.byNumber[vb.Number] = vd
		}
		valueFull := valueScope.Append(vb.Name)
		if _, dup := ctx.byName[valueFull]; dup {
			return nil, protoerr.New(protoerr.DuplicateSymbol, "%s", valueFull)
		}
		ctx.byName[valueFull] = vd
	}
	return ed, nil
}

func (sb *ServiceBuilder) build(file *FileDescriptor, scope FullName, ctx *buildCtx) (*ServiceDescriptor, error) {
	full := scope.Append(sb.Name)
	if _, dup := ctx.byName[full]; dup {
		return nil, protoerr.New(protoerr.DuplicateSymbol, "%s", full)
	}
	sd := &ServiceDescriptor{
		name:     sb.Name,
		fullName: full,
		file:     file,
		byName:   make(map[Name]*MethodDescriptor),
	}
	ctx.byName[full] = sd

	for _, mb := range sb.Methods {
		if _, dup := sd.byName[mb.Name]; dup {
			return nil, protoerr.New(protoerr.InvalidDescriptorStructure, "%s: duplicate method name %q", full, mb.Name)
		}
		md := &MethodDescriptor{
			name:              mb.Name,
			parent:            sd,
			inputTypeName:     mb.InputTypeName,
			outputTypeName:    mb.OutputTypeName,
			isStreamingClient: mb.IsStreamingClient,
			isStreamingServer: mb.IsStreamingServer,
		}
		sd.methods = append(sd.methods, md)
		sd.byName[mb.Name] = md
		methodFull := full.Append(mb.Name)
		if _, dup := ctx.byName[methodFull]; dup {
			return nil, protoerr.New(protoerr.DuplicateSymbol, "%s", methodFull)
		}
		ctx.byName[methodFull] = md
	}
	return sd, nil
}

// resolveIntraFile binds every field/method type reference that targets a
// symbol declared within the same file being built. Cross-file references
// are left unresolved for the type registry to bind during RegisterFile.
func resolveIntraFile(ctx *buildCtx) error {
	for _, v := range ctx.byName {
		switch d := v.(type) {
		case *FieldDescriptor:
			if err := resolveFieldType(d, ctx); err != nil {
				return err
			}
		case *MethodDescriptor:
			resolveMethodTypes(d, ctx)
		}
	}
	// Map detection depends on field resolution, run it last.
	for _, v := range ctx.byName {
		if fd, ok := v.(*FieldDescriptor); ok {
			DetectMap(fd)
		}
	}
	return nil
}

func resolveFieldType(fd *FieldDescriptor, ctx *buildCtx) error {
	switch fd.kind {
	case MessageKind, GroupKind:
		if v, ok := ctx.byName[fd.typeName]; ok {
			md, ok := v.(*MessageDescriptor)
			if !ok {
				return protoerr.New(protoerr.InvalidDescriptorStructure, "%s: %s does not name a message", fd, fd.typeName)
			}
			fd.bindMessage(md)
		}
	case EnumKind:
		if v, ok := ctx.byName[fd.typeName]; ok {
			ed, ok := v.(*EnumDescriptor)
			if !ok {
				return protoerr.New(protoerr.InvalidDescriptorStructure, "%s: %s does not name an enum", fd, fd.typeName)
			}
			fd.bindEnum(ed)
		}
	}
	return nil
}

func resolveMethodTypes(md *MethodDescriptor, ctx *buildCtx) {
	if v, ok := ctx.byName[md.inputTypeName]; ok {
		if in, ok := v.(*MessageDescriptor); ok {
			md.bindInput(in)
		}
	}
	if v, ok := ctx.byName[md.outputTypeName]; ok {
		if out, ok := v.(*MessageDescriptor); ok {
			md.bindOutput(out)
		}
	}
}

// DetectMap applies the map detection rule to fd once its message-type
// reference (if any) has been resolved: a field is a map iff it is
// repeated, references a message type, and that message is a synthetic
// map-entry message. Exported so the type registry can re-run it after
// resolving a cross-file reference.
func DetectMap(fd *FieldDescriptor) {
	if fd.cardinality != Repeated || fd.kind != MessageKind || fd.resolvedMessage == nil {
		return
	}
	target := fd.resolvedMessage
	if !target.isMapEntry {
		return
	}
	key := target.fieldsByNumber[1]
	val := target.fieldsByNumber[2]
	if key == nil || val == nil {
		return
	}
	fd.isMap = true
	fd.mapKeyKind = key.kind
	fd.mapValField = val
}
