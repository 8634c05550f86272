package schema

// FileDescriptor describes a complete .proto file. It is identified by a
// path-like Name and a dotted Package, and owns ordered collections of
// top-level messages, enums, and services.
type FileDescriptor struct {
	path         string
	pkg          FullName
	syntax       Syntax
	dependencies []string
	messages     []*MessageDescriptor
	enums        []*EnumDescriptor
	services     []*ServiceDescriptor

	byName map[FullName]interface{} // every descriptor this file transitively owns
	sealed bool

	opaqueOptions []byte // unrecognized FileOptions sub-fields, preserved verbatim
}

// Path returns the file name, e.g. "example/foo.proto".
func (f *FileDescriptor) Path() string { return f.path }

// Package returns the protobuf package namespace, possibly empty.
func (f *FileDescriptor) Package() FullName { return f.pkg }

// Syntax reports whether the file declared "proto2" or "proto3" syntax.
func (f *FileDescriptor) Syntax() Syntax { return f.syntax }

// Dependencies lists the names of files this file depends on, for
// documentation only; actual resolution happens through the registry.
func (f *FileDescriptor) Dependencies() []string {
	out := make([]string, len(f.dependencies))
	copy(out, f.dependencies)
	return out
}

// Messages returns the top-level message declarations, in declaration order.
func (f *FileDescriptor) Messages() []*MessageDescriptor { return f.messages }

// Enums returns the top-level enum declarations, in declaration order.
func (f *FileDescriptor) Enums() []*EnumDescriptor { return f.enums }

// Services returns the top-level service declarations, in declaration order.
func (f *FileDescriptor) Services() []*ServiceDescriptor { return f.services }

// DescriptorByName looks up any descriptor declared within this file
// (messages, fields, enums, enum values, services, methods, nested types)
// by its fully-qualified name. It returns nil if not found.
func (f *FileDescriptor) DescriptorByName(name FullName) interface{} {
	return f.byName[name]
}

// Symbols returns a copy of the fully-qualified-name index of every
// descriptor this file transitively owns. The type registry uses this to
// detect name collisions atomically across an entire file before committing
// a registration.
func (f *FileDescriptor) Symbols() map[FullName]interface{} {
	out := make(map[FullName]interface{}, len(f.byName))
	for k, v := range f.byName {
		out[k] = v
	}
	return out
}

// IsSealed reports whether the file (and everything it owns) is immutable.
// A file becomes sealed the moment Build succeeds.
func (f *FileDescriptor) IsSealed() bool { return f.sealed }

// OpaqueOptions returns the raw wire bytes of any FileOptions sub-fields
// this module does not interpret, preserved so the bridge's round trip is
// lossless for options it doesn't understand.
func (f *FileDescriptor) OpaqueOptions() []byte { return f.opaqueOptions }

func (f *FileDescriptor) String() string {
	if f.pkg != "" {
		return "file " + f.path + " (package " + string(f.pkg) + ")"
	}
	return "file " + f.path
}
