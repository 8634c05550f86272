// Package schema implements the in-memory representation of .proto schemas
// (files, messages, fields, enums, services), including nested types, map
// semantics, and cross-references. Descriptors are built via mutable
// *Builder values and become immutable once Build is called, to avoid
// exposing aliasing hazards once a descriptor is in use.
package schema

import (
	"strings"

	"github.com/kalexmills/protodyn/wire"
)

// Name is the simple (undotted) name of a declaration, e.g. "Any".
type Name string

// FullName is a fully-qualified, dot-joined declaration name, e.g.
// "google.protobuf.Any".
type FullName string

// Append returns the FullName formed by joining n as a suffix.
func (f FullName) Append(n Name) FullName {
	if f == "" {
		return FullName(n)
	}
	return FullName(string(f) + "." + string(n))
}

// Parent returns the FullName with its last path component removed, and
// true if f had a parent. Used to resolve the enclosing message/package of
// a symbol for cycle-free lookups.
func (f FullName) Parent() (FullName, bool) {
	i := strings.LastIndexByte(string(f), '.')
	if i < 0 {
		return "", false
	}
	return f[:i], true
}

// Syntax distinguishes proto2 from proto3 semantics, mainly for the
// presence/absence of field presence tracking on scalars.
type Syntax int8

const (
	Proto2 Syntax = iota
	Proto3
)

func (s Syntax) String() string {
	if s == Proto3 {
		return "proto3"
	}
	return "proto2"
}

// Cardinality is a field's multiplicity.
type Cardinality int8

const (
	Optional Cardinality = iota
	Required
	Repeated
)

func (c Cardinality) String() string {
	switch c {
	case Required:
		return "required"
	case Repeated:
		return "repeated"
	default:
		return "optional"
	}
}

// Kind is an alias of wire.Kind: the field's basic scalar/message/enum/group
// type, reused from the wire package since wire-type selection is purely a
// function of Kind.
type Kind = wire.Kind

// FieldNumber is an alias of wire.Number.
type FieldNumber = wire.Number

// EnumNumber is the signed 32-bit value backing an enum constant.
type EnumNumber int32
