// Package wellknown provides the descriptors for the small set of
// google.protobuf.* types a registry can optionally bootstrap with: Any,
// Timestamp, Duration, Empty, FieldMask, and the Struct family
// (Struct/Value/ListValue). It is grounded on types/known/*pb/*.pb.go's
// hand-maintained descriptor data, reduced here to the hand-written
// schema.FileBuilder form this module uses in place of generated
// descriptor.proto bytes.
package wellknown

import "github.com/kalexmills/protodyn/schema"

const wellKnownPackage = "google.protobuf"

// File returns the built, sealed FileDescriptor describing the well-known
// types. It never fails: the shape is fixed at compile time and exercised
// by this package's own tests, so a build error here would be a bug in this
// package rather than in caller-supplied input.
func File() *schema.FileDescriptor {
	fd, err := builder().Build()
	if err != nil {
		panic(err)
	}
	return fd
}

func builder() *schema.FileBuilder {
	return &schema.FileBuilder{
		Path:    "google/protobuf/wellknown.proto",
		Package: wellKnownPackage,
		Syntax:  schema.Proto3,
		Messages: []*schema.MessageBuilder{
			anyBuilder(),
			timestampBuilder(),
			durationBuilder(),
			emptyBuilder(),
			fieldMaskBuilder(),
			structBuilder(),
			valueBuilder(),
			listValueBuilder(),
		},
		Enums: []*schema.EnumBuilder{
			nullValueBuilder(),
		},
	}
}

func nullValueBuilder() *schema.EnumBuilder {
	return &schema.EnumBuilder{
		Name: "NullValue",
		Values: []schema.EnumValueBuilder{
			{Name: "NULL_VALUE", Number: 0},
		},
	}
}

func anyBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{
		Name: "Any",
		Fields: []*schema.FieldBuilder{
			{Name: "type_url", Number: 1, Kind: schema.StringKind, Cardinality: schema.Optional},
			{Name: "value", Number: 2, Kind: schema.BytesKind, Cardinality: schema.Optional},
		},
	}
}

func timestampBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{
		Name: "Timestamp",
		Fields: []*schema.FieldBuilder{
			{Name: "seconds", Number: 1, Kind: schema.Int64Kind, Cardinality: schema.Optional},
			{Name: "nanos", Number: 2, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	}
}

func durationBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{
		Name: "Duration",
		Fields: []*schema.FieldBuilder{
			{Name: "seconds", Number: 1, Kind: schema.Int64Kind, Cardinality: schema.Optional},
			{Name: "nanos", Number: 2, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	}
}

func emptyBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{Name: "Empty"}
}

func fieldMaskBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{
		Name: "FieldMask",
		Fields: []*schema.FieldBuilder{
			{Name: "paths", Number: 1, Kind: schema.StringKind, Cardinality: schema.Repeated},
		},
	}
}

// structBuilder mirrors struct.proto's Struct message: a string-keyed map
// of Value. The map field is expressed as a repeated reference to a
// synthetic map-entry nested message; DetectMap recognizes it once the
// file is built.
func structBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{
		Name: "Struct",
		Fields: []*schema.FieldBuilder{
			{
				Name:        "fields",
				Number:      1,
				Kind:        schema.MessageKind,
				TypeName:    wellKnownPackage + ".Struct.FieldsEntry",
				Cardinality: schema.Repeated,
			},
		},
		Messages: []*schema.MessageBuilder{
			{
				Name:       "FieldsEntry",
				IsMapEntry: true,
				Fields: []*schema.FieldBuilder{
					{Name: "key", Number: 1, Kind: schema.StringKind, Cardinality: schema.Optional},
					{
						Name:        "value",
						Number:      2,
						Kind:        schema.MessageKind,
						TypeName:    wellKnownPackage + ".Value",
						Cardinality: schema.Optional,
					},
				},
			},
		},
	}
}

// valueBuilder mirrors struct.proto's Value message: a oneof over the six
// JSON-like kinds.
func valueBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{
		Name:       "Value",
		OneofNames: []schema.Name{"kind"},
		Fields: []*schema.FieldBuilder{
			{Name: "null_value", Number: 1, Kind: schema.EnumKind, TypeName: wellKnownPackage + ".NullValue", Cardinality: schema.Optional, OneofName: "kind"},
			{Name: "number_value", Number: 2, Kind: schema.DoubleKind, Cardinality: schema.Optional, OneofName: "kind"},
			{Name: "string_value", Number: 3, Kind: schema.StringKind, Cardinality: schema.Optional, OneofName: "kind"},
			{Name: "bool_value", Number: 4, Kind: schema.BoolKind, Cardinality: schema.Optional, OneofName: "kind"},
			{Name: "struct_value", Number: 5, Kind: schema.MessageKind, TypeName: wellKnownPackage + ".Struct", Cardinality: schema.Optional, OneofName: "kind"},
			{Name: "list_value", Number: 6, Kind: schema.MessageKind, TypeName: wellKnownPackage + ".ListValue", Cardinality: schema.Optional, OneofName: "kind"},
		},
	}
}

func listValueBuilder() *schema.MessageBuilder {
	return &schema.MessageBuilder{
		Name: "ListValue",
		Fields: []*schema.FieldBuilder{
			{
				Name:        "values",
				Number:      1,
				Kind:        schema.MessageKind,
				TypeName:    wellKnownPackage + ".Value",
				Cardinality: schema.Repeated,
			},
		},
	}
}
