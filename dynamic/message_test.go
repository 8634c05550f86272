package dynamic

import (
	"testing"

	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

func buildPerson(t *testing.T) *schema.MessageDescriptor {
	t.Helper()
	fb := &schema.FileBuilder{
		Path:    "example/person.proto",
		Package: "example",
		Syntax:  schema.Proto3,
		Messages: []*schema.MessageBuilder{
			{
				Name:       "Person",
				OneofNames: []schema.Name{"contact"},
				Fields: []*schema.FieldBuilder{
					{Name: "name", Number: 1, Kind: schema.StringKind, Cardinality: schema.Optional},
					{Name: "id", Number: 2, Kind: schema.Int32Kind, Cardinality: schema.Required},
					{Name: "emails", Number: 3, Kind: schema.StringKind, Cardinality: schema.Repeated},
					{Name: "email", Number: 4, Kind: schema.StringKind, Cardinality: schema.Optional, OneofName: "contact"},
					{Name: "phone", Number: 5, Kind: schema.StringKind, Cardinality: schema.Optional, OneofName: "contact"},
					{
						Name:        "labels",
						Number:      6,
						Kind:        schema.MessageKind,
						TypeName:    "example.Person.LabelsEntry",
						Cardinality: schema.Repeated,
					},
				},
				Messages: []*schema.MessageBuilder{
					{
						Name:       "LabelsEntry",
						IsMapEntry: true,
						Fields: []*schema.FieldBuilder{
							{Name: "key", Number: 1, Kind: schema.StringKind},
							{Name: "value", Number: 2, Kind: schema.StringKind},
						},
					},
				},
			},
		},
	}
	fd, err := fb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return fd.Messages()[0]
}

func TestSetAndGetByName(t *testing.T) {
	msg := New(buildPerson(t))
	if err := msg.SetByName("name", "Ada"); err != nil {
		t.Fatalf("SetByName: %v", err)
	}
	v, err := msg.GetByName("name")
	if err != nil || v != "Ada" {
		t.Fatalf("GetByName = %v, %v", v, err)
	}
	has, _ := msg.HasByName("name")
	if !has {
		t.Fatal("expected name to be set")
	}
	has, _ = msg.HasByName("id")
	if has {
		t.Fatal("id should be unset")
	}
}

func TestSetTypeMismatchRejected(t *testing.T) {
	msg := New(buildPerson(t))
	err := msg.SetByName("name", 42)
	if !protoerr.Is(err, protoerr.TypeMismatch) {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestOneofClearsSiblingOnSet(t *testing.T) {
	msg := New(buildPerson(t))
	if err := msg.SetByName("email", "ada@example.com"); err != nil {
		t.Fatalf("SetByName(email): %v", err)
	}
	if err := msg.SetByName("phone", "555-1234"); err != nil {
		t.Fatalf("SetByName(phone): %v", err)
	}
	if has, _ := msg.HasByName("email"); has {
		t.Fatal("email should have been cleared when phone was set")
	}
	has, _ := msg.HasByName("phone")
	if !has {
		t.Fatal("phone should be set")
	}
}

func TestAppendRepeated(t *testing.T) {
	msg := New(buildPerson(t))
	if err := msg.AppendRepeated("emails", "a@example.com"); err != nil {
		t.Fatalf("AppendRepeated: %v", err)
	}
	if err := msg.AppendRepeated("emails", "b@example.com"); err != nil {
		t.Fatalf("AppendRepeated: %v", err)
	}
	v, _ := msg.GetByName("emails")
	list := v.(List)
	if len(list) != 2 || list[0] != "a@example.com" || list[1] != "b@example.com" {
		t.Fatalf("emails = %v", list)
	}
}

func TestSetMapEntry(t *testing.T) {
	msg := New(buildPerson(t))
	if err := msg.SetMapEntry("labels", "env", "prod"); err != nil {
		t.Fatalf("SetMapEntry: %v", err)
	}
	v, _ := msg.GetByName("labels")
	m := v.(Map)
	if m["env"] != "prod" {
		t.Fatalf("labels[env] = %v", m["env"])
	}
}

func TestClearByName(t *testing.T) {
	msg := New(buildPerson(t))
	_ = msg.SetByName("name", "Ada")
	if err := msg.ClearByName("name"); err != nil {
		t.Fatalf("ClearByName: %v", err)
	}
	has, _ := msg.HasByName("name")
	if has {
		t.Fatal("name should be cleared")
	}
}

func TestUnknownFieldNameRejected(t *testing.T) {
	msg := New(buildPerson(t))
	_, err := msg.GetByName("nonexistent")
	if !protoerr.Is(err, protoerr.UnknownField) {
		t.Fatalf("expected UnknownField, got %v", err)
	}
}

func TestRangeVisitsInDeclarationOrder(t *testing.T) {
	msg := New(buildPerson(t))
	_ = msg.SetByName("id", int32(7))
	_ = msg.SetByName("name", "Ada")
	var order []schema.Name
	msg.Range(func(fd *schema.FieldDescriptor, v interface{}) bool {
		order = append(order, fd.Name())
		return true
	})
	if len(order) != 2 || order[0] != "name" || order[1] != "id" {
		t.Fatalf("Range order = %v", order)
	}
}

func TestUnknownFieldsRoundTripAppend(t *testing.T) {
	msg := New(buildPerson(t))
	msg.AppendUnknownFields([]byte{0x01, 0x02})
	msg.AppendUnknownFields([]byte{0x03})
	got := msg.UnknownFields()
	want := []byte{0x01, 0x02, 0x03}
	if len(got) != len(want) {
		t.Fatalf("UnknownFields = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UnknownFields = %v, want %v", got, want)
		}
	}
}

func TestEnumRepresentationsNormalizeToEnumNumber(t *testing.T) {
	fb := &schema.FileBuilder{
		Path:    "enum.proto",
		Package: "example",
		Enums: []*schema.EnumBuilder{
			{
				Name: "Status",
				Values: []schema.EnumValueBuilder{
					{Name: "STATUS_UNKNOWN", Number: 0},
					{Name: "STATUS_OK", Number: 1},
				},
			},
		},
		Messages: []*schema.MessageBuilder{
			{
				Name: "Widget",
				Fields: []*schema.FieldBuilder{
					{Name: "status", Number: 1, Kind: schema.EnumKind, TypeName: "example.Status", Cardinality: schema.Optional},
				},
			},
		},
	}
	fd, err := fb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	widget := fd.Messages()[0]
	status := fd.Enums()[0]

	msg := New(widget)
	if err := msg.SetByName("status", int32(1)); err != nil {
		t.Fatalf("SetByName(int32): %v", err)
	}
	v, _ := msg.GetByName("status")
	if v.(schema.EnumNumber) != 1 {
		t.Fatalf("status = %v, want EnumNumber(1)", v)
	}

	if err := msg.SetByName("status", status.ValueByName("STATUS_OK")); err != nil {
		t.Fatalf("SetByName(*EnumValueDescriptor): %v", err)
	}
	v, _ = msg.GetByName("status")
	if v.(schema.EnumNumber) != 1 {
		t.Fatalf("status = %v, want EnumNumber(1)", v)
	}
}
