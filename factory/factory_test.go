package factory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kalexmills/protodyn/dynamic"
	"github.com/kalexmills/protodyn/schema"
)

func buildAddressBook(t *testing.T) (*schema.MessageDescriptor, *schema.MessageDescriptor) {
	t.Helper()
	fb := &schema.FileBuilder{
		Path:    "example/addressbook.proto",
		Package: "example",
		Syntax:  schema.Proto2,
		Messages: []*schema.MessageBuilder{
			{
				Name: "Person",
				Fields: []*schema.FieldBuilder{
					{Name: "name", Number: 1, Kind: schema.StringKind, Cardinality: schema.Required},
					{Name: "id", Number: 2, Kind: schema.Int32Kind, Cardinality: schema.Required},
					{Name: "email", Number: 3, Kind: schema.StringKind, Cardinality: schema.Optional},
				},
			},
			{
				Name: "AddressBook",
				Fields: []*schema.FieldBuilder{
					{
						Name:        "people",
						Number:      1,
						Kind:        schema.MessageKind,
						TypeName:    "example.Person",
						Cardinality: schema.Repeated,
					},
				},
			},
		},
	}
	fd, err := fb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return fd.Messages()[0], fd.Messages()[1]
}

func TestNewFromNamesAppliesInOrder(t *testing.T) {
	person, _ := buildAddressBook(t)
	msg, err := NewFromNames(person, []NameValue{
		{Name: "name", Value: "Ada Lovelace"},
		{Name: "id", Value: int32(1)},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	v, _ := msg.GetByName("name")
	if v != "Ada Lovelace" {
		t.Fatalf("name = %v", v)
	}
}

func TestNewFromNumbers(t *testing.T) {
	person, _ := buildAddressBook(t)
	msg, err := NewFromNumbers(person, []NumberValue{
		{Number: 2, Value: int32(42)},
	})
	if err != nil {
		t.Fatalf("NewFromNumbers: %v", err)
	}
	v, _ := msg.GetByNumber(2)
	if v != int32(42) {
		t.Fatalf("id = %v", v)
	}
}

func TestValidateReportsMissingRequiredField(t *testing.T) {
	person, _ := buildAddressBook(t)
	msg := New(person)
	_ = msg.SetByName("name", "Ada Lovelace")

	res := Validate(msg)
	if res.OK {
		t.Fatal("expected validation failure for missing required id")
	}
	if len(res.Errors) != 1 || res.Errors[0].Path != "id" || res.Errors[0].Kind != MissingRequiredField {
		t.Fatalf("Errors = %+v", res.Errors)
	}
}

func TestValidateRecursesIntoRepeatedMessages(t *testing.T) {
	person, addressBook := buildAddressBook(t)
	incomplete := New(person)
	_ = incomplete.SetByName("name", "Ada Lovelace")

	book := New(addressBook)
	if err := book.AppendRepeated("people", incomplete); err != nil {
		t.Fatalf("AppendRepeated: %v", err)
	}

	res := Validate(book)
	if res.OK {
		t.Fatal("expected validation failure to surface from nested repeated message")
	}
	if res.Errors[0].Path != "people[0].id" {
		t.Fatalf("Errors[0].Path = %q", res.Errors[0].Path)
	}
}

func TestValidateOKWhenComplete(t *testing.T) {
	person, _ := buildAddressBook(t)
	msg, err := NewFromNames(person, []NameValue{
		{Name: "name", Value: "Ada Lovelace"},
		{Name: "id", Value: int32(1)},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	res := Validate(msg)
	if !res.OK {
		t.Fatalf("expected OK, got errors: %+v", res.Errors)
	}
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	person, _ := buildAddressBook(t)
	orig, err := NewFromNames(person, []NameValue{
		{Name: "name", Value: "Ada Lovelace"},
		{Name: "id", Value: int32(1)},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}

	clone, err := Clone(orig)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if err := clone.SetByName("name", "Grace Hopper"); err != nil {
		t.Fatalf("SetByName on clone: %v", err)
	}

	origName, _ := orig.GetByName("name")
	cloneName, _ := clone.GetByName("name")
	if origName != "Ada Lovelace" {
		t.Fatalf("original mutated by clone edit: %v", origName)
	}
	if cloneName != "Grace Hopper" {
		t.Fatalf("clone name = %v", cloneName)
	}
}

func TestCloneNestedMessageIsIndependent(t *testing.T) {
	person, addressBook := buildAddressBook(t)
	p, err := NewFromNames(person, []NameValue{
		{Name: "name", Value: "Ada Lovelace"},
		{Name: "id", Value: int32(1)},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	book := New(addressBook)
	if err := book.AppendRepeated("people", p); err != nil {
		t.Fatalf("AppendRepeated: %v", err)
	}

	clone, err := Clone(book)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	clonedPeople, _ := clone.GetByName("people")
	clonedPerson := clonedPeople.(dynamic.List)[0].(*dynamic.Message)
	if err := clonedPerson.SetByName("name", "Mutated"); err != nil {
		t.Fatalf("SetByName: %v", err)
	}

	origPeople, _ := book.GetByName("people")
	origName, _ := origPeople.(dynamic.List)[0].(*dynamic.Message).GetByName("name")
	if origName != "Ada Lovelace" {
		t.Fatalf("cloning a nested message should not alias the original, got %v", origName)
	}
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	person, _ := buildAddressBook(t)
	msg := New(person)
	res := Validate(msg)
	want := []string{"name: MissingRequiredField", "id: MissingRequiredField"}
	var got []string
	for _, e := range res.Errors {
		got = append(got, e.Error())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("validation error strings mismatch (-want +got):\n%s", diff)
	}
}
