package codec

import (
	"bytes"
	"testing"

	"github.com/kalexmills/protodyn/dynamic"
	"github.com/kalexmills/protodyn/factory"
	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

func buildMessage(t *testing.T, mb *schema.MessageBuilder, extra ...*schema.MessageBuilder) *schema.MessageDescriptor {
	t.Helper()
	fb := &schema.FileBuilder{
		Path:     "example/seed.proto",
		Package:  "example",
		Syntax:   schema.Proto3,
		Messages: append([]*schema.MessageBuilder{mb}, extra...),
	}
	fd, err := fb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return fd.Messages()[0]
}

// {id: 42, name: "Test Name"} -> 08 2A 12 09 "Test Name".
func TestSeedScenario1SimpleMessage(t *testing.T) {
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
			{Name: "name", Number: 2, Kind: schema.StringKind, Cardinality: schema.Optional},
		},
	})
	msg, err := factory.NewFromNames(desc, []factory.NameValue{
		{Name: "id", Value: int32(42)},
		{Name: "name", Value: "Test Name"},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	got, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := append([]byte{0x08, 0x2A, 0x12, 0x09}, []byte("Test Name")...)
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal = % X, want % X", got, want)
	}

	decoded, err := Unmarshal(got, desc)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	id, _ := decoded.GetByName("id")
	name, _ := decoded.GetByName("name")
	if id != int32(42) || name != "Test Name" {
		t.Fatalf("decoded id=%v name=%v", id, name)
	}
}

// empty message encodes to empty bytes, and decoding empty
// bytes yields a message where hasValue(id) = false.
func TestSeedScenario2EmptyMessage(t *testing.T) {
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	})
	msg := factory.New(desc)
	got, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Marshal(empty) = % X, want empty", got)
	}
	decoded, err := Unmarshal(nil, desc)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	has, _ := decoded.HasByName("id")
	if has {
		t.Fatal("hasValue(id) should be false")
	}
}

// repeated int32 [1,2,300] -> tag(field,2) len(4) 01 02 AC 02.
func TestSeedScenario3PackedRepeated(t *testing.T) {
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "values", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Repeated},
		},
	})
	msg := factory.New(desc)
	for _, v := range []int32{1, 2, 300} {
		if err := msg.AppendRepeated("values", v); err != nil {
			t.Fatalf("AppendRepeated: %v", err)
		}
	}
	got, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{0x0A, 0x04, 0x01, 0x02, 0xAC, 0x02}
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal = % X, want % X", got, want)
	}

	decoded, err := Unmarshal(got, desc)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	v, _ := decoded.GetByName("values")
	list := v.(dynamic.List)
	if len(list) != 3 || list[0] != int32(1) || list[1] != int32(2) || list[2] != int32(300) {
		t.Fatalf("values = %v", list)
	}
}

// map<string,int32>{"k": 7} -> tag(field,2) len(N)
// tag(1,2) len(1) "k" tag(2,0) 07.
func TestSeedScenario4MapEntry(t *testing.T) {
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{
				Name:        "labels",
				Number:      1,
				Kind:        schema.MessageKind,
				TypeName:    "example.Thing.LabelsEntry",
				Cardinality: schema.Repeated,
			},
		},
		Messages: []*schema.MessageBuilder{
			{
				Name:       "LabelsEntry",
				IsMapEntry: true,
				Fields: []*schema.FieldBuilder{
					{Name: "key", Number: 1, Kind: schema.StringKind},
					{Name: "value", Number: 2, Kind: schema.Int32Kind},
				},
			},
		},
	})
	msg := factory.New(desc)
	if err := msg.SetMapEntry("labels", "k", int32(7)); err != nil {
		t.Fatalf("SetMapEntry: %v", err)
	}
	got, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{0x0A, 0x05, 0x0A, 0x01, 'k', 0x10, 0x07}
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal = % X, want % X", got, want)
	}

	decoded, err := Unmarshal(got, desc)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	v, _ := decoded.GetByName("labels")
	m := v.(dynamic.Map)
	if m["k"] != int32(7) {
		t.Fatalf("labels[k] = %v", m["k"])
	}
}

// encode fails AllowPartial=false with a required field
// missing; AllowPartial=true succeeds.
func TestSeedScenario6RequiredFieldEnforcement(t *testing.T) {
	fb := &schema.FileBuilder{
		Path:    "example/req.proto",
		Package: "example",
		Syntax:  schema.Proto2,
		Messages: []*schema.MessageBuilder{
			{
				Name: "Thing",
				Fields: []*schema.FieldBuilder{
					{Name: "name", Number: 1, Kind: schema.StringKind, Cardinality: schema.Required},
				},
			},
		},
	}
	fd, err := fb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	desc := fd.Messages()[0]
	msg := factory.New(desc)

	_, err = Marshal(msg)
	if !protoerr.Is(err, protoerr.InvalidDescriptorStructure) {
		t.Fatalf("expected InvalidDescriptorStructure, got %v", err)
	}

	got, err := (MarshalOptions{AllowPartial: true}).Marshal(msg)
	if err != nil {
		t.Fatalf("AllowPartial Marshal: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Marshal(empty partial) = % X, want empty", got)
	}
}

func TestUnknownFieldPreservedAndReencoded(t *testing.T) {
	full := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
			{Name: "extra", Number: 2, Kind: schema.StringKind, Cardinality: schema.Optional},
		},
	})
	partial := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	})

	fullMsg, err := factory.NewFromNames(full, []factory.NameValue{
		{Name: "id", Value: int32(5)},
		{Name: "extra", Value: "hello"},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	wireBytes, err := Marshal(fullMsg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decodedPartial, err := Unmarshal(wireBytes, partial)
	if err != nil {
		t.Fatalf("Unmarshal(partial): %v", err)
	}
	reencoded, err := (MarshalOptions{AllowPartial: true}).Marshal(decodedPartial)
	if err != nil {
		t.Fatalf("re-Marshal: %v", err)
	}

	decodedFull, err := Unmarshal(reencoded, full)
	if err != nil {
		t.Fatalf("Unmarshal(full) after round trip: %v", err)
	}
	id, _ := decodedFull.GetByName("id")
	extra, _ := decodedFull.GetByName("extra")
	if id != int32(5) || extra != "hello" {
		t.Fatalf("round trip lost data: id=%v extra=%v", id, extra)
	}
}

func TestDiscardUnknownDropsUnrecognizedFields(t *testing.T) {
	full := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
			{Name: "extra", Number: 2, Kind: schema.StringKind, Cardinality: schema.Optional},
		},
	})
	partial := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	})
	fullMsg, err := factory.NewFromNames(full, []factory.NameValue{
		{Name: "id", Value: int32(5)},
		{Name: "extra", Value: "hello"},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	wireBytes, err := Marshal(fullMsg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := (UnmarshalOptions{DiscardUnknown: true}).Unmarshal(wireBytes, partial)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.UnknownFields()) != 0 {
		t.Fatalf("UnknownFields() = % X, want empty with DiscardUnknown", decoded.UnknownFields())
	}
}

func TestWireTypeMismatchRejected(t *testing.T) {
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	})
	// Tag for field 1 with BytesType (wire type 2) instead of VarintType.
	bad := []byte{0x0A, 0x01, 0x00}
	_, err := Unmarshal(bad, desc)
	if !protoerr.Is(err, protoerr.WireTypeMismatch) {
		t.Fatalf("expected WireTypeMismatch, got %v", err)
	}
}

func TestMapEntryWireTypeMismatchRejected(t *testing.T) {
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{
				Name:        "counts",
				Number:      1,
				Kind:        schema.MessageKind,
				TypeName:    "example.Thing.CountsEntry",
				Cardinality: schema.Repeated,
			},
		},
		Messages: []*schema.MessageBuilder{
			{
				Name:       "CountsEntry",
				IsMapEntry: true,
				Fields: []*schema.FieldBuilder{
					{Name: "key", Number: 1, Kind: schema.StringKind},
					{Name: "value", Number: 2, Kind: schema.Int32Kind},
				},
			},
		},
	})

	// Entry with key tagged VarintType (wire type 0) instead of BytesType,
	// since the map key kind here is string.
	keyMistyped := []byte{0x08, 0x07}
	entryBad := append([]byte{0x0A, byte(len(keyMistyped))}, keyMistyped...)
	if _, err := Unmarshal(entryBad, desc); !protoerr.Is(err, protoerr.WireTypeMismatch) {
		t.Fatalf("expected WireTypeMismatch for mistyped map key, got %v", err)
	}

	// Entry with a well-typed key but the value tagged BytesType (wire type
	// 2) instead of VarintType, since the map value kind here is int32.
	valMistyped := []byte{0x0A, 0x01, 'k', 0x12, 0x01, 0x00}
	entryBad2 := append([]byte{0x0A, byte(len(valMistyped))}, valMistyped...)
	if _, err := Unmarshal(entryBad2, desc); !protoerr.Is(err, protoerr.WireTypeMismatch) {
		t.Fatalf("expected WireTypeMismatch for mistyped map value, got %v", err)
	}
}

func TestMapEncodeIsDeterministicAcrossCalls(t *testing.T) {
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{
				Name:        "labels",
				Number:      1,
				Kind:        schema.MessageKind,
				TypeName:    "example.Thing.LabelsEntry",
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
	})
	msg := factory.New(desc)
	for _, k := range []string{"zebra", "apple", "mango"} {
		if err := msg.SetMapEntry("labels", k, "v-"+k); err != nil {
			t.Fatalf("SetMapEntry: %v", err)
		}
	}
	first, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Marshal(msg)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("Marshal is not stable across calls: run %d differs", i)
		}
	}
}

func TestMapEntryMessageValueDefaultsWhenAbsentFromWire(t *testing.T) {
	nested := &schema.MessageBuilder{
		Name: "Nested",
		Fields: []*schema.FieldBuilder{
			{Name: "x", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	}
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{
				Name:        "items",
				Number:      1,
				Kind:        schema.MessageKind,
				TypeName:    "example.Thing.ItemsEntry",
				Cardinality: schema.Repeated,
			},
		},
		Messages: []*schema.MessageBuilder{
			{
				Name:       "ItemsEntry",
				IsMapEntry: true,
				Fields: []*schema.FieldBuilder{
					{Name: "key", Number: 1, Kind: schema.StringKind},
					{Name: "value", Number: 2, Kind: schema.MessageKind, TypeName: "example.Nested"},
				},
			},
		},
	}, nested)

	// A map entry whose "value" sub-message never appears on the wire: only
	// the key field (tag 1) is present in the entry bytes.
	entry := []byte{0x0A, 0x01, 'k'}
	wireBytes := append([]byte{0x0A, byte(len(entry))}, entry...)

	decoded, err := Unmarshal(wireBytes, desc)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	v, _ := decoded.GetByName("items")
	m := v.(dynamic.Map)
	nestedMsg, ok := m["k"].(*dynamic.Message)
	if !ok || nestedMsg == nil {
		t.Fatalf("expected zero-value nested message, got %v", m["k"])
	}
	has, _ := nestedMsg.HasByName("x")
	if has {
		t.Fatal("zero-value nested message should have no fields set")
	}
}

// A GroupKind field is encoded/decoded as a length-delimited embedded
// message, the same as MessageKind, since true group framing is out of
// scope. The two sides must agree on that wire type or the field can never
// round-trip through this package's own Marshal/Unmarshal.
func TestGroupKindFieldRoundTrips(t *testing.T) {
	result := &schema.MessageBuilder{
		Name: "Result",
		Fields: []*schema.FieldBuilder{
			{Name: "score", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
		},
	}
	desc := buildMessage(t, &schema.MessageBuilder{
		Name: "Thing",
		Fields: []*schema.FieldBuilder{
			{
				Name:        "result",
				Number:      1,
				Kind:        schema.GroupKind,
				TypeName:    "example.Result",
				Cardinality: schema.Optional,
			},
		},
	}, result)

	nested := factory.New(desc.Fields()[0].Message())
	if err := nested.SetByName("score", int32(9)); err != nil {
		t.Fatalf("SetByName: %v", err)
	}
	msg := factory.New(desc)
	if err := msg.SetByName("result", nested); err != nil {
		t.Fatalf("SetByName: %v", err)
	}

	got, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := Unmarshal(got, desc)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	v, _ := decoded.GetByName("result")
	sub, ok := v.(*dynamic.Message)
	if !ok {
		t.Fatalf("result = %v, want *dynamic.Message", v)
	}
	score, _ := sub.GetByName("score")
	if score != int32(9) {
		t.Fatalf("score = %v, want 9", score)
	}
}
