package staticbridge

import (
	"testing"

	"github.com/kalexmills/protodyn/codec"
	"github.com/kalexmills/protodyn/factory"
	"github.com/kalexmills/protodyn/schema"
)

// staticThing is a hand-rolled stand-in for a statically generated message
// type: plain Go fields plus its own Marshal/Unmarshal. For brevity those
// methods go through a private descriptor and codec; the bridge under test
// sees only the External interface.
type staticThing struct {
	ID   int32
	Name string
}

func (s *staticThing) Marshal() ([]byte, error) {
	desc := staticThingDescriptor()
	msg, err := factory.NewFromNames(desc, []factory.NameValue{
		{Name: "id", Value: s.ID},
		{Name: "name", Value: s.Name},
	})
	if err != nil {
		return nil, err
	}
	return codec.Marshal(msg)
}

func (s *staticThing) Unmarshal(b []byte) error {
	msg, err := codec.Unmarshal(b, staticThingDescriptor())
	if err != nil {
		return err
	}
	id, _ := msg.GetByName("id")
	name, _ := msg.GetByName("name")
	if id != nil {
		s.ID = id.(int32)
	}
	if name != nil {
		s.Name = name.(string)
	}
	return nil
}

func staticThingDescriptor() *schema.MessageDescriptor {
	fb := &schema.FileBuilder{
		Path:    "example/thing.proto",
		Package: "example",
		Syntax:  schema.Proto3,
		Messages: []*schema.MessageBuilder{
			{
				Name: "Thing",
				Fields: []*schema.FieldBuilder{
					{Name: "id", Number: 1, Kind: schema.Int32Kind, Cardinality: schema.Optional},
					{Name: "name", Number: 2, Kind: schema.StringKind, Cardinality: schema.Optional},
				},
			},
		},
	}
	fd, err := fb.Build()
	if err != nil {
		panic(err)
	}
	return fd.Messages()[0]
}

func TestFromExternalAndToExternal(t *testing.T) {
	desc := staticThingDescriptor()
	ext := &staticThing{ID: 7, Name: "lamp"}

	dyn, err := FromExternal(ext, desc)
	if err != nil {
		t.Fatalf("FromExternal: %v", err)
	}
	id, _ := dyn.GetByName("id")
	name, _ := dyn.GetByName("name")
	if id != int32(7) || name != "lamp" {
		t.Fatalf("dyn id=%v name=%v", id, name)
	}

	dyn2, err := factory.NewFromNames(desc, []factory.NameValue{
		{Name: "id", Value: int32(9)},
		{Name: "name", Value: "chair"},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	var out staticThing
	if err := ToExternal(dyn2, &out); err != nil {
		t.Fatalf("ToExternal: %v", err)
	}
	if out.ID != 9 || out.Name != "chair" {
		t.Fatalf("out = %+v", out)
	}
}

func TestFromBytesAndToBytesRoundTrip(t *testing.T) {
	desc := staticThingDescriptor()
	msg, err := factory.NewFromNames(desc, []factory.NameValue{
		{Name: "id", Value: int32(3)},
		{Name: "name", Value: "desk"},
	})
	if err != nil {
		t.Fatalf("NewFromNames: %v", err)
	}
	b, err := ToBytes(msg)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	roundTripped, err := FromBytes(b, desc)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	id, _ := roundTripped.GetByName("id")
	name, _ := roundTripped.GetByName("name")
	if id != int32(3) || name != "desk" {
		t.Fatalf("roundTripped id=%v name=%v", id, name)
	}
}
