package registry

import (
	"testing"

	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

func buildFile(t *testing.T, path string, mb *schema.MessageBuilder) *schema.FileDescriptor {
	t.Helper()
	fb := &schema.FileBuilder{
		Path:     path,
		Package:  "test",
		Syntax:   schema.Proto3,
		Messages: []*schema.MessageBuilder{mb},
	}
	fd, err := fb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return fd
}

func TestRegisterAndFindMessage(t *testing.T) {
	r := New()
	fd := buildFile(t, "a.proto", &schema.MessageBuilder{Name: "Foo"})
	if err := r.RegisterFile(fd); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if m := r.FindMessage("test.Foo"); m == nil {
		t.Fatal("expected to find test.Foo")
	}
	if m := r.FindMessage("test.Bar"); m != nil {
		t.Fatalf("expected nil for unregistered symbol, got %v", m)
	}
}

// Registering two files defining the same symbol fails DuplicateSymbol on
// the second, and the first registration's descriptor is still the one
// found afterward.
func TestRegisterFileDuplicateSymbolLeavesFirstIntact(t *testing.T) {
	r := New()
	first := buildFile(t, "a.proto", &schema.MessageBuilder{Name: "Foo"})
	second := buildFile(t, "b.proto", &schema.MessageBuilder{Name: "Foo"})

	if err := r.RegisterFile(first); err != nil {
		t.Fatalf("RegisterFile(first): %v", err)
	}
	err := r.RegisterFile(second)
	if !protoerr.Is(err, protoerr.DuplicateSymbol) {
		t.Fatalf("expected DuplicateSymbol, got %v", err)
	}

	got := r.FindMessage("test.Foo")
	if got != first.Messages()[0] {
		t.Fatal("findMessage should still return the first-registered descriptor")
	}
	if r.FindFile("b.proto") != nil {
		t.Fatal("second file must not be partially registered")
	}
}

func TestRegisterFileDuplicateFileRejected(t *testing.T) {
	r := New()
	fd := buildFile(t, "a.proto", &schema.MessageBuilder{Name: "Foo"})
	if err := r.RegisterFile(fd); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	err := r.RegisterFile(fd)
	if !protoerr.Is(err, protoerr.DuplicateFile) {
		t.Fatalf("expected DuplicateFile, got %v", err)
	}
}

func TestRegisterFileResolvesCrossFileReference(t *testing.T) {
	r := New()
	target := buildFile(t, "target.proto", &schema.MessageBuilder{Name: "Target"})
	if err := r.RegisterFile(target); err != nil {
		t.Fatalf("RegisterFile(target): %v", err)
	}

	wrapper := buildFile(t, "wrapper.proto", &schema.MessageBuilder{
		Name: "Wrapper",
		Fields: []*schema.FieldBuilder{
			{Name: "target", Number: 1, Kind: schema.MessageKind, TypeName: "test.Target", Cardinality: schema.Optional},
		},
	})
	field := wrapper.Messages()[0].FieldByName("target")
	if field.IsResolved() {
		t.Fatal("field should be unresolved before registration")
	}

	if err := r.RegisterFile(wrapper); err != nil {
		t.Fatalf("RegisterFile(wrapper): %v", err)
	}
	if !field.IsResolved() {
		t.Fatal("field should resolve once its target file is registered")
	}
	if field.Message() != target.Messages()[0] {
		t.Fatal("field should resolve to the registered Target descriptor")
	}
}

func TestRegisterFileResolvesForwardReferenceOnLaterFile(t *testing.T) {
	r := New()
	wrapper := buildFile(t, "wrapper.proto", &schema.MessageBuilder{
		Name: "Wrapper",
		Fields: []*schema.FieldBuilder{
			{Name: "target", Number: 1, Kind: schema.MessageKind, TypeName: "test.Target", Cardinality: schema.Optional},
		},
	})
	if err := r.RegisterFile(wrapper); err != nil {
		t.Fatalf("RegisterFile(wrapper): %v", err)
	}
	field := wrapper.Messages()[0].FieldByName("target")
	if field.IsResolved() {
		t.Fatal("field should stay unresolved until its target is registered")
	}

	target := buildFile(t, "target.proto", &schema.MessageBuilder{Name: "Target"})
	if err := r.RegisterFile(target); err != nil {
		t.Fatalf("RegisterFile(target): %v", err)
	}
	if !field.IsResolved() {
		t.Fatal("registering the target file later should still resolve the earlier field")
	}
}

func TestFindFileContainingSymbol(t *testing.T) {
	r := New()
	fd := buildFile(t, "a.proto", &schema.MessageBuilder{Name: "Foo"})
	if err := r.RegisterFile(fd); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if f := r.FindFileContainingSymbol("test.Foo"); f != fd {
		t.Fatalf("FindFileContainingSymbol = %v, want %v", f, fd)
	}
}

func TestRemoveFile(t *testing.T) {
	r := New()
	fd := buildFile(t, "a.proto", &schema.MessageBuilder{Name: "Foo"})
	if err := r.RegisterFile(fd); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if !r.RemoveFile("a.proto") {
		t.Fatal("expected RemoveFile to report removal")
	}
	if r.FindMessage("test.Foo") != nil {
		t.Fatal("symbol should be gone after RemoveFile")
	}
	if r.RemoveFile("a.proto") {
		t.Fatal("second RemoveFile should report no-op")
	}
}

func TestClear(t *testing.T) {
	r := New()
	fd := buildFile(t, "a.proto", &schema.MessageBuilder{Name: "Foo"})
	if err := r.RegisterFile(fd); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	r.Clear()
	if r.FindMessage("test.Foo") != nil {
		t.Fatal("Clear should empty the registry")
	}
	if r.FindFile("a.proto") != nil {
		t.Fatal("Clear should remove files")
	}
}

func TestResolveDependencies(t *testing.T) {
	r := New()
	leaf := buildFile(t, "leaf.proto", &schema.MessageBuilder{Name: "Leaf"})
	if err := r.RegisterFile(leaf); err != nil {
		t.Fatalf("RegisterFile(leaf): %v", err)
	}
	root := buildFile(t, "root.proto", &schema.MessageBuilder{
		Name: "Root",
		Fields: []*schema.FieldBuilder{
			{Name: "leaf", Number: 1, Kind: schema.MessageKind, TypeName: "test.Leaf", Cardinality: schema.Optional},
		},
	})
	if err := r.RegisterFile(root); err != nil {
		t.Fatalf("RegisterFile(root): %v", err)
	}
	deps, err := r.ResolveDependencies("test.Root")
	if err != nil {
		t.Fatalf("ResolveDependencies: %v", err)
	}
	if !deps["test.Leaf"] {
		t.Fatalf("expected test.Leaf in dependency set, got %v", deps)
	}
	if deps["test.Root"] {
		t.Fatal("dependency set should exclude the root itself")
	}
}

func TestResolveDependenciesHandlesSelfReferenceWithoutLooping(t *testing.T) {
	r := New()
	tree := buildFile(t, "tree.proto", &schema.MessageBuilder{
		Name: "Node",
		Fields: []*schema.FieldBuilder{
			{Name: "children", Number: 1, Kind: schema.MessageKind, TypeName: "test.Node", Cardinality: schema.Repeated},
		},
	})
	if err := r.RegisterFile(tree); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	deps, err := r.ResolveDependencies("test.Node")
	if err != nil {
		t.Fatalf("ResolveDependencies: %v", err)
	}
	if deps["test.Node"] {
		t.Fatal("self-reference should be excluded from the dependency set")
	}
}

func TestResolveDependenciesUnknownSymbolFails(t *testing.T) {
	r := New()
	_, err := r.ResolveDependencies("test.DoesNotExist")
	if !protoerr.Is(err, protoerr.TypeNotFound) {
		t.Fatalf("expected TypeNotFound, got %v", err)
	}
}
