// Package registry implements a process-level type registry: interning
// descriptors by fully-qualified name, resolving cross-file type
// references, and enforcing no-duplicate invariants, with wait-free
// concurrent reads and a single exclusive writer. It is grounded on
// reflect/protoregistry/registry.go's Files/Types split, adapted here into
// one registry that owns a single pair of indices rather than
// protoregistry's two separate global vars.
package registry

import (
	"sync"

	"github.com/kalexmills/protodyn/protoerr"
	"github.com/kalexmills/protodyn/schema"
)

// TypeRegistry is a process-level index from fully-qualified name to
// descriptor. The zero value is not usable; construct with New.
type TypeRegistry struct {
	mu           sync.RWMutex
	files        map[string]*schema.FileDescriptor
	symbols      map[schema.FullName]interface{}
	fileOfSymbol map[schema.FullName]string
}

// Option configures a TypeRegistry at construction time. Hosts that want a
// process-wide registry construct their own instance; functional options
// follow protoregistry's idiom of swappable globals, generalized here into
// explicit constructor options.
type Option func(*TypeRegistry)

// New constructs an empty TypeRegistry, applying any options in order.
func New(opts ...Option) *TypeRegistry {
	r := &TypeRegistry{
		files:        make(map[string]*schema.FileDescriptor),
		symbols:      make(map[schema.FullName]interface{}),
		fileOfSymbol: make(map[schema.FullName]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterFile atomically adds fd and every descriptor it transitively owns
// to the registry, indexed by fully-qualified name. It fails DuplicateFile
// if fd's path is already registered, or DuplicateSymbol if any owned name
// collides with an existing entry — in either failure case the registry is
// left completely unchanged.
//
// RegisterFile also resolves any field or method type reference, in any
// registered file, that targets a symbol only just made available by this
// call — and vice versa, any reference in fd that targets an
// already-registered file.
func (r *TypeRegistry) RegisterFile(fd *schema.FileDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.files[fd.Path()]; dup {
		return protoerr.New(protoerr.DuplicateFile, "%s", fd.Path())
	}
	owned := fd.Symbols()
	for name := range owned {
		if _, dup := r.symbols[name]; dup {
			return protoerr.New(protoerr.DuplicateSymbol, "%s", name)
		}
	}

	r.files[fd.Path()] = fd
	for name, d := range owned {
		r.symbols[name] = d
		r.fileOfSymbol[name] = fd.Path()
	}
	r.resolveAllLocked()
	return nil
}

// resolveAllLocked re-runs cross-file type resolution over every registered
// file. Registration is rare and lookup is hot, so a full re-scan on every
// write is an acceptable trade.
func (r *TypeRegistry) resolveAllLocked() {
	for _, f := range r.files {
		for _, m := range f.Messages() {
			resolveMessageRefs(m, r.symbols)
		}
		for _, s := range f.Services() {
			resolveServiceRefs(s, r.symbols)
		}
	}
}

func resolveMessageRefs(m *schema.MessageDescriptor, symbols map[schema.FullName]interface{}) {
	for _, f := range m.Fields() {
		if f.IsResolved() {
			continue
		}
		switch f.Kind() {
		case schema.MessageKind, schema.GroupKind:
			if v, ok := symbols[f.TypeName()]; ok {
				if md, ok := v.(*schema.MessageDescriptor); ok {
					f.BindMessage(md)
				}
			}
		case schema.EnumKind:
			if v, ok := symbols[f.TypeName()]; ok {
				if ed, ok := v.(*schema.EnumDescriptor); ok {
					f.BindEnum(ed)
				}
			}
		}
	}
	for _, f := range m.Fields() {
		schema.DetectMap(f)
	}
	for _, nm := range m.Messages() {
		resolveMessageRefs(nm, symbols)
	}
}

func resolveServiceRefs(s *schema.ServiceDescriptor, symbols map[schema.FullName]interface{}) {
	for _, method := range s.Methods() {
		if method.InputType() == nil {
			if v, ok := symbols[method.InputTypeName()]; ok {
				if md, ok := v.(*schema.MessageDescriptor); ok {
					method.BindInput(md)
				}
			}
		}
		if method.OutputType() == nil {
			if v, ok := symbols[method.OutputTypeName()]; ok {
				if md, ok := v.(*schema.MessageDescriptor); ok {
					method.BindOutput(md)
				}
			}
		}
	}
}

// FindFile returns the registered file at path, or nil.
func (r *TypeRegistry) FindFile(path string) *schema.FileDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.files[path]
}

// FindMessage returns the registered message named fqn, or nil. Total:
// never fails.
func (r *TypeRegistry) FindMessage(fqn schema.FullName) *schema.MessageDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	md, _ := r.symbols[fqn].(*schema.MessageDescriptor)
	return md
}

// FindEnum returns the registered enum named fqn, or nil.
func (r *TypeRegistry) FindEnum(fqn schema.FullName) *schema.EnumDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ed, _ := r.symbols[fqn].(*schema.EnumDescriptor)
	return ed
}

// FindService returns the registered service named fqn, or nil.
func (r *TypeRegistry) FindService(fqn schema.FullName) *schema.ServiceDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sd, _ := r.symbols[fqn].(*schema.ServiceDescriptor)
	return sd
}

// FindField returns the registered field named fqn, or nil.
func (r *TypeRegistry) FindField(fqn schema.FullName) *schema.FieldDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fld, _ := r.symbols[fqn].(*schema.FieldDescriptor)
	return fld
}

// FindFileContainingSymbol returns the file that owns fqn, or nil.
func (r *TypeRegistry) FindFileContainingSymbol(fqn schema.FullName) *schema.FileDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.fileOfSymbol[fqn]
	if !ok {
		return nil
	}
	return r.files[path]
}

// RemoveFile transactionally removes the file at path and every symbol it
// owns, reporting whether a file was actually removed.
func (r *TypeRegistry) RemoveFile(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[path]
	if !ok {
		return false
	}
	for name := range f.Symbols() {
		delete(r.symbols, name)
		delete(r.fileOfSymbol, name)
	}
	delete(r.files, path)
	return true
}

// Clear empties the registry.
func (r *TypeRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = make(map[string]*schema.FileDescriptor)
	r.symbols = make(map[schema.FullName]interface{})
	r.fileOfSymbol = make(map[schema.FullName]string)
}

// ResolveDependencies returns the set of fully-qualified names transitively
// referenced by fqn (nested types, and fields/methods referencing message
// or enum types), excluding fqn itself. It fails TypeNotFound if fqn is not
// registered.
func (r *TypeRegistry) ResolveDependencies(fqn schema.FullName) (map[schema.FullName]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	root, ok := r.symbols[fqn]
	if !ok {
		return nil, protoerr.New(protoerr.TypeNotFound, "%s", fqn)
	}
	result := make(map[schema.FullName]bool)
	visited := make(map[schema.FullName]bool)
	visitDependency(fqn, root, result, visited)
	delete(result, fqn)
	return result, nil
}

func visitDependency(name schema.FullName, d interface{}, result, visited map[schema.FullName]bool) {
	if visited[name] {
		return
	}
	visited[name] = true
	switch v := d.(type) {
	case *schema.MessageDescriptor:
		for _, nm := range v.Messages() {
			result[nm.FullName()] = true
			visitDependency(nm.FullName(), nm, result, visited)
		}
		for _, ne := range v.Enums() {
			result[ne.FullName()] = true
			visitDependency(ne.FullName(), ne, result, visited)
		}
		for _, f := range v.Fields() {
			visitFieldType(f, result, visited)
		}
	case *schema.EnumDescriptor:
		// Enums reference no further symbols.
	case *schema.FieldDescriptor:
		visitFieldType(v, result, visited)
	case *schema.ServiceDescriptor:
		for _, m := range v.Methods() {
			if in := m.InputType(); in != nil {
				result[in.FullName()] = true
				visitDependency(in.FullName(), in, result, visited)
			}
			if out := m.OutputType(); out != nil {
				result[out.FullName()] = true
				visitDependency(out.FullName(), out, result, visited)
			}
		}
	}
}

func visitFieldType(f *schema.FieldDescriptor, result, visited map[schema.FullName]bool) {
	switch f.Kind() {
	case schema.MessageKind, schema.GroupKind:
		if md := f.Message(); md != nil {
			result[md.FullName()] = true
			visitDependency(md.FullName(), md, result, visited)
		}
	case schema.EnumKind:
		if ed := f.Enum(); ed != nil {
			result[ed.FullName()] = true
			visitDependency(ed.FullName(), ed, result, visited)
		}
	}
}
