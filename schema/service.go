package schema

// ServiceDescriptor describes an RPC service declaration: a name plus
// ordered methods.
type ServiceDescriptor struct {
	name     Name
	fullName FullName
	file     *FileDescriptor
	methods  []*MethodDescriptor
	byName   map[Name]*MethodDescriptor
}

// Name returns the service's simple name.
func (s *ServiceDescriptor) Name() Name { return s.name }

// FullName returns the service's fully-qualified name.
func (s *ServiceDescriptor) FullName() FullName { return s.fullName }

// File returns the owning file.
func (s *ServiceDescriptor) File() *FileDescriptor { return s.file }

// Methods returns the service's methods in declaration order.
func (s *ServiceDescriptor) Methods() []*MethodDescriptor { return s.methods }

// MethodByName looks up a method by its simple name.
func (s *ServiceDescriptor) MethodByName(name Name) *MethodDescriptor { return s.byName[name] }

func (s *ServiceDescriptor) String() string {
	return "service " + string(s.fullName)
}

// MethodDescriptor describes a single RPC method: input/output type names
// and two streaming flags.
type MethodDescriptor struct {
	name              Name
	parent            *ServiceDescriptor
	inputTypeName     FullName
	outputTypeName    FullName
	resolvedInput     *MessageDescriptor
	resolvedOutput    *MessageDescriptor
	isStreamingClient bool
	isStreamingServer bool
}

// Name returns the method's simple name.
func (m *MethodDescriptor) Name() Name { return m.name }

// Parent returns the owning service.
func (m *MethodDescriptor) Parent() *ServiceDescriptor { return m.parent }

// InputTypeName returns the fully-qualified name of the input message type.
func (m *MethodDescriptor) InputTypeName() FullName { return m.inputTypeName }

// OutputTypeName returns the fully-qualified name of the output message type.
func (m *MethodDescriptor) OutputTypeName() FullName { return m.outputTypeName }

// InputType returns the resolved input MessageDescriptor, or nil if
// unresolved.
func (m *MethodDescriptor) InputType() *MessageDescriptor { return m.resolvedInput }

// OutputType returns the resolved output MessageDescriptor, or nil if
// unresolved.
func (m *MethodDescriptor) OutputType() *MessageDescriptor { return m.resolvedOutput }

// IsStreamingClient reports whether the client streams multiple messages.
func (m *MethodDescriptor) IsStreamingClient() bool { return m.isStreamingClient }

// IsStreamingServer reports whether the server streams multiple messages.
func (m *MethodDescriptor) IsStreamingServer() bool { return m.isStreamingServer }

// BindInput sets the resolved input message type. It exists for the type
// registry to call once a cross-file reference is resolvable.
func (m *MethodDescriptor) BindInput(md *MessageDescriptor) { m.resolvedInput = md }

// BindOutput sets the resolved output message type. See BindInput.
func (m *MethodDescriptor) BindOutput(md *MessageDescriptor) { m.resolvedOutput = md }

func (m *MethodDescriptor) bindInput(md *MessageDescriptor)  { m.resolvedInput = md }
func (m *MethodDescriptor) bindOutput(md *MessageDescriptor) { m.resolvedOutput = md }
