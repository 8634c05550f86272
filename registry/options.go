package registry

import "github.com/kalexmills/protodyn/wellknown"

// WithWellKnownTypes registers the google.protobuf.* descriptors (Any,
// Timestamp, Duration, Empty, FieldMask, Struct, Value, ListValue) as part
// of New, so callers that need them do not have to register the file
// themselves.
func WithWellKnownTypes() Option {
	return func(r *TypeRegistry) {
		if err := r.RegisterFile(wellknown.File()); err != nil {
			// wellknown.File()'s shape is fixed and exercised by its own
			// tests; registering it into a fresh registry cannot fail.
			panic(err)
		}
	}
}
