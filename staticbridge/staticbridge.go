// Package staticbridge converts between a dynamic.Message and any
// statically-typed Go value that already knows how to marshal/unmarshal
// itself to the protobuf wire format (e.g. generated message code from
// another runtime). It is grounded on proto/encode.go and proto/decode.go,
// composed here through codec instead of duplicating their field-walking
// logic, since a static message and a dynamic.Message agree on nothing but
// the wire bytes they produce and consume.
package staticbridge

import (
	"github.com/kalexmills/protodyn/codec"
	"github.com/kalexmills/protodyn/dynamic"
	"github.com/kalexmills/protodyn/schema"
)

// External is implemented by any statically-typed protobuf message this
// module does not itself understand the layout of. A generated Go struct's
// usual (Un)marshal methods satisfy it without modification.
type External interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// FromExternal converts a static message into a dynamic.Message conforming
// to desc, by marshaling ext to wire bytes and decoding those bytes against
// desc. The two schemas must agree on field numbers and wire types for the
// result to be meaningful; mismatches surface as the same errors
// codec.Unmarshal would otherwise report.
func FromExternal(ext External, desc *schema.MessageDescriptor) (*dynamic.Message, error) {
	b, err := ext.Marshal()
	if err != nil {
		return nil, err
	}
	return codec.Unmarshal(b, desc)
}

// ToExternal populates ext from msg, by encoding msg with codec.Marshal and
// unmarshaling the resulting bytes into ext.
func ToExternal(msg *dynamic.Message, ext External) error {
	b, err := codec.Marshal(msg)
	if err != nil {
		return err
	}
	return ext.Unmarshal(b)
}

// FromBytes decodes raw wire bytes, produced by any protobuf
// implementation, into a dynamic.Message conforming to desc.
func FromBytes(b []byte, desc *schema.MessageDescriptor) (*dynamic.Message, error) {
	return codec.Unmarshal(b, desc)
}

// ToBytes encodes msg to wire bytes consumable by any protobuf
// implementation that agrees on msg's schema.
func ToBytes(msg *dynamic.Message) ([]byte, error) {
	return codec.Marshal(msg)
}
