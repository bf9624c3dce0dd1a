// Package json provides a JSON codec for porter documents.
package json

import (
	"encoding/json"

	"github.com/zoobzio/porter"
)

// jsonCodec implements porter.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec.
func New() porter.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Encode writes the non-nil properties of bean as a JSON object.
func Encode(bean any) ([]byte, error) {
	return porter.Encode(New(), bean)
}

// Decode reads a JSON object into the properties of target.
// Numbers arrive as float64 and timestamps as strings; both are
// converted to the property types.
func Decode(data []byte, target any) error {
	return porter.Decode(New(), data, target)
}
