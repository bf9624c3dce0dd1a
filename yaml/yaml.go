// Package yaml provides a YAML codec for porter documents.
package yaml

import (
	"bytes"

	"github.com/zoobzio/porter"
	"gopkg.in/yaml.v3"
)

// indent is the number of spaces per nesting level.
const indent = 2

// yamlCodec implements porter.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() porter.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML data into v. Only the first document is read.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Encode writes the non-nil properties of bean as a YAML mapping.
func Encode(bean any) ([]byte, error) {
	return porter.Encode(New(), bean)
}

// Decode reads a YAML mapping into the properties of target.
func Decode(data []byte, target any) error {
	return porter.Decode(New(), data, target)
}
