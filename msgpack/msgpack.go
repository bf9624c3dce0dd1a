// Package msgpack provides a MessagePack codec for porter documents.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/porter"
)

// msgpackCodec implements porter.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec. Map keys are written in sorted order so
// that equal property maps encode to equal bytes.
func New() porter.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// Encode writes the non-nil properties of bean as a MessagePack map.
func Encode(bean any) ([]byte, error) {
	return porter.Encode(New(), bean)
}

// Decode reads a MessagePack map into the properties of target.
func Decode(data []byte, target any) error {
	return porter.Decode(New(), data, target)
}
