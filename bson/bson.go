// Package bson provides a BSON codec for porter documents.
package bson

import (
	"github.com/zoobzio/porter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

// bsonCodec implements porter.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() porter.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. Embedded documents decoded into
// untyped values become bson.M rather than bson.D, so they can be read
// back as property value maps.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return err
	}
	dec.DefaultDocumentM()
	return dec.Decode(v)
}

// Encode writes the non-nil properties of bean as a BSON document.
func Encode(bean any) ([]byte, error) {
	return porter.Encode(New(), bean)
}

// Decode reads a BSON document into the properties of target. Dates
// arrive as primitive.DateTime and are converted to time.Time.
func Decode(data []byte, target any) error {
	return porter.Decode(New(), data, target)
}
