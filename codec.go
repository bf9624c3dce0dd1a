package porter

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Encode marshals the map view of bean with codec. Only properties with a
// non-nil value are written.
func Encode(codec Codec, bean any) ([]byte, error) {
	if codec == nil {
		return nil, newArgumentError("codec", "")
	}
	values, err := BeanToMap(bean)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(values)
}

// Decode unmarshals data into a property value map and writes it into
// target with FromMap.
func Decode(codec Codec, data []byte, target any) error {
	if codec == nil {
		return newArgumentError("codec", "")
	}
	var values map[string]any
	if err := codec.Unmarshal(data, &values); err != nil {
		return err
	}
	return FromMap(values, target)
}
