package porter

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// timer is implemented by driver date types such as bson's DateTime.
type timer interface {
	Time() time.Time
}

var timeType = reflect.TypeFor[time.Time]()

// FromMap writes the entries of values into the writable properties of
// target, a non-nil pointer to a struct. Entries are matched by property
// name, exactly first and then case-insensitively. Nil entries and
// entries without a property are ignored.
//
// Values assignable to the property type are set as they are. Other values
// are decoded weakly, so "42" fills an int and an RFC 3339 string fills a
// time.Time.
func FromMap(values map[string]any, target any) error {
	if isNilValue(target) {
		return newArgumentError("target", "")
	}
	dst := reflect.ValueOf(target)
	if dst.Kind() != reflect.Pointer || dst.Elem().Kind() != reflect.Struct {
		return newArgumentError("target", "must be a pointer to a struct, got "+dst.Type().String())
	}

	start := time.Now()
	count, err := fromMap(values, dst.Elem())
	emitCopyComplete(context.Background(), modeMap, reflect.TypeOf(values), dst.Type(), count, time.Since(start), err)
	return err
}

// MapTo is the generic form of FromMap returning a new *T.
func MapTo[T any](values map[string]any) (*T, error) {
	target := reflect.TypeFor[T]()
	if err := newInstance(target); err != nil {
		return nil, err
	}
	scan[T]()
	out := new(T)
	if err := FromMap(values, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromMap(values map[string]any, root reflect.Value) (int, error) {
	if len(values) == 0 {
		return 0, nil
	}

	shape, err := ShapeOf(root.Type())
	if err != nil {
		return 0, err
	}

	folded := make(map[string]string, len(values))
	for k := range values {
		folded[strings.ToLower(k)] = k
	}

	count := 0
	done := make(map[string]bool, len(shape.Writable))
	for i := range shape.Writable {
		p := &shape.Writable[i]
		if done[p.Name] {
			continue
		}
		value, ok := values[p.Name]
		if !ok {
			key, found := folded[strings.ToLower(p.Name)]
			if !found {
				continue
			}
			value = values[key]
		}
		done[p.Name] = true
		if isNilValue(value) {
			continue
		}

		v, err := convertValue(value, p.Type)
		if err != nil {
			return count, &ConversionError{Property: p.Name, Cause: err}
		}
		if err := p.write(root, v); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// convertValue returns value as a reflect.Value of type t.
func convertValue(value any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	out := reflect.New(t)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(timeValueHook),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		TagName:          tagName,
		Result:           out.Interface(),
	})
	if err != nil {
		return reflect.Value{}, err
	}
	if err := decoder.Decode(value); err != nil {
		return reflect.Value{}, err
	}
	return out.Elem(), nil
}

// timeValueHook unwraps driver date types into time.Time.
func timeValueHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	if tv, ok := data.(timer); ok {
		return tv.Time(), nil
	}
	return data, nil
}
