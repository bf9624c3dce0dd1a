package porter

import (
	"context"
	"reflect"
	"time"

	"github.com/jinzhu/copier"
)

// DeepMapper copies the full object graph of source into destination,
// a pointer. Implementations must be safe for concurrent use.
type DeepMapper interface {
	Map(source, destination any) error
}

// copierMapper is the default DeepMapper.
type copierMapper struct {
	option copier.Option
}

// CopierMapper returns a DeepMapper backed by jinzhu/copier in deep copy
// mode. Converters coerce between otherwise unassignable types.
func CopierMapper(converters ...copier.TypeConverter) DeepMapper {
	return &copierMapper{
		option: copier.Option{
			DeepCopy:   true,
			Converters: converters,
		},
	}
}

func (m *copierMapper) Map(source, destination any) error {
	return copier.CopyWithOption(destination, source, m.option)
}

// DeepOption configures a Deep service.
type DeepOption func(*deepConfig)

type deepConfig struct {
	mapper     DeepMapper
	converters []copier.TypeConverter
}

// WithMapper replaces the default mapper. Converters registered with
// WithConverter are ignored when a custom mapper is supplied.
func WithMapper(m DeepMapper) DeepOption {
	return func(c *deepConfig) {
		c.mapper = m
	}
}

// WithConverter registers a type converter on the default mapper.
func WithConverter(conv copier.TypeConverter) DeepOption {
	return func(c *deepConfig) {
		c.converters = append(c.converters, conv)
	}
}

// Deep copies whole object graphs through a DeepMapper. It is constructed
// explicitly and holds its mapper for its lifetime.
type Deep struct {
	mapper DeepMapper
}

// NewDeep creates a Deep service. Without options it uses CopierMapper.
func NewDeep(opts ...DeepOption) *Deep {
	cfg := &deepConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.mapper == nil {
		cfg.mapper = CopierMapper(cfg.converters...)
	}
	return &Deep{mapper: cfg.mapper}
}

// Mapper returns the configured mapper.
func (d *Deep) Mapper() DeepMapper {
	return d.mapper
}

// Map deep-maps source into a new instance of target. A nil source
// yields (nil, nil). The result is a pointer to the target struct type.
func (d *Deep) Map(source any, target reflect.Type) (any, error) {
	if isNilValue(source) {
		return nil, nil
	}
	st, err := structTarget(target)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := d.mapNew(source, st)
	emitCopyComplete(context.Background(), modeDeep, reflect.TypeOf(source), st, 1, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// MapList deep-maps each element of sources into a new instance of
// target. Nil and empty inputs yield an empty, non-nil result.
func (d *Deep) MapList(sources any, target reflect.Type) ([]any, error) {
	elems, err := elements(sources)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return []any{}, nil
	}
	st, err := structTarget(target)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := make([]any, len(elems))
	for i, elem := range elems {
		if isNil(elem) {
			continue
		}
		out, err := d.mapNew(elem.Interface(), st)
		if err != nil {
			emitCopyComplete(context.Background(), modeDeep, reflect.TypeOf(sources), st, i, time.Since(start), err)
			return nil, err
		}
		result[i] = out.Interface()
	}
	emitCopyComplete(context.Background(), modeDeep, reflect.TypeOf(sources), st, len(result), time.Since(start), nil)
	return result, nil
}

// Copy deep-maps source into destination, a non-nil pointer.
func (d *Deep) Copy(source, destination any) error {
	if isNilValue(source) {
		return newArgumentError("source", "")
	}
	if isNilValue(destination) {
		return newArgumentError("destination", "")
	}
	if reflect.TypeOf(destination).Kind() != reflect.Pointer {
		return newArgumentError("destination", "must be a pointer, got "+reflect.TypeOf(destination).String())
	}

	start := time.Now()
	err := d.mapInto(source, destination)
	emitCopyComplete(context.Background(), modeDeep, reflect.TypeOf(source), reflect.TypeOf(destination), 1, time.Since(start), err)
	return err
}

func (d *Deep) mapNew(source any, target reflect.Type) (reflect.Value, error) {
	out := reflect.New(target)
	if err := d.mapInto(source, out.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return out, nil
}

func (d *Deep) mapInto(source, destination any) error {
	if err := d.mapper.Map(source, destination); err != nil {
		return &MappingError{
			Source: reflect.TypeOf(source),
			Target: reflect.TypeOf(destination),
			Cause:  err,
		}
	}
	return nil
}

// DeepMap is the generic form of Deep.Map. T must be a struct type.
// Sources implementing Cloner of T copy themselves.
func DeepMap[T any](d *Deep, source any) (*T, error) {
	if isNilValue(source) {
		return nil, nil
	}
	target := reflect.TypeFor[T]()
	if err := newInstance(target); err != nil {
		return nil, err
	}
	scan[T]()

	start := time.Now()
	out, cloned := cloneOf[T](source)
	var err error
	if !cloned {
		out = new(T)
		err = d.mapInto(source, out)
	}
	emitCopyComplete(context.Background(), modeDeep, reflect.TypeOf(source), target, 1, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeepMapList is the generic form of Deep.MapList.
func DeepMapList[T any](d *Deep, sources any) ([]*T, error) {
	elems, err := elements(sources)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return []*T{}, nil
	}
	target := reflect.TypeFor[T]()
	if err := newInstance(target); err != nil {
		return nil, err
	}
	scan[T]()

	start := time.Now()
	result := make([]*T, len(elems))
	for i, elem := range elems {
		if isNil(elem) {
			continue
		}
		if out, ok := cloneOf[T](elem.Interface()); ok {
			result[i] = out
			continue
		}
		out := new(T)
		if err := d.mapInto(elem.Interface(), out); err != nil {
			emitCopyComplete(context.Background(), modeDeep, reflect.TypeOf(sources), target, i, time.Since(start), err)
			return nil, err
		}
		result[i] = out
	}
	emitCopyComplete(context.Background(), modeDeep, reflect.TypeOf(sources), target, len(result), time.Since(start), nil)
	return result, nil
}
