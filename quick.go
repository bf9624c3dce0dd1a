package porter

import (
	"context"
	"reflect"
	"time"
)

// QuickMap creates a new instance of target and copies every matching
// property of source into it through the cached copier for the pair.
// A nil source yields (nil, nil). The result is a pointer to the target
// struct type.
func QuickMap(source any, target reflect.Type) (any, error) {
	if isNilValue(source) {
		return nil, nil
	}
	st, err := structTarget(target)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := quickMap(source, st)
	emitCopyComplete(context.Background(), modeQuick, reflect.TypeOf(source), st, 1, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// Map is the generic form of QuickMap. T must be a struct type.
func Map[T any](source any) (*T, error) {
	if isNilValue(source) {
		return nil, nil
	}
	target := reflect.TypeFor[T]()
	if err := newInstance(target); err != nil {
		return nil, err
	}
	scan[T]()

	start := time.Now()
	out, err := quickMap(source, target)
	emitCopyComplete(context.Background(), modeQuick, reflect.TypeOf(source), target, 1, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out.Interface().(*T), nil
}

// QuickMapList maps each element of sources, a slice or array, to a new
// instance of target. A nil or empty input yields an empty, non-nil result
// without inspecting target. Nil elements produce nil entries.
//
// Each element is copied with the copier of its own dynamic type, so a
// slice of interfaces holding different struct types maps correctly.
func QuickMapList(sources any, target reflect.Type) ([]any, error) {
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
		out, err := quickMap(elem.Interface(), st)
		if err != nil {
			emitCopyComplete(context.Background(), modeQuick, reflect.TypeOf(sources), st, i, time.Since(start), err)
			return nil, err
		}
		result[i] = out.Interface()
	}
	emitCopyComplete(context.Background(), modeQuick, reflect.TypeOf(sources), st, len(result), time.Since(start), nil)
	return result, nil
}

// MapList is the generic form of QuickMapList.
func MapList[T any](sources any) ([]*T, error) {
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
		out, err := quickMap(elem.Interface(), target)
		if err != nil {
			emitCopyComplete(context.Background(), modeQuick, reflect.TypeOf(sources), target, i, time.Since(start), err)
			return nil, err
		}
		result[i] = out.Interface().(*T)
	}
	emitCopyComplete(context.Background(), modeQuick, reflect.TypeOf(sources), target, len(result), time.Since(start), nil)
	return result, nil
}

// QuickCopy copies every matching property of source into target, a
// pointer to a struct. Both arguments are checked before anything is
// written.
func QuickCopy(source, target any) error {
	if isNilValue(source) {
		return newArgumentError("source", "")
	}
	if isNilValue(target) {
		return newArgumentError("target", "")
	}

	start := time.Now()
	err := quickCopy(source, target)
	emitCopyComplete(context.Background(), modeQuick, reflect.TypeOf(source), reflect.TypeOf(target), 1, time.Since(start), err)
	return err
}

func quickCopy(source, target any) error {
	dst := reflect.ValueOf(target)
	if dst.Kind() != reflect.Pointer || dst.Elem().Kind() != reflect.Struct {
		return newArgumentError("target", "must be a pointer to a struct, got "+dst.Type().String())
	}
	src, err := addressable(reflect.ValueOf(source), "source")
	if err != nil {
		return err
	}

	c, err := CopierFor(src.Type(), dst.Type())
	if err != nil {
		return err
	}
	return c.copy(src, dst.Elem())
}

// quickMap copies source into a freshly allocated target and returns the
// pointer to it.
func quickMap(source any, target reflect.Type) (reflect.Value, error) {
	src, err := addressable(reflect.ValueOf(source), "source")
	if err != nil {
		return reflect.Value{}, err
	}
	c, err := CopierFor(src.Type(), target)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(target)
	if err := c.copy(src, out.Elem()); err != nil {
		return reflect.Value{}, err
	}
	return out, nil
}

// newInstance checks that t can be instantiated as a struct.
func newInstance(t reflect.Type) error {
	if t == nil || t.Kind() != reflect.Struct {
		return &ConstructionError{Type: t}
	}
	return nil
}

// structTarget dereferences a target type given by reflection.
func structTarget(t reflect.Type) (reflect.Type, error) {
	st := indirect(t)
	if err := newInstance(st); err != nil {
		return nil, &ConstructionError{Type: t}
	}
	return st, nil
}

// elements returns the elements of a slice or array. nil is empty.
func elements(sources any) ([]reflect.Value, error) {
	if sources == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(sources)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, newArgumentError("sources", "must be a slice or array, got "+rv.Type().String())
	}

	elems := make([]reflect.Value, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i)
	}
	return elems, nil
}
