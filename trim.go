package porter

import (
	"context"
	"reflect"
	"strings"
)

var stringType = reflect.TypeFor[string]()

// TrimStringFields trims leading and trailing white space from every
// string field declared directly on the struct bean points to. A nil bean
// is a no-op.
//
// Each field is read through Get<Field>() and written through
// Set<Field>(string) when those exist, otherwise through the field itself
// if it is exported. Fields of named string types, *string fields and
// fields of embedded structs are left alone.
func TrimStringFields(bean any) error {
	if isNilValue(bean) {
		return nil
	}
	rv := reflect.ValueOf(bean)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return newArgumentError("bean", "must be a pointer to a struct, got "+rv.Type().String())
	}

	trimmed, err := trimFields(rv)
	emitTrimComplete(context.Background(), rv.Type(), trimmed, err)
	return err
}

func trimFields(ptr reflect.Value) (int, error) {
	root := ptr.Elem()
	rt := root.Type()
	pt := ptr.Type()

	trimmed := 0
	for _, fm := range describe(rt).Fields {
		if fm.ReflectType != stringType {
			continue
		}
		sf := rt.Field(fm.Index[0])
		field := root.Field(fm.Index[0])
		suffix := capitalize(sf.Name)

		getter, hasGetter := trimAccessor(pt, prefixGet+suffix, true)
		setter, hasSetter := trimAccessor(pt, prefixSet+suffix, false)

		var current string
		switch {
		case hasGetter:
			out, err := invoke(rt, getter.Name, ptr.Method(getter.Index), nil)
			if err != nil {
				return trimmed, err
			}
			if len(out) == 2 {
				if e, _ := out[1].Interface().(error); e != nil {
					return trimmed, &InvocationError{Type: rt, Method: getter.Name, Cause: e}
				}
			}
			current = out[0].String()
		case sf.IsExported():
			current = field.String()
		default:
			continue
		}

		value := strings.TrimSpace(current)
		switch {
		case hasSetter:
			out, err := invoke(rt, setter.Name, ptr.Method(setter.Index), []reflect.Value{reflect.ValueOf(value)})
			if err != nil {
				return trimmed, err
			}
			if len(out) == 1 {
				if e, _ := out[0].Interface().(error); e != nil {
					return trimmed, &InvocationError{Type: rt, Method: setter.Name, Cause: e}
				}
			}
		case sf.IsExported():
			field.SetString(value)
		default:
			continue
		}

		if value != current {
			trimmed++
		}
	}
	return trimmed, nil
}

// trimAccessor finds a string getter or setter named name on pt.
func trimAccessor(pt reflect.Type, name string, getter bool) (reflect.Method, bool) {
	m, ok := pt.MethodByName(name)
	if !ok {
		return reflect.Method{}, false
	}
	var typ reflect.Type
	if getter {
		typ, _, ok = getterSignature(m.Type)
	} else {
		typ, _, ok = setterSignature(m.Type)
	}
	if !ok || typ != stringType {
		return reflect.Method{}, false
	}
	return m, true
}
