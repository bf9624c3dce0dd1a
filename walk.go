package porter

import (
	"reflect"
	"slices"
	"strings"
)

// Walk visits every readable property of bean that holds a non-nil value.
//
// bean may be a struct, a pointer to a struct, a map with string keys
// (entries are walked in sorted key order) or a PropertyWalker. Properties
// are visited level by level through embedded structs; a name declared on
// several levels is visited once per level, so consumers that build maps
// keep the last value written.
//
// An accessor the outer struct redeclares over an embedded one is visited
// once, at the embedded level, and answers with the outer method. Go's
// method sets do not tell a redeclared method from a promoted one, so the
// outer level never lists it separately. When the embedded level is a nil
// pointer the outer method still answers; a promoted accessor there has no
// receiver and is skipped.
//
// Values reported by a PropertyWalker are filtered the same way: nil
// values are dropped.
//
// If an accessor panics or returns an error, Walk stops and returns an
// *InvocationError. Properties visited before the failure stay visited.
func Walk(bean any, visit func(name string, value any)) error {
	return walk(bean, false, func(name string, value any) error {
		visit(name, value)
		return nil
	})
}

// walk is the shared traversal. withNil passes nil-valued properties to
// visit as untyped nil instead of skipping them.
func walk(bean any, withNil bool, visit func(name string, value any) error) error {
	if isNilValue(bean) {
		return newArgumentError("bean", "")
	}

	if w, ok := bean.(PropertyWalker); ok {
		return w.WalkProperties(func(name string, value any) error {
			if isNilValue(value) {
				if !withNil {
					return nil
				}
				value = nil
			}
			return visit(name, value)
		})
	}

	rv := reflect.ValueOf(bean)
	if rv.Kind() == reflect.Map {
		return walkMap(rv, withNil, visit)
	}

	root, err := addressable(rv, "bean")
	if err != nil {
		return err
	}

	shape, err := ShapeOf(root.Type())
	if err != nil {
		return err
	}

	for i := range shape.Readable {
		p := &shape.Readable[i]
		v, ok, err := p.read(root)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if isNil(v) {
			if withNil {
				if err := visit(p.Name, nil); err != nil {
					return err
				}
			}
			continue
		}
		if err := visit(p.Name, v.Interface()); err != nil {
			return err
		}
	}

	return nil
}

func walkMap(rv reflect.Value, withNil bool, visit func(name string, value any) error) error {
	if rv.Type().Key().Kind() != reflect.String {
		return newArgumentError("bean", "must be a map with string keys, got "+rv.Type().String())
	}

	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, k := range keys {
		v := rv.MapIndex(k)
		if isNil(v) {
			if withNil {
				if err := visit(k.String(), nil); err != nil {
					return err
				}
			}
			continue
		}
		if err := visit(k.String(), v.Interface()); err != nil {
			return err
		}
	}

	return nil
}
