package porter

import (
	"reflect"
)

// Copier transfers properties between two shapes: every writable target
// property takes the value of the first readable source property with the
// same name whose type is assignable to it. There is no coercion and no
// nested mapping.
//
// A Copier is immutable once compiled and holds no per-call state, so one
// instance may serve any number of concurrent copies.
type Copier struct {
	source reflect.Type
	target reflect.Type
	steps  []copyStep
}

// copyStep pairs a source reader with a target writer.
type copyStep struct {
	from Property
	to   Property
}

// Compile builds a Copier from source to target. Both must be struct types
// or pointers to struct types. Most callers want CopierFor, which caches
// the result.
func Compile(source, target reflect.Type) (*Copier, error) {
	if _, err := structType(source, "source"); err != nil {
		return nil, err
	}
	if _, err := structType(target, "target"); err != nil {
		return nil, err
	}

	src, err := ShapeOf(source)
	if err != nil {
		return nil, err
	}
	dst, err := ShapeOf(target)
	if err != nil {
		return nil, err
	}

	c := &Copier{source: src.Type, target: dst.Type}
	matched := make(map[string]bool, len(dst.Writable))
	for _, to := range dst.Writable {
		if matched[to.Name] {
			continue
		}
		for _, from := range src.Readable {
			if from.Name == to.Name && from.Type.AssignableTo(to.Type) {
				c.steps = append(c.steps, copyStep{from: from, to: to})
				matched[to.Name] = true
				break
			}
		}
	}

	return c, nil
}

// Source returns the source struct type.
func (c *Copier) Source() reflect.Type {
	return c.source
}

// Target returns the target struct type.
func (c *Copier) Target() reflect.Type {
	return c.target
}

// Properties returns the names of the matched properties in copy order.
func (c *Copier) Properties() []string {
	names := make([]string, len(c.steps))
	for i, step := range c.steps {
		names[i] = step.to.Name
	}
	return names
}

// Copy transfers matching properties from source into target. source is a
// value of, or pointer to, the source type; target must be a non-nil
// pointer to the target type. Nil values are copied like any other value.
func (c *Copier) Copy(source, target any) error {
	if isNilValue(source) {
		return newArgumentError("source", "")
	}
	if isNilValue(target) {
		return newArgumentError("target", "")
	}

	dst := reflect.ValueOf(target)
	if dst.Kind() != reflect.Pointer || dst.Elem().Type() != c.target {
		return newArgumentError("target", "must be a *"+c.target.String())
	}

	src, err := addressable(reflect.ValueOf(source), "source")
	if err != nil {
		return err
	}
	if src.Type() != c.source {
		return newArgumentError("source", "must be a "+c.source.String()+", got "+src.Type().String())
	}

	return c.copy(src, dst.Elem())
}

// copy runs the plan on an addressable source and target struct.
func (c *Copier) copy(src, dst reflect.Value) error {
	for i := range c.steps {
		step := &c.steps[i]
		v, ok, err := step.from.read(src)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := step.to.write(dst, v); err != nil {
			return err
		}
	}
	return nil
}
