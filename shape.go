package porter

import (
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

// tagName renames or hides properties: `porter:"alias"`, `porter:"-"`.
const tagName = "porter"

func init() {
	sentinel.Tag(tagName)
}

var errorType = reflect.TypeFor[error]()

// Property describes one logical property of a shape, backed either by an
// exported field or by an accessor/setter method.
type Property struct {
	Name  string       // logical name (first rune lower-cased)
	Type  reflect.Type // getter result, setter argument or field type
	Level int          // embedding depth, 0 for the outermost struct

	owner    reflect.Type // struct type declaring the property
	member   string       // field or method name, for error messages
	path     []int        // embedded field indices from the root to owner
	index    int          // field index within owner, -1 for methods
	method   int          // method index on the receiver pointer type
	virtual  bool         // method resolved on the root pointer type
	fallible bool         // method has a trailing error result
	sealed   bool         // owner sits behind an unexported embedded pointer
}

// Method reports whether the property is backed by a method.
func (p *Property) Method() bool {
	return p.index < 0
}

// Shape is the ordered set of readable and writable properties of a
// struct type, walked level by level through its embedded structs.
type Shape struct {
	Type     reflect.Type
	Readable []Property
	Writable []Property
}

// ShapeOf introspects t (or the struct t points to). Shapes are not
// cached; every call reflects over the type again.
//
// Per level, accessor and setter methods come first (method set order),
// then fields (declaration order), then embedded levels depth first.
// Methods promoted from an embedded struct belong to that struct's level.
func ShapeOf(t reflect.Type) (*Shape, error) {
	st, err := structType(t, "type")
	if err != nil {
		return nil, err
	}
	s := &Shape{Type: st}
	s.collect(reflect.PointerTo(st), st, nil, 0, true, false, map[reflect.Type]bool{})
	return s, nil
}

// Names returns the distinct readable property names in walk order.
func (s *Shape) Names() []string {
	seen := make(map[string]bool, len(s.Readable))
	names := make([]string, 0, len(s.Readable))
	for _, p := range s.Readable {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}

// collect adds the properties declared on level lt and recurses into its
// embedded structs. exported is false once the path crosses an unexported
// embedded field; methods on such levels are only reachable through the root.
// sealed is true once the path crosses an unexported embedded pointer, which
// can be read through but never allocated.
func (s *Shape) collect(root, lt reflect.Type, path []int, depth int, exported, sealed bool, onPath map[reflect.Type]bool) {
	onPath[lt] = true
	defer delete(onPath, lt)

	meta := describe(lt)
	levels := embeddedLevels(lt, meta)

	// Methods promoted from embedded structs are attributed to their own
	// level, or stay hidden with it. A level already on the path is not
	// walked again, so lt keeps the methods it shares with it.
	promoted := make(map[string]bool)
	embedded := make(map[int]bool, len(levels))
	for _, l := range levels {
		embedded[l.index] = true
		if onPath[l.typ] {
			continue
		}
		pt := reflect.PointerTo(l.typ)
		for i := 0; i < pt.NumMethod(); i++ {
			promoted[pt.Method(i).Name] = true
		}
	}

	pt := reflect.PointerTo(lt)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if promoted[m.Name] {
			continue
		}
		if name, ok := PropertyName(m.Name); ok {
			if typ, fallible, ok := getterSignature(m.Type); ok {
				if p, ok := methodProperty(root, lt, path, depth, exported, sealed, m, name, typ, fallible); ok {
					s.Readable = append(s.Readable, p)
				}
			}
			continue
		}
		if name, ok := SetterName(m.Name); ok {
			if typ, fallible, ok := setterSignature(m.Type); ok {
				if p, ok := methodProperty(root, lt, path, depth, exported, sealed, m, name, typ, fallible); ok {
					s.Writable = append(s.Writable, p)
				}
			}
		}
	}

	for _, fm := range meta.Fields {
		sf := lt.Field(fm.Index[0])
		alias, hidden := fieldTag(fm)
		if hidden || !sf.IsExported() || embedded[fm.Index[0]] {
			continue
		}
		name := alias
		if name == "" {
			name = uncapitalize(sf.Name)
		}
		p := Property{
			Name:   name,
			Type:   sf.Type,
			Level:  depth,
			owner:  lt,
			member: sf.Name,
			path:   path,
			index:  fm.Index[0],
			method: -1,
			sealed: sealed,
		}
		s.Readable = append(s.Readable, p)
		if !sealed {
			s.Writable = append(s.Writable, p)
		}
	}

	for _, l := range levels {
		if l.hidden || onPath[l.typ] {
			continue
		}
		s.collect(root, l.typ, appendIndex(path, l.index), depth+1,
			exported && l.exported, sealed || (l.pointer && !l.exported), onPath)
	}
}

// level is a struct embedded in another, by value or pointer.
type level struct {
	typ      reflect.Type
	index    int
	exported bool
	pointer  bool
	hidden   bool
}

// embeddedLevels returns the structs embedded directly in lt, in
// declaration order.
func embeddedLevels(lt reflect.Type, meta sentinel.Metadata) []level {
	var levels []level
	for _, fm := range meta.Fields {
		sf := lt.Field(fm.Index[0])
		if !sf.Anonymous {
			continue
		}
		l := level{index: fm.Index[0], exported: sf.IsExported()}
		switch fm.Kind {
		case sentinel.KindStruct:
			l.typ = fm.ReflectType
		case sentinel.KindPointer:
			if fm.ReflectType.Elem().Kind() != reflect.Struct {
				continue
			}
			l.typ = fm.ReflectType.Elem()
			l.pointer = true
		default:
			continue
		}
		_, l.hidden = fieldTag(fm)
		levels = append(levels, l)
	}
	return levels
}

// methodProperty resolves where an accessor is invoked. The root pointer
// type is preferred so that a method redeclared on an outer level wins,
// the way an override would.
func methodProperty(root, owner reflect.Type, path []int, depth int, exported, sealed bool, m reflect.Method, name string, typ reflect.Type, fallible bool) (Property, bool) {
	p := Property{
		Name:     name,
		Type:     typ,
		Level:    depth,
		owner:    owner,
		member:   m.Name,
		path:     path,
		index:    -1,
		method:   m.Index,
		fallible: fallible,
		sealed:   sealed,
	}
	if depth == 0 {
		p.virtual = true
		return p, true
	}
	if rm, ok := root.MethodByName(m.Name); ok && sameSignature(rm.Type, m.Type) {
		p.method = rm.Index
		p.virtual = true
		return p, true
	}
	return p, exported
}

// describe returns field metadata for every field declared directly on rt,
// exported or not. Exported fields come from sentinel's cache when rt has
// been scanned; the rest are built here.
func describe(rt reflect.Type) sentinel.Metadata {
	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	scanned, ok := lookup(rt)
	next := 0
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if ok && sf.IsExported() {
			meta.Fields = append(meta.Fields, scanned[next])
			next++
			continue
		}
		meta.Fields = append(meta.Fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			Kind:        fieldKind(sf.Type),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseTags(sf.Tag),
		})
	}

	return meta
}

// lookup returns the exported fields sentinel scanned for rt. Sentinel keys
// its cache by bare type name, so the entry must match rt field for field.
func lookup(rt reflect.Type) ([]sentinel.FieldMetadata, bool) {
	if rt.Name() == "" {
		return nil, false
	}
	meta, ok := sentinel.Lookup(rt.Name())
	if !ok || meta.PackageName != rt.PkgPath() {
		return nil, false
	}
	n := 0
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if n >= len(meta.Fields) || meta.Fields[n].Name != sf.Name || meta.Fields[n].ReflectType != sf.Type {
			return nil, false
		}
		n++
	}
	if n != len(meta.Fields) {
		return nil, false
	}
	return meta.Fields, true
}

// scan registers T and the struct types it references with sentinel, so
// later shapes of those types reuse the cached field metadata. T must be
// a struct type.
func scan[T any]() {
	sentinel.Scan[T]()
}

func fieldKind(t reflect.Type) sentinel.FieldKind {
	switch t.Kind() {
	case reflect.Struct:
		return sentinel.KindStruct
	case reflect.Ptr:
		return sentinel.KindPointer
	case reflect.Slice, reflect.Array:
		return sentinel.KindSlice
	case reflect.Map:
		return sentinel.KindMap
	case reflect.Interface:
		return sentinel.KindInterface
	default:
		return sentinel.KindScalar
	}
}

func parseTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup(tagName); ok {
		tags[tagName] = val
	}
	return tags
}

// fieldTag returns the alias from the porter tag and whether it hides the field.
func fieldTag(fm sentinel.FieldMetadata) (string, bool) {
	val, ok := fm.Tags[tagName]
	if !ok {
		return "", false
	}
	if val == "-" {
		return "", true
	}
	alias, _, _ := strings.Cut(val, ",")
	return alias, false
}

// getterSignature accepts func(recv) T and func(recv) (T, error).
func getterSignature(mt reflect.Type) (reflect.Type, bool, bool) {
	if mt.NumIn() != 1 {
		return nil, false, false
	}
	switch mt.NumOut() {
	case 1:
		return mt.Out(0), false, true
	case 2:
		if mt.Out(1) == errorType {
			return mt.Out(0), true, true
		}
	}
	return nil, false, false
}

// setterSignature accepts func(recv, T) and func(recv, T) error.
func setterSignature(mt reflect.Type) (reflect.Type, bool, bool) {
	if mt.NumIn() != 2 || mt.IsVariadic() {
		return nil, false, false
	}
	switch mt.NumOut() {
	case 0:
		return mt.In(1), false, true
	case 1:
		if mt.Out(0) == errorType {
			return mt.In(1), true, true
		}
	}
	return nil, false, false
}

// sameSignature compares two method types ignoring the receiver.
func sameSignature(a, b reflect.Type) bool {
	if a.NumIn() != b.NumIn() || a.NumOut() != b.NumOut() || a.IsVariadic() != b.IsVariadic() {
		return false
	}
	for i := 1; i < a.NumIn(); i++ {
		if a.In(i) != b.In(i) {
			return false
		}
	}
	for i := 0; i < a.NumOut(); i++ {
		if a.Out(i) != b.Out(i) {
			return false
		}
	}
	return true
}

func appendIndex(path []int, i int) []int {
	return append(append(make([]int, 0, len(path)+1), path...), i)
}

// structType dereferences t to a struct type.
func structType(t reflect.Type, argument string) (reflect.Type, error) {
	if t == nil {
		return nil, newArgumentError(argument, "")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, newArgumentError(argument, "must be a struct type, got "+t.String())
	}
	return t, nil
}

// read returns the property value on root, an addressable struct of the
// shape's type. ok is false when the declaring level sits behind a nil
// embedded pointer and the outer value cannot answer for it.
func (p *Property) read(root reflect.Value) (reflect.Value, bool, error) {
	lv, ok := levelValue(root, p.path)
	if !ok {
		if !p.virtual {
			return reflect.Value{}, false, nil
		}
		out, ok, err := p.detached(root, nil)
		if !ok || err != nil {
			return reflect.Value{}, false, err
		}
		return out[0], true, nil
	}
	if p.index >= 0 {
		return lv.Field(p.index), true, nil
	}
	out, err := p.call(p.receiver(root, lv), nil)
	if err != nil {
		return reflect.Value{}, false, err
	}
	return out[0], true, nil
}

// write stores v on root, allocating nil embedded pointers on the way.
// Levels behind unexported pointers are never allocated.
func (p *Property) write(root, v reflect.Value) error {
	lv, ok := levelValue(root, p.path)
	if !ok {
		if p.sealed {
			_, _, err := p.detached(root, []reflect.Value{v})
			return err
		}
		lv = levelValueAlloc(root, p.path)
	}
	if p.index >= 0 {
		lv.Field(p.index).Set(v)
		return nil
	}
	_, err := p.call(p.receiver(root, lv), []reflect.Value{v})
	return err
}

func (p *Property) receiver(root, level reflect.Value) reflect.Value {
	if p.virtual {
		return root.Addr()
	}
	return level.Addr()
}

func (p *Property) call(recv reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
	out, err := invoke(p.owner, p.member, recv.Method(p.method), args)
	if err != nil {
		return nil, err
	}
	return p.result(out)
}

// detached invokes a virtual method on root while its own level is behind
// a nil embedded pointer. A method the outer value declares answers
// normally; one promoted from the nil level has no receiver and panics, in
// which case ok is false and the property is treated as absent.
func (p *Property) detached(root reflect.Value, args []reflect.Value) ([]reflect.Value, bool, error) {
	out, err := invoke(p.owner, p.member, root.Addr().Method(p.method), args)
	if err != nil {
		return nil, false, nil
	}
	out, err = p.result(out)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (p *Property) result(out []reflect.Value) ([]reflect.Value, error) {
	if p.fallible {
		if e, _ := out[len(out)-1].Interface().(error); e != nil {
			return nil, &InvocationError{Type: p.owner, Method: p.member, Cause: e}
		}
	}
	return out, nil
}

// invoke calls fn, converting a panic into an InvocationError.
func invoke(owner reflect.Type, member string, fn reflect.Value, args []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = newInvocationError(owner, member, r)
		}
	}()
	return fn.Call(args), nil
}

// levelValue navigates embedded fields, dereferencing pointers as needed.
func levelValue(root reflect.Value, path []int) (reflect.Value, bool) {
	v := root
	for _, i := range path {
		v = v.Field(i)
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
	}
	return v, true
}

func levelValueAlloc(root reflect.Value, path []int) reflect.Value {
	v := root
	for _, i := range path {
		v = v.Field(i)
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
	}
	return v
}

// addressable dereferences rv to a struct and returns an addressable copy
// when the caller passed it by value.
func addressable(rv reflect.Value, argument string) (reflect.Value, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, newArgumentError(argument, "")
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return reflect.Value{}, newArgumentError(argument, "")
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, newArgumentError(argument, "must be a struct, got "+rv.Type().String())
	}
	if !rv.CanAddr() {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}
	return rv, nil
}

// isNil reports whether v is invalid or a nil reference.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

func isNilValue(v any) bool {
	return v == nil || isNil(reflect.ValueOf(v))
}
