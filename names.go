package porter

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Accessor prefixes recognised on method names.
const (
	prefixGet = "Get"
	prefixIs  = "Is"
	prefixSet = "Set"
)

// PropertyName derives the logical property name of an accessor method.
//
//	GetName  -> name
//	IsActive -> active
//	Get, Is  -> not an accessor
func PropertyName(method string) (string, bool) {
	switch {
	case len(method) > len(prefixGet) && strings.HasPrefix(method, prefixGet):
		return uncapitalize(method[len(prefixGet):]), true
	case len(method) > len(prefixIs) && strings.HasPrefix(method, prefixIs):
		return uncapitalize(method[len(prefixIs):]), true
	}
	return "", false
}

// SetterName derives the logical property name of a setter method.
func SetterName(method string) (string, bool) {
	if len(method) > len(prefixSet) && strings.HasPrefix(method, prefixSet) {
		return uncapitalize(method[len(prefixSet):]), true
	}
	return "", false
}

// TypeName returns the capitalized simple type name of v, without package
// qualifier or pointer indirections. Returns "" for nil.
func TypeName(v any) string {
	if v == nil {
		return ""
	}
	return capitalize(simpleName(reflect.TypeOf(v)))
}

// ObjectName returns the simple name of t with its first rune lower-cased,
// the conventional variable name for a value of that type.
func ObjectName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return uncapitalize(simpleName(t))
}

func simpleName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

func uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
