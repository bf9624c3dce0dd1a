package porter

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvocation indicates an accessor or setter failed while being invoked.
	ErrInvocation = errors.New("invocation failed")

	// ErrConstruction indicates a target type cannot be instantiated.
	ErrConstruction = errors.New("construction failed")

	// ErrIllegalArgument indicates a required argument was nil or of the wrong shape.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrEncoding indicates a value could not be encoded with the requested charset.
	ErrEncoding = errors.New("unsupported encoding")

	// ErrConversion indicates a map value could not be decoded into a property.
	ErrConversion = errors.New("conversion failed")

	// ErrMapping indicates the deep mapper failed.
	ErrMapping = errors.New("deep mapping failed")
)

// InvocationError represents a failure inside an accessor or setter.
// The walk or copy that triggered it stops immediately.
type InvocationError struct {
	Type   reflect.Type // Type the method or field belongs to
	Method string       // Method or field name
	Cause  error        // Panic value or error returned by the method
}

func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s.%s: %v", ErrInvocation.Error(), typeLabel(e.Type), e.Method, e.Cause)
	}
	return fmt.Sprintf("%s: %s.%s", ErrInvocation.Error(), typeLabel(e.Type), e.Method)
}

func (e *InvocationError) Unwrap() error {
	return ErrInvocation
}

// ConstructionError reports a target type that has no usable zero value
// to copy into (nil, interface or non-struct types).
type ConstructionError struct {
	Type reflect.Type
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: type %s cannot be instantiated as a struct", ErrConstruction.Error(), typeLabel(e.Type))
}

func (e *ConstructionError) Unwrap() error {
	return ErrConstruction
}

// ArgumentError represents a precondition violation on a named argument.
type ArgumentError struct {
	Argument string // Argument name (source, target, destination, ...)
	Reason   string // Optional detail, defaults to "must not be nil"
}

func (e *ArgumentError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must not be nil"
	}
	return fmt.Sprintf("%s: %s %s", ErrIllegalArgument.Error(), e.Argument, reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrIllegalArgument
}

// EncodingError reports an unknown charset or a value that cannot be
// represented in it.
type EncodingError struct {
	Charset string
	Cause   error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %q: %v", ErrEncoding.Error(), e.Charset, e.Cause)
	}
	return fmt.Sprintf("%s %q", ErrEncoding.Error(), e.Charset)
}

func (e *EncodingError) Unwrap() error {
	return ErrEncoding
}

// ConversionError represents a map entry that could not be decoded into
// the property of the same name.
type ConversionError struct {
	Property string
	Cause    error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for property %s: %v", ErrConversion.Error(), e.Property, e.Cause)
	}
	return fmt.Sprintf("%s for property %s", ErrConversion.Error(), e.Property)
}

func (e *ConversionError) Unwrap() error {
	return ErrConversion
}

// MappingError wraps a failure reported by a DeepMapper.
type MappingError struct {
	Source reflect.Type
	Target reflect.Type
	Cause  error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s from %s to %s: %v", ErrMapping.Error(), typeLabel(e.Source), typeLabel(e.Target), e.Cause)
}

func (e *MappingError) Unwrap() error {
	return ErrMapping
}

// newInvocationError converts a recovered panic value into an InvocationError.
func newInvocationError(t reflect.Type, method string, recovered any) error {
	cause, ok := recovered.(error)
	if !ok {
		cause = fmt.Errorf("%v", recovered)
	}
	return &InvocationError{Type: t, Method: method, Cause: cause}
}

// newArgumentError creates an ArgumentError with an optional reason.
func newArgumentError(argument, reason string) error {
	return &ArgumentError{Argument: argument, Reason: reason}
}

func typeLabel(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
