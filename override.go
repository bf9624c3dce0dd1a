package porter

// PropertyWalker bypasses reflection for the accessor walk.
// When a value implements this interface, Walk and every view built on it
// call WalkProperties instead of introspecting the value's methods and
// fields.
//
// This is useful for hot paths and for types whose logical properties do
// not follow the Get/Is/field conventions, and is a natural target for
// code generation.
type PropertyWalker interface {
	// WalkProperties calls visit once per property in a stable order.
	// Nil values are dropped by Walk, so implementations may report them.
	// A non-nil error from visit must stop the walk and be returned.
	WalkProperties(visit func(name string, value any) error) error
}
