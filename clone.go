package porter

// Cloner allows types to provide their own deep copy logic.
// DeepMap and DeepMapList call Clone instead of the DeepMapper when the
// source clones into the requested type, either as T or as *T.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value:
//
//	func (o Order) Clone() Order {
//	    items := make([]Item, len(o.Items))
//	    copy(items, o.Items)
//	    return Order{ID: o.ID, Items: items}
//	}
type Cloner[T any] interface {
	Clone() T
}

// cloneOf returns source's own copy of itself as a *T. A nil *T from
// Clone falls back to the mapper.
func cloneOf[T any](source any) (*T, bool) {
	switch c := source.(type) {
	case Cloner[T]:
		out := c.Clone()
		return &out, true
	case Cloner[*T]:
		if out := c.Clone(); out != nil {
			return out, true
		}
	}
	return nil, false
}
