// Package porter copies property values between structs that share no
// declared interface, by discovering their properties at runtime.
//
// # Properties
//
// A property is a logical name with a type and a way to read or write it.
// Properties come from accessor methods, setter methods and exported
// fields:
//
//	func (u *User) GetEmail() string        // readable "email"
//	func (u *User) IsActive() bool          // readable "active"
//	func (u *User) SetEmail(v string) error // writable "email"
//	Name string                             // readable and writable "name"
//
// Embedded structs are walked as ancestor levels. A field tagged
// porter:"alias" is renamed; porter:"-" hides the field, or the whole
// embedded level.
//
// # Copying
//
// Shallow copies go through a compiled Copier cached per (source, target)
// pair:
//
//	dto, err := porter.Map[UserDTO](user)
//	list, err := porter.MapList[UserDTO](users)
//	err = porter.QuickCopy(user, &dto)
//
// Only properties whose names match and whose types are assignable are
// copied. Deep copies are delegated to a DeepMapper held by a Deep
// service:
//
//	deep := porter.NewDeep()
//	dto, err := porter.DeepMap[UserDTO](deep, user)
//
// # Views
//
//	m, err := porter.BeanToMap(user)          // non-nil properties
//	q, err := porter.BeanToQueryString(user)  // active=true&name=A%26B
//	data, err := porter.Encode(json.New(), user)
//
// FromMap and Decode go the other way, from a property value map (or an
// encoded document) back into a struct.
//
// # Override Interface
//
// Types can bypass reflection for reads by implementing PropertyWalker.
//
// # Observability
//
// Operations emit capitan signals (see signals.go). Copier cache
// statistics are exposed in Prometheus format through WriteMetrics.
package porter
