package vals

// Object is the interface of object handles. The methods correspond to the
// essential internal methods of ordinary and exotic objects; storage and the
// prototype chain are owned by the implementation.
//
// A non-nil error returned by any method is an abrupt completion, typically
// produced by user code such as a getter, and must be propagated unchanged.
type Object interface {
	Value
	// GetPrototypeOf returns the prototype, or nil for a null prototype.
	GetPrototypeOf() (Object, error)
	// SetPrototypeOf sets the prototype; nil means null.
	SetPrototypeOf(proto Object) (bool, error)
	IsExtensible() (bool, error)
	PreventExtensions() (bool, error)
	// GetOwnProperty returns nil if there is no own property with the key.
	GetOwnProperty(key PropertyKey) (*PropertyDescriptor, error)
	DefineOwnProperty(key PropertyKey, desc PropertyDescriptor) (bool, error)
	HasProperty(key PropertyKey) (bool, error)
	Get(key PropertyKey, receiver Value) (Value, error)
	Set(key PropertyKey, v Value, receiver Value) (bool, error)
	Delete(key PropertyKey) (bool, error)
	OwnPropertyKeys() ([]PropertyKey, error)
}

// Callable is an object with a [[Call]] internal method.
type Callable interface {
	Object
	Call(this Value, args []Value) (Value, error)
}

// Constructor is an object with a [[Construct]] internal method.
type Constructor interface {
	Object
	Construct(args []Value, newTarget Object) (Object, error)
}

// IsCallable reports whether v is a callable object.
func IsCallable(v Value) bool {
	_, ok := v.(Callable)
	return ok
}

// IsConstructor reports whether v is an object that can be constructed.
func IsConstructor(v Value) bool {
	_, ok := v.(Constructor)
	return ok
}

// DescriptorFields records which fields of a PropertyDescriptor are present.
type DescriptorFields uint8

// Fields of a property descriptor.
const (
	HasValue DescriptorFields = 1 << iota
	HasWritable
	HasGet
	HasSet
	HasEnumerable
	HasConfigurable
)

// PropertyDescriptor describes a property. Only the fields recorded in Has are
// meaningful; this distinguishes an absent field from one set to its zero
// value.
type PropertyDescriptor struct {
	Value        Value
	Getter       Value
	Setter       Value
	Writable     bool
	Enumerable   bool
	Configurable bool
	Has          DescriptorFields
}

// DataDescriptor returns a complete data property descriptor.
func DataDescriptor(v Value, writable, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		Value: v, Writable: writable, Enumerable: enumerable, Configurable: configurable,
		Has: HasValue | HasWritable | HasEnumerable | HasConfigurable,
	}
}

// AccessorDescriptor returns an accessor property descriptor with the given
// getter and setter. A nil getter or setter leaves the field absent, so that
// defining a getter does not remove an existing setter.
func AccessorDescriptor(getter, setter Value, enumerable, configurable bool) PropertyDescriptor {
	d := PropertyDescriptor{
		Enumerable: enumerable, Configurable: configurable,
		Has: HasEnumerable | HasConfigurable,
	}
	if getter != nil {
		d.Getter = getter
		d.Has |= HasGet
	}
	if setter != nil {
		d.Setter = setter
		d.Has |= HasSet
	}
	return d
}

// IsAccessor reports whether d is an accessor descriptor.
func (d *PropertyDescriptor) IsAccessor() bool {
	return d.Has&(HasGet|HasSet) != 0
}

// IsData reports whether d is a data descriptor.
func (d *PropertyDescriptor) IsData() bool {
	return d.Has&(HasValue|HasWritable) != 0
}
