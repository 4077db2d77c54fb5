// Package vals contains the value model of the evaluator: the primitive value
// types, the capability interfaces of objects, property keys and property
// descriptors, and the conversions that do not involve user code.
package vals

// Value is a value of the guest language. The set of implementations is
// closed: the primitive types of this package, and object types that embed
// ObjectBase.
type Value interface {
	isValue()
}

// Undefined is the type of the undefined value.
type Undefined struct{}

// Null is the type of the null value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Number is an IEEE 754 double value.
type Number float64

// String is a string value. Strings are stored as UTF-8; operations whose
// results depend on UTF-16 code units convert as needed.
type String string

// Symbol is a symbol value. Symbols are compared by identity.
type Symbol struct {
	Description string
	// HasDescription distinguishes Symbol() from Symbol("").
	HasDescription bool
}

// NewSymbol returns a new symbol with the given description.
func NewSymbol(desc string) *Symbol {
	return &Symbol{Description: desc, HasDescription: true}
}

// Well-known symbols.
var (
	SymbolIterator    = NewSymbol("Symbol.iterator")
	SymbolHasInstance = NewSymbol("Symbol.hasInstance")
	SymbolToPrimitive = NewSymbol("Symbol.toPrimitive")
)

func (Undefined) isValue() {}
func (Null) isValue()      {}
func (Bool) isValue()      {}
func (Number) isValue()    {}
func (String) isValue()    {}
func (*Symbol) isValue()   {}

// ObjectBase must be embedded by every type implementing Object.
type ObjectBase struct{}

func (ObjectBase) isValue() {}

// PropertyKey is either a String or a *Symbol.
type PropertyKey interface {
	Value
	isPropertyKey()
}

func (String) isPropertyKey()  {}
func (*Symbol) isPropertyKey() {}

// IsNullish reports whether v is undefined or null.
func IsNullish(v Value) bool {
	switch v.(type) {
	case Undefined, Null:
		return true
	}
	return false
}

// IsPrimitive reports whether v is not an object.
func IsPrimitive(v Value) bool {
	_, ok := v.(Object)
	return !ok
}
