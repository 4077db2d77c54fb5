package realm

import (
	"sort"
	"strings"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/vals"
)

// Object is an ordinary object. Properties are kept in creation order, and
// OwnPropertyKeys lists array indices first in ascending order, then other
// strings and then symbols in creation order.
//
// Exotic objects embed Object and override some of its methods. Because the
// ordinary algorithms must dispatch to the overrides, an Object records the
// outermost object it is part of in self.
type Object struct {
	vals.ObjectBase
	realm      *Realm
	self       vals.Object
	proto      vals.Object
	extensible bool
	props      map[vals.PropertyKey]*vals.PropertyDescriptor
	keys       []vals.PropertyKey
	// class is used by Repr, such as "Object" or "Error".
	class string
}

func (o *Object) init(r *Realm, self vals.Object, proto vals.Object, class string) {
	o.realm = r
	o.self = self
	o.proto = proto
	o.extensible = true
	o.props = make(map[vals.PropertyKey]*vals.PropertyDescriptor)
	o.class = class
}

// NewObjectWithProto returns a new ordinary object with the given prototype,
// which may be nil.
func (r *Realm) NewObjectWithProto(proto vals.Object) *Object {
	o := &Object{}
	o.init(r, o, proto, "Object")
	return o
}

// NewObject implements eval.Realm.
func (r *Realm) NewObject() vals.Object {
	return r.NewObjectWithProto(r.ObjectPrototype)
}

func (o *Object) GetPrototypeOf() (vals.Object, error) { return o.proto, nil }

func (o *Object) SetPrototypeOf(proto vals.Object) (bool, error) {
	if sameObject(proto, o.proto) {
		return true, nil
	}
	if !o.extensible {
		return false, nil
	}
	// Reject cycles through ordinary prototypes.
	for p := proto; p != nil; {
		if sameObject(p, o.self) {
			return false, nil
		}
		next, err := p.GetPrototypeOf()
		if err != nil {
			return false, err
		}
		p = next
	}
	o.proto = proto
	return true, nil
}

func sameObject(a, b vals.Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return vals.SameValue(a, b)
}

func (o *Object) IsExtensible() (bool, error) { return o.extensible, nil }

func (o *Object) PreventExtensions() (bool, error) {
	o.extensible = false
	return true, nil
}

func (o *Object) GetOwnProperty(key vals.PropertyKey) (*vals.PropertyDescriptor, error) {
	desc, ok := o.props[key]
	if !ok {
		return nil, nil
	}
	copied := *desc
	return &copied, nil
}

func (o *Object) DefineOwnProperty(key vals.PropertyKey, desc vals.PropertyDescriptor) (bool, error) {
	return o.defineOrdinary(key, desc)
}

// defineOrdinary validates and applies a property descriptor against the
// current own property.
func (o *Object) defineOrdinary(key vals.PropertyKey, desc vals.PropertyDescriptor) (bool, error) {
	current, ok := o.props[key]
	if !ok {
		if !o.extensible {
			return false, nil
		}
		o.props[key] = completeDescriptor(desc)
		o.keys = append(o.keys, key)
		return true, nil
	}
	if !current.Configurable {
		if desc.Has&vals.HasConfigurable != 0 && desc.Configurable {
			return false, nil
		}
		if desc.Has&vals.HasEnumerable != 0 && desc.Enumerable != current.Enumerable {
			return false, nil
		}
		switch {
		case isGeneric(desc):
		case current.IsAccessor() != desc.IsAccessor():
			return false, nil
		case current.IsAccessor():
			if desc.Has&vals.HasGet != 0 && !sameValueOrNil(desc.Getter, current.Getter) {
				return false, nil
			}
			if desc.Has&vals.HasSet != 0 && !sameValueOrNil(desc.Setter, current.Setter) {
				return false, nil
			}
		case !current.Writable:
			if desc.Has&vals.HasWritable != 0 && desc.Writable {
				return false, nil
			}
			if desc.Has&vals.HasValue != 0 && !vals.SameValue(desc.Value, current.Value) {
				return false, nil
			}
		}
	}
	applyDescriptor(current, desc)
	return true, nil
}

func isGeneric(d vals.PropertyDescriptor) bool { return !d.IsAccessor() && !d.IsData() }

func sameValueOrNil(a, b vals.Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return vals.SameValue(a, b)
}

func completeDescriptor(d vals.PropertyDescriptor) *vals.PropertyDescriptor {
	c := d
	if d.IsAccessor() {
		c.Has = vals.HasGet | vals.HasSet | vals.HasEnumerable | vals.HasConfigurable
		if c.Getter == nil {
			c.Getter = vals.Undefined{}
		}
		if c.Setter == nil {
			c.Setter = vals.Undefined{}
		}
		return &c
	}
	c.Has = vals.HasValue | vals.HasWritable | vals.HasEnumerable | vals.HasConfigurable
	if c.Value == nil {
		c.Value = vals.Undefined{}
	}
	return &c
}

func applyDescriptor(current *vals.PropertyDescriptor, d vals.PropertyDescriptor) {
	switch {
	case d.IsAccessor() && current.IsData():
		*current = vals.PropertyDescriptor{
			Getter: vals.Undefined{}, Setter: vals.Undefined{},
			Enumerable: current.Enumerable, Configurable: current.Configurable,
			Has: vals.HasGet | vals.HasSet | vals.HasEnumerable | vals.HasConfigurable,
		}
	case d.IsData() && current.IsAccessor():
		*current = vals.PropertyDescriptor{
			Value:      vals.Undefined{},
			Enumerable: current.Enumerable, Configurable: current.Configurable,
			Has: vals.HasValue | vals.HasWritable | vals.HasEnumerable | vals.HasConfigurable,
		}
	}
	if d.Has&vals.HasValue != 0 {
		current.Value = d.Value
	}
	if d.Has&vals.HasWritable != 0 {
		current.Writable = d.Writable
	}
	if d.Has&vals.HasGet != 0 {
		current.Getter = d.Getter
	}
	if d.Has&vals.HasSet != 0 {
		current.Setter = d.Setter
	}
	if d.Has&vals.HasEnumerable != 0 {
		current.Enumerable = d.Enumerable
	}
	if d.Has&vals.HasConfigurable != 0 {
		current.Configurable = d.Configurable
	}
}

func (o *Object) HasProperty(key vals.PropertyKey) (bool, error) {
	desc, err := o.self.GetOwnProperty(key)
	if err != nil || desc != nil {
		return desc != nil, err
	}
	if o.proto == nil {
		return false, nil
	}
	return o.proto.HasProperty(key)
}

func (o *Object) Get(key vals.PropertyKey, receiver vals.Value) (vals.Value, error) {
	desc, err := o.self.GetOwnProperty(key)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		if o.proto == nil {
			return vals.Undefined{}, nil
		}
		return o.proto.Get(key, receiver)
	}
	if desc.IsData() {
		return desc.Value, nil
	}
	if getter, ok := desc.Getter.(vals.Callable); ok {
		return getter.Call(receiver, nil)
	}
	return vals.Undefined{}, nil
}

func (o *Object) Set(key vals.PropertyKey, v vals.Value, receiver vals.Value) (bool, error) {
	desc, err := o.self.GetOwnProperty(key)
	if err != nil {
		return false, err
	}
	if desc == nil {
		if o.proto != nil {
			return o.proto.Set(key, v, receiver)
		}
		desc = &vals.PropertyDescriptor{Value: vals.Undefined{}, Writable: true,
			Enumerable: true, Configurable: true,
			Has: vals.HasValue | vals.HasWritable | vals.HasEnumerable | vals.HasConfigurable}
	}
	return setWithOwnDescriptor(desc, key, v, receiver)
}

// setWithOwnDescriptor completes an ordinary [[Set]] once the descriptor that
// governs the assignment has been found.
func setWithOwnDescriptor(desc *vals.PropertyDescriptor, key vals.PropertyKey, v, receiver vals.Value) (bool, error) {
	if desc.IsAccessor() {
		setter, ok := desc.Setter.(vals.Callable)
		if !ok {
			return false, nil
		}
		if _, err := setter.Call(receiver, []vals.Value{v}); err != nil {
			return false, err
		}
		return true, nil
	}
	if !desc.Writable {
		return false, nil
	}
	recv, ok := receiver.(vals.Object)
	if !ok {
		return false, nil
	}
	existing, err := recv.GetOwnProperty(key)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if existing.IsAccessor() || !existing.Writable {
			return false, nil
		}
		return recv.DefineOwnProperty(key, vals.PropertyDescriptor{Value: v, Has: vals.HasValue})
	}
	return recv.DefineOwnProperty(key, vals.DataDescriptor(v, true, true, true))
}

func (o *Object) Delete(key vals.PropertyKey) (bool, error) {
	desc, err := o.self.GetOwnProperty(key)
	if err != nil || desc == nil {
		return err == nil, err
	}
	if !desc.Configurable {
		return false, nil
	}
	o.removeOwn(key)
	return true, nil
}

func (o *Object) removeOwn(key vals.PropertyKey) {
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func (o *Object) OwnPropertyKeys() ([]vals.PropertyKey, error) {
	return orderKeys(o.keys), nil
}

func orderKeys(keys []vals.PropertyKey) []vals.PropertyKey {
	var indices []uint32
	var strs, syms []vals.PropertyKey
	for _, k := range keys {
		if i, ok := vals.ArrayIndex(k); ok {
			indices = append(indices, i)
		} else if _, ok := k.(vals.String); ok {
			strs = append(strs, k)
		} else {
			syms = append(syms, k)
		}
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	result := make([]vals.PropertyKey, 0, len(keys))
	for _, i := range indices {
		result = append(result, vals.IndexKey(int(i)))
	}
	result = append(result, strs...)
	return append(result, syms...)
}

// dataValue returns the value of an own data property, or nil.
func (o *Object) dataValue(key vals.PropertyKey) vals.Value {
	if desc, ok := o.props[key]; ok && desc.IsData() {
		return desc.Value
	}
	return nil
}

// defineBuiltin defines a writable, non-enumerable and configurable data
// property, the attributes of built-in methods.
func (o *Object) defineBuiltin(key vals.PropertyKey, v vals.Value) {
	o.defineOrdinary(key, vals.DataDescriptor(v, true, false, true))
}

// Repr shows the own enumerable data properties of the object.
func (o *Object) Repr() string {
	return reprProps(o.class, o.self)
}

func reprProps(class string, obj vals.Object) string {
	keys, _ := obj.OwnPropertyKeys()
	var sb strings.Builder
	if class != "Object" {
		sb.WriteString(class + " ")
	}
	sb.WriteString("{")
	n := 0
	for _, key := range keys {
		desc, _ := obj.GetOwnProperty(key)
		if desc == nil || !desc.Enumerable {
			continue
		}
		if n > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" " + reprKey(key) + ": ")
		if desc.IsData() {
			sb.WriteString(reprNested(desc.Value))
		} else {
			sb.WriteString("[Getter/Setter]")
		}
		n++
	}
	if n > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

func reprKey(key vals.PropertyKey) string {
	if sym, ok := key.(*vals.Symbol); ok {
		return "[" + vals.SymbolDescriptiveString(sym) + "]"
	}
	return string(key.(vals.String))
}

// reprNested shows a value inside a container. Nested objects are not
// expanded, so cycles cannot cause unbounded output.
func reprNested(v vals.Value) string {
	switch v := v.(type) {
	case *Array:
		return "[Array]"
	case vals.Callable:
		return functionRepr(v)
	case *Error:
		return v.Repr()
	case vals.Object:
		return "[Object]"
	}
	return vals.Repr(v)
}

var _ eval.Realm = (*Realm)(nil)
