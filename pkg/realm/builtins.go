package realm

import (
	"math"
	"strconv"
	"strings"

	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/errs"
	"src.esval.dev/pkg/eval/vals"
)

// The global bindings. Only a small part of the standard library is provided:
// enough to construct and inspect values from expressions.

type method struct {
	name   string
	length int
	impl   NativeFunc
}

func (r *Realm) defineMethods(obj *Object, methods []method) {
	for _, m := range methods {
		obj.defineBuiltin(vals.String(m.name), r.NewFunction(m.name, m.length, m.impl))
	}
}

func (r *Realm) initBuiltins() {
	r.defineGlobal("globalThis", r.global)
	for name, v := range map[string]vals.Value{
		"undefined": vals.Undefined{},
		"NaN":       vals.Number(math.NaN()),
		"Infinity":  vals.Number(math.Inf(1)),
	} {
		r.global.defineOrdinary(vals.String(name), vals.DataDescriptor(v, false, false, false))
	}
	r.initObject()
	r.initFunctionPrototype()
	r.initArray()
	r.initString()
	r.initNumber()
	r.initBoolean()
	r.initSymbol()
}

func (r *Realm) throwTypeError(msg string) error {
	return eval.ThrowError(r, errs.TypeError, msg)
}

func (r *Realm) initObject() {
	ctor := r.NewConstructor("Object", 1, r.ObjectPrototype,
		func(this vals.Value, args []vals.Value, newTarget vals.Object) (vals.Value, error) {
			v := arg(args, 0)
			if vals.IsNullish(v) {
				return r.OrdinaryCreateFromConstructor(newTarget, r.ObjectPrototype)
			}
			return eval.ToObject(r, v)
		})
	r.defineMethods(&ctor.Object, []method{
		{"keys", 1, r.objectKeys},
		{"getPrototypeOf", 1, r.objectGetPrototypeOf},
		{"setPrototypeOf", 2, r.objectSetPrototypeOf},
		{"create", 2, r.objectCreate},
		{"defineProperty", 3, r.objectDefineProperty},
		{"freeze", 1, r.objectFreeze},
		{"isFrozen", 1, r.objectIsFrozen},
	})
	r.defineGlobal("Object", ctor)

	r.defineMethods(r.ObjectPrototype, []method{
		{"toString", 0, r.objectToString},
		{"valueOf", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			return eval.ToObject(r, this)
		}},
		{"hasOwnProperty", 1, func(this vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			key, err := eval.ToPropertyKey(r, arg(args, 0))
			if err != nil {
				return nil, err
			}
			obj, err := eval.ToObject(r, this)
			if err != nil {
				return nil, err
			}
			desc, err := obj.GetOwnProperty(key)
			return vals.Bool(desc != nil), err
		}},
	})
}

func (r *Realm) objectArg(args []vals.Value, fn string) (vals.Object, error) {
	obj, ok := arg(args, 0).(vals.Object)
	if !ok {
		return nil, r.throwTypeError(fn + " called on a non-object")
	}
	return obj, nil
}

func (r *Realm) objectKeys(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, err := eval.ToObject(r, arg(args, 0))
	if err != nil {
		return nil, err
	}
	keys, err := obj.OwnPropertyKeys()
	if err != nil {
		return nil, err
	}
	var names []vals.Value
	for _, key := range keys {
		s, ok := key.(vals.String)
		if !ok {
			continue
		}
		desc, err := obj.GetOwnProperty(key)
		if err != nil {
			return nil, err
		}
		if desc != nil && desc.Enumerable {
			names = append(names, s)
		}
	}
	return r.NewArrayOf(names), nil
}

func (r *Realm) objectGetPrototypeOf(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, err := eval.ToObject(r, arg(args, 0))
	if err != nil {
		return nil, err
	}
	proto, err := obj.GetPrototypeOf()
	if err != nil || proto == nil {
		return vals.Null{}, err
	}
	return proto, nil
}

func (r *Realm) objectSetPrototypeOf(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, err := r.objectArg(args, "Object.setPrototypeOf")
	if err != nil {
		return nil, err
	}
	var proto vals.Object
	switch p := arg(args, 1).(type) {
	case vals.Object:
		proto = p
	case vals.Null:
	default:
		return nil, r.throwTypeError(errs.PrototypeNotObject)
	}
	ok, err := obj.SetPrototypeOf(proto)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, r.throwTypeError("cannot set prototype")
	}
	return obj, nil
}

func (r *Realm) objectCreate(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	switch p := arg(args, 0).(type) {
	case vals.Object:
		return r.NewObjectWithProto(p), nil
	case vals.Null:
		return r.NewObjectWithProto(nil), nil
	}
	return nil, r.throwTypeError(errs.PrototypeNotObject)
}

func (r *Realm) objectDefineProperty(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, err := r.objectArg(args, "Object.defineProperty")
	if err != nil {
		return nil, err
	}
	key, err := eval.ToPropertyKey(r, arg(args, 1))
	if err != nil {
		return nil, err
	}
	desc, err := r.toPropertyDescriptor(arg(args, 2))
	if err != nil {
		return nil, err
	}
	if err := eval.DefinePropertyOrThrow(r, obj, key, desc); err != nil {
		return nil, err
	}
	return obj, nil
}

// toPropertyDescriptor converts a descriptor object to a property descriptor.
func (r *Realm) toPropertyDescriptor(v vals.Value) (vals.PropertyDescriptor, error) {
	var desc vals.PropertyDescriptor
	obj, ok := v.(vals.Object)
	if !ok {
		return desc, r.throwTypeError("property description must be an object")
	}
	field := func(name string, has vals.DescriptorFields, set func(vals.Value) error) error {
		key := vals.String(name)
		ok, err := obj.HasProperty(key)
		if err != nil || !ok {
			return err
		}
		fv, err := obj.Get(key, obj)
		if err != nil {
			return err
		}
		desc.Has |= has
		return set(fv)
	}
	accessor := func(name string, dst *vals.Value) func(vals.Value) error {
		return func(fv vals.Value) error {
			if !isUndefined(fv) && !vals.IsCallable(fv) {
				return r.throwTypeError(name + " must be a function")
			}
			*dst = fv
			return nil
		}
	}
	fields := []struct {
		name string
		has  vals.DescriptorFields
		set  func(vals.Value) error
	}{
		{"enumerable", vals.HasEnumerable, func(fv vals.Value) error { desc.Enumerable = eval.ToBoolean(fv); return nil }},
		{"configurable", vals.HasConfigurable, func(fv vals.Value) error { desc.Configurable = eval.ToBoolean(fv); return nil }},
		{"value", vals.HasValue, func(fv vals.Value) error { desc.Value = fv; return nil }},
		{"writable", vals.HasWritable, func(fv vals.Value) error { desc.Writable = eval.ToBoolean(fv); return nil }},
		{"get", vals.HasGet, accessor("getter", &desc.Getter)},
		{"set", vals.HasSet, accessor("setter", &desc.Setter)},
	}
	for _, f := range fields {
		if err := field(f.name, f.has, f.set); err != nil {
			return desc, err
		}
	}
	if desc.IsAccessor() && desc.IsData() {
		return desc, r.throwTypeError("invalid property descriptor: cannot both specify accessors and a value or writable attribute")
	}
	return desc, nil
}

func (r *Realm) objectFreeze(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, ok := arg(args, 0).(vals.Object)
	if !ok {
		return arg(args, 0), nil
	}
	return obj, eval.Freeze(r, obj)
}

func (r *Realm) objectIsFrozen(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, ok := arg(args, 0).(vals.Object)
	if !ok {
		return vals.Bool(true), nil
	}
	extensible, err := obj.IsExtensible()
	if err != nil || extensible {
		return vals.Bool(false), err
	}
	keys, err := obj.OwnPropertyKeys()
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		desc, err := obj.GetOwnProperty(key)
		if err != nil {
			return nil, err
		}
		if desc != nil && (desc.Configurable || desc.IsData() && desc.Writable) {
			return vals.Bool(false), nil
		}
	}
	return vals.Bool(true), nil
}

func (r *Realm) objectToString(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
	var tag string
	switch this := this.(type) {
	case vals.Undefined:
		tag = "Undefined"
	case vals.Null:
		tag = "Null"
	case *Array:
		tag = "Array"
	case vals.Callable:
		tag = "Function"
	case *Error:
		tag = "Error"
	case *Wrapper:
		tag = this.class
	case vals.Object:
		tag = "Object"
	default:
		w, err := r.WrapPrimitive(this)
		if err != nil {
			return nil, err
		}
		tag = w.(*Wrapper).class
	}
	return vals.String("[object " + tag + "]"), nil
}

func (r *Realm) initFunctionPrototype() {
	r.defineMethods(r.FunctionPrototype, []method{
		{"call", 1, func(this vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			var rest []vals.Value
			if len(args) > 1 {
				rest = args[1:]
			}
			return eval.Call(r, this, arg(args, 0), rest)
		}},
		{"apply", 2, func(this vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			list, err := r.createListFromArrayLike(arg(args, 1))
			if err != nil {
				return nil, err
			}
			return eval.Call(r, this, arg(args, 0), list)
		}},
		{"toString", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			f, ok := this.(vals.Callable)
			if !ok {
				return nil, r.throwTypeError("Function.prototype.toString requires that 'this' be a function")
			}
			name := ""
			if named, ok := f.(interface{ Name() string }); ok {
				name = named.Name()
			}
			return vals.String("function " + name + "() { [native code] }"), nil
		}},
	})
}

// maxArguments limits the length of argument lists built from array-like
// objects.
const maxArguments = 1 << 16

func (r *Realm) createListFromArrayLike(v vals.Value) ([]vals.Value, error) {
	if vals.IsNullish(v) {
		return nil, nil
	}
	obj, ok := v.(vals.Object)
	if !ok {
		return nil, r.throwTypeError("argument list must be an object")
	}
	lenValue, err := obj.Get(lengthKey, obj)
	if err != nil {
		return nil, err
	}
	n, err := eval.ToNumber(r, lenValue)
	if err != nil {
		return nil, err
	}
	length := vals.ToIntegerOrInfinity(n)
	if length > maxArguments {
		return nil, eval.ThrowError(r, errs.RangeError, "too many arguments in function call")
	}
	var list []vals.Value
	for i := 0; float64(i) < length; i++ {
		if err := r.step(); err != nil {
			return nil, err
		}
		elem, err := obj.Get(vals.IndexKey(i), obj)
		if err != nil {
			return nil, err
		}
		list = append(list, elem)
	}
	return list, nil
}

func (r *Realm) initArray() {
	ctor := r.NewConstructor("Array", 1, r.ArrayPrototype,
		func(this vals.Value, args []vals.Value, newTarget vals.Object) (vals.Value, error) {
			proto, err := r.prototypeFromConstructor(newTarget, r.ArrayPrototype)
			if err != nil {
				return nil, err
			}
			var a *Array
			if n, ok := arg(args, 0).(vals.Number); ok && len(args) == 1 {
				a = r.NewArrayOf(nil)
				if err := eval.SetOrThrow(r, a, lengthKey, n); err != nil {
					return nil, err
				}
			} else {
				a = r.NewArrayOf(args)
			}
			a.proto = proto
			return a, nil
		})
	r.defineMethods(&ctor.Object, []method{
		{"isArray", 1, func(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			_, ok := arg(args, 0).(*Array)
			return vals.Bool(ok), nil
		}},
		{"of", 0, func(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			return r.NewArrayOf(args), nil
		}},
	})
	r.defineGlobal("Array", ctor)

	values := r.NewFunction("values", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
		obj, err := eval.ToObject(r, this)
		if err != nil {
			return nil, err
		}
		return r.newArrayIterator(obj), nil
	})
	r.ArrayPrototype.defineBuiltin(vals.String("values"), values)
	r.ArrayPrototype.defineBuiltin(vals.SymbolIterator, values)
	join := r.NewFunction("join", 1, r.arrayJoin)
	r.ArrayPrototype.defineBuiltin(vals.String("join"), join)
	r.defineMethods(r.ArrayPrototype, []method{
		{"toString", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			return r.arrayJoin(this, nil, nil)
		}},
		{"push", 1, r.arrayPush},
		{"map", 1, r.arrayMap},
	})
}

func (r *Realm) arrayLike(this vals.Value) (vals.Object, int, error) {
	obj, err := eval.ToObject(r, this)
	if err != nil {
		return nil, 0, err
	}
	lenValue, err := obj.Get(lengthKey, obj)
	if err != nil {
		return nil, 0, err
	}
	n, err := eval.ToNumber(r, lenValue)
	if err != nil {
		return nil, 0, err
	}
	length := vals.ToIntegerOrInfinity(n)
	if length < 0 {
		length = 0
	}
	if length > math.MaxInt32 {
		return nil, 0, eval.ThrowError(r, errs.RangeError, "invalid array length")
	}
	return obj, int(length), nil
}

func (r *Realm) arrayJoin(this vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, n, err := r.arrayLike(this)
	if err != nil {
		return nil, err
	}
	sep := ","
	if s := arg(args, 0); !isUndefined(s) {
		if sep, err = eval.ToString(r, s); err != nil {
			return nil, err
		}
	}
	var parts []string
	for i := 0; i < n; i++ {
		if err := r.step(); err != nil {
			return nil, err
		}
		elem, err := obj.Get(vals.IndexKey(i), obj)
		if err != nil {
			return nil, err
		}
		part := ""
		if !vals.IsNullish(elem) {
			if part, err = eval.ToString(r, elem); err != nil {
				return nil, err
			}
		}
		parts = append(parts, part)
	}
	return vals.String(strings.Join(parts, sep)), nil
}

func (r *Realm) arrayPush(this vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, n, err := r.arrayLike(this)
	if err != nil {
		return nil, err
	}
	for _, v := range args {
		if err := eval.SetOrThrow(r, obj, vals.IndexKey(n), v); err != nil {
			return nil, err
		}
		n++
	}
	if err := eval.SetOrThrow(r, obj, lengthKey, vals.Number(n)); err != nil {
		return nil, err
	}
	return vals.Number(n), nil
}

func (r *Realm) arrayMap(this vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
	obj, n, err := r.arrayLike(this)
	if err != nil {
		return nil, err
	}
	f, ok := arg(args, 0).(vals.Callable)
	if !ok {
		return nil, r.throwTypeError(errs.NotAFunction(vals.Repr(arg(args, 0))))
	}
	result := r.NewArrayOf(nil)
	if err := eval.SetOrThrow(r, result, lengthKey, vals.Number(n)); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := r.step(); err != nil {
			return nil, err
		}
		key := vals.IndexKey(i)
		ok, err := obj.HasProperty(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		elem, err := obj.Get(key, obj)
		if err != nil {
			return nil, err
		}
		mapped, err := f.Call(arg(args, 1), []vals.Value{elem, vals.Number(i), obj})
		if err != nil {
			return nil, err
		}
		if err := eval.CreateDataProperty(r, result, key, mapped); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// primitiveConstructor creates the constructor of a primitive type: calling
// it converts its argument, and constructing it wraps the converted value.
func (r *Realm) primitiveConstructor(name string, proto *Object, convert func(args []vals.Value) (vals.Value, error)) *ConstructorFunction {
	ctor := r.NewConstructor(name, 1, proto,
		func(this vals.Value, args []vals.Value, newTarget vals.Object) (vals.Value, error) {
			v, err := convert(args)
			if err != nil || newTarget == nil {
				return v, err
			}
			p, err := r.prototypeFromConstructor(newTarget, proto)
			if err != nil {
				return nil, err
			}
			w, err := r.WrapPrimitive(v)
			if err != nil {
				return nil, err
			}
			w.(*Wrapper).proto = p
			return w, nil
		})
	r.defineGlobal(name, ctor)
	return ctor
}

func (r *Realm) initString() {
	r.primitiveConstructor("String", r.StringPrototype, func(args []vals.Value) (vals.Value, error) {
		if len(args) == 0 {
			return vals.String(""), nil
		}
		if sym, ok := args[0].(*vals.Symbol); ok {
			return vals.String(vals.SymbolDescriptiveString(sym)), nil
		}
		s, err := eval.ToString(r, args[0])
		return vals.String(s), err
	})
	thisString := func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
		return thisPrimitive[vals.String](r, this, "String.prototype.valueOf")
	}
	r.defineMethods(r.StringPrototype, []method{
		{"toString", 0, thisString},
		{"valueOf", 0, thisString},
	})
	r.StringPrototype.defineBuiltin(vals.SymbolIterator,
		r.NewFunction("[Symbol.iterator]", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			if err := eval.RequireObjectCoercible(r, this, "String.prototype[Symbol.iterator] called on null or undefined"); err != nil {
				return nil, err
			}
			s, err := eval.ToString(r, this)
			if err != nil {
				return nil, err
			}
			return r.newStringIterator(s), nil
		}))
}

func (r *Realm) initNumber() {
	r.primitiveConstructor("Number", r.NumberPrototype, func(args []vals.Value) (vals.Value, error) {
		if len(args) == 0 {
			return vals.Number(0), nil
		}
		n, err := eval.ToNumeric(r, args[0])
		return vals.Number(n), err
	})
	r.defineMethods(r.NumberPrototype, []method{
		{"toString", 1, func(this vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
			n, err := thisPrimitive[vals.Number](r, this, "Number.prototype.toString")
			if err != nil {
				return nil, err
			}
			radix := 10.0
			if a := arg(args, 0); !isUndefined(a) {
				if radix, err = eval.ToNumber(r, a); err != nil {
					return nil, err
				}
				radix = vals.ToIntegerOrInfinity(radix)
			}
			if radix < 2 || radix > 36 {
				return nil, eval.ThrowError(r, errs.RangeError, "toString() radix must be between 2 and 36")
			}
			return vals.String(numberToStringRadix(float64(n), int(radix))), nil
		}},
		{"valueOf", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			return thisPrimitive[vals.Number](r, this, "Number.prototype.valueOf")
		}},
	})
}

// numberToStringRadix formats a number in a radix. Only integers in the safe
// range are formatted in radixes other than 10; other numbers use the decimal
// form.
func numberToStringRadix(f float64, radix int) string {
	if radix == 10 || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return vals.NumberToString(f)
	}
	return strconv.FormatInt(int64(f), radix)
}

func (r *Realm) initBoolean() {
	r.primitiveConstructor("Boolean", r.BooleanPrototype, func(args []vals.Value) (vals.Value, error) {
		return vals.Bool(eval.ToBoolean(arg(args, 0))), nil
	})
	r.defineMethods(r.BooleanPrototype, []method{
		{"toString", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			b, err := thisPrimitive[vals.Bool](r, this, "Boolean.prototype.toString")
			if err != nil {
				return nil, err
			}
			return vals.String(vals.Repr(b)), nil
		}},
		{"valueOf", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			return thisPrimitive[vals.Bool](r, this, "Boolean.prototype.valueOf")
		}},
	})
}

func (r *Realm) initSymbol() {
	// Symbol is not a constructor.
	ctor := r.NewFunction("Symbol", 0, func(_ vals.Value, args []vals.Value, _ vals.Object) (vals.Value, error) {
		if desc := arg(args, 0); !isUndefined(desc) {
			s, err := eval.ToString(r, desc)
			if err != nil {
				return nil, err
			}
			return vals.NewSymbol(s), nil
		}
		return &vals.Symbol{}, nil
	})
	ctor.defineOrdinary(vals.String("prototype"), vals.DataDescriptor(r.SymbolPrototype, false, false, false))
	r.SymbolPrototype.defineBuiltin(vals.String("constructor"), ctor)
	for name, sym := range map[string]*vals.Symbol{
		"iterator":    vals.SymbolIterator,
		"hasInstance": vals.SymbolHasInstance,
		"toPrimitive": vals.SymbolToPrimitive,
	} {
		ctor.defineOrdinary(vals.String(name), vals.DataDescriptor(sym, false, false, false))
	}
	r.defineGlobal("Symbol", ctor)

	r.defineMethods(r.SymbolPrototype, []method{
		{"toString", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			sym, err := thisPrimitive[*vals.Symbol](r, this, "Symbol.prototype.toString")
			if err != nil {
				return nil, err
			}
			return vals.String(vals.SymbolDescriptiveString(sym)), nil
		}},
		{"valueOf", 0, func(this vals.Value, _ []vals.Value, _ vals.Object) (vals.Value, error) {
			return thisPrimitive[*vals.Symbol](r, this, "Symbol.prototype.valueOf")
		}},
	})
}
