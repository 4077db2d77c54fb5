package vals

// Kind returns the language type of a value: one of "undefined", "null",
// "boolean", "number", "string", "symbol" and "object".
func Kind(v Value) string {
	switch v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case *Symbol:
		return "symbol"
	default:
		return "object"
	}
}

// TypeOf returns the result of the typeof operator applied to v. It differs
// from Kind for null, which is "object", and for callable objects, which are
// "function".
func TypeOf(v Value) string {
	switch v.(type) {
	case Null:
		return "object"
	case Callable:
		return "function"
	}
	return Kind(v)
}
