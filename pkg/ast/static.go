package ast

// Static semantics. These are facts about nodes that do not depend on runtime
// state.

// IsAnonymousFunctionDefinition reports whether e is a function expression
// without a name of its own, which receives a name by named evaluation when it
// is used as an initializer.
func IsAnonymousFunctionDefinition(e Expr) bool {
	fn, ok := e.(*FunctionExpr)
	return ok && (fn.Arrow || fn.ID == nil)
}

// BoundNames returns the names bound by a pattern, in source order.
func BoundNames(p Pattern) []string {
	var names []string
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch p := p.(type) {
		case *Identifier:
			names = append(names, p.Name)
		case *ArrayPattern:
			for _, e := range p.Elements {
				if e != nil {
					walk(e)
				}
			}
		case *ObjectPattern:
			for _, prop := range p.Properties {
				walk(prop)
			}
		case *PatternProperty:
			walk(p.Value)
		case *AssignmentPattern:
			walk(p.Left)
		case *RestElement:
			walk(p.Argument)
		}
	}
	walk(p)
	return names
}

// IsDestructuringTarget reports whether n is an array or object pattern.
func IsDestructuringTarget(n Node) bool {
	switch n.(type) {
	case *ArrayPattern, *ObjectPattern:
		return true
	}
	return false
}

// HasStrictDirective reports whether a directive prologue contains
// "use strict".
func HasStrictDirective(body []Node) bool {
	for _, n := range body {
		stmt, ok := n.(*ExpressionStatement)
		if !ok || stmt.Directive == "" {
			return false
		}
		if stmt.Directive == "use strict" {
			return true
		}
	}
	return false
}

// PropName returns the property name of a non-computed key that is an
// identifier or a string literal. Numeric keys are not handled here, because
// their names depend on number formatting.
func PropName(key Expr) (string, bool) {
	switch key := key.(type) {
	case *Identifier:
		return key.Name, true
	case *StringLiteral:
		return key.Value, true
	}
	return "", false
}
