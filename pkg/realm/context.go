package realm

import (
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/eval/vals"
)

// Context is an execution context: a lexical environment, a this value, a
// new.target value, strictness and a budget.
type Context struct {
	realm     *Realm
	env       Env
	this      vals.Value
	newTarget vals.Value
	strict    bool
	budget    *Budget
}

// NewContext returns a context for evaluating code at the top level of a
// script: the environment is the global environment and this is the global
// object. A nil budget places no limit on the evaluation. The budget also
// becomes the one native functions of the realm are charged to.
func (r *Realm) NewContext(strict bool, budget *Budget) *Context {
	r.budget = budget
	return &Context{
		realm: r, env: r.globalEnv, this: r.global,
		newTarget: vals.Undefined{}, strict: strict, budget: budget,
	}
}

// WithEnv returns a copy of the context with a different environment.
func (c *Context) WithEnv(env Env) *Context { return c.withEnv(env) }

func (c *Context) withEnv(env Env) *Context {
	c2 := *c
	c2.env = env
	return &c2
}

// WithThis returns a copy of the context with a different this value.
func (c *Context) WithThis(this vals.Value) *Context {
	c2 := *c
	c2.this = this
	return &c2
}

// Env returns the lexical environment of the context.
func (c *Context) Env() Env { return c.env }

// Budget returns the budget of the context, which may be nil.
func (c *Context) Budget() *Budget { return c.budget }

func (c *Context) Realm() eval.Realm { return c.realm }

func (c *Context) ResolveBinding(name string) (*eval.Reference, error) {
	for env := c.env; env != nil; env = env.Outer() {
		ok, err := env.HasBinding(name)
		if err != nil {
			return nil, err
		}
		if ok {
			return eval.NewEnvReference(env, name, c.strict), nil
		}
	}
	return eval.NewUnresolvableReference(name, c.strict), nil
}

func (c *Context) ResolveThisBinding() (vals.Value, error) { return c.this, nil }

func (c *Context) NewTarget() vals.Value { return c.newTarget }

func (c *Context) Strict() bool { return c.strict }

func (c *Context) CheckBudget() error {
	if c.budget == nil {
		return nil
	}
	return c.budget.Check()
}

var _ eval.Context = (*Context)(nil)
