package lisp

// Env is one frame of a lexically nested environment chain. Each frame
// binds exactly one name; a new binding is a new head frame, so a captured
// closure's scope chain is frozen for free by sharing the *Env it points
// at, making capture O(1). The bound slot itself stays mutable so that
// define, set! and letrec back-patching can update it after the frame has
// been built and possibly captured.
type Env struct {
	sym    string
	val    *Value
	parent *Env
}

// Empty returns the empty environment chain.
func Empty() *Env {
	return nil
}

// Extend returns a new chain with a new head frame binding name to val. It
// never mutates env.
func Extend(name string, val *Value, env *Env) *Env {
	return &Env{sym: name, val: val, parent: env}
}

// Find walks the chain head-first and returns the first binding for name.
// The boolean result is false when name is unbound anywhere in the chain.
func Find(name string, env *Env) (*Value, bool) {
	for e := env; e != nil; e = e.parent {
		if e.sym == name {
			return e.val, true
		}
	}
	return nil, false
}

// Modify locates the innermost frame binding name and overwrites its slot.
// If no such frame exists it is silently a no-op: callers that need the
// binding to exist first establish it with Extend (see Define, Letrec).
func Modify(name string, val *Value, env *Env) {
	for e := env; e != nil; e = e.parent {
		if e.sym == name {
			e.val = val
			return
		}
	}
}

// IsBound reports whether name is bound anywhere in the chain. The parser
// uses this to decide whether a reserved or primitive name has been
// shadowed by a user binding.
func IsBound(name string, env *Env) bool {
	_, ok := Find(name, env)
	return ok
}
