package sparsipy

import "strings"

// paramSep delimits namespaced parameter keys, e.g. "lasso1__alpha".
const paramSep = "__"

// paramField is one entry of an estimator's declared parameter schema: a
// stable name plus explicit accessor and mutator. Schemas replace the
// attribute reflection a dynamic language would use here.
type paramField struct {
	name string
	get  func() any
	set  func(v any) error
}

type paramSchema []paramField

// values collects the schema into a parameter map.
func (s paramSchema) values() map[string]any {
	out := make(map[string]any, len(s))
	for _, f := range s {
		out[f.name] = f.get()
	}
	return out
}

// apply routes each entry of params to its mutator. owner names the
// estimator for error messages.
func (s paramSchema) apply(params map[string]any, owner string) error {
	for name, v := range params {
		f, ok := s.lookup(name)
		if !ok {
			return paramNameErrorf("%q is not a parameter of %s", name, owner)
		}
		if err := f.set(v); err != nil {
			return err
		}
	}
	return nil
}

func (s paramSchema) lookup(name string) (paramField, bool) {
	for _, f := range s {
		if f.name == name {
			return f, true
		}
	}
	return paramField{}, false
}

// splitParamKey splits a namespaced key on its first separator. The tail may
// itself be namespaced when estimators nest.
func splitParamKey(key string) (head, rest string, nested bool) {
	if i := strings.Index(key, paramSep); i >= 0 {
		return key[:i], key[i+len(paramSep):], true
	}
	return key, "", false
}

// Typed coercions for schema mutators. Numeric parameters accept both
// float64 and int values.

func asFloat(name string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	}
	return 0, paramNameErrorf("parameter %q expects a float64, got %T", name, v)
}

func asInt(name string, v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case float64:
		if x == float64(int(x)) {
			return int(x), nil
		}
	}
	return 0, paramNameErrorf("parameter %q expects an int, got %T", name, v)
}

func asBool(name string, v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, paramNameErrorf("parameter %q expects a bool, got %T", name, v)
}

func asIntSlice(name string, v any) ([]int, error) {
	s, ok := v.([]int)
	if !ok {
		return nil, paramNameErrorf("parameter %q expects a []int, got %T", name, v)
	}
	out := make([]int, len(s))
	copy(out, s)
	return out, nil
}
