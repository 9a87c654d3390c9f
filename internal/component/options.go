package component

import (
	"sort"

	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

// Options is the mutable view of an invocation's options handed to a
// handler. Handlers Take what they understand; whatever is left after the
// handler returns is an error.
type Options struct {
	component string
	values    map[string]string
}

func newOptions(component promptparser.Component, values map[string]string) *Options {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Options{component: component.String(), values: copied}
}

// Take removes key and returns its value.
func (o *Options) Take(key string) (string, bool) {
	value, ok := o.values[key]
	if ok {
		delete(o.values, key)
	}
	return value, ok
}

// Require is Take for options without a default.
func (o *Options) Require(key string) (string, error) {
	value, ok := o.Take(key)
	if !ok {
		return "", &MissingOptionError{Component: o.component, Key: key}
	}
	return value, nil
}

// TakeChoice removes key and checks its value against allowed. The first
// allowed value is the default.
func (o *Options) TakeChoice(key string, allowed ...string) (string, error) {
	value, ok := o.Take(key)
	if !ok {
		return allowed[0], nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", &InvalidOptionValueError{Component: o.component, Key: key, Value: value, Allowed: allowed}
}

// TakeBool removes a true/false option. Absent means false.
func (o *Options) TakeBool(key string) (bool, error) {
	value, err := o.TakeChoice(key, "false", "true")
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// Remaining returns the unconsumed options as sorted key=value pairs.
func (o *Options) Remaining() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + o.values[k]
	}
	return pairs
}

// check fails if any option was left unconsumed.
func (o *Options) check() error {
	if len(o.values) == 0 {
		return nil
	}
	return &InvalidOptionsError{Component: o.component, Pairs: o.Remaining()}
}
