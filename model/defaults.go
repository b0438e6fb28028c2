package model

import "github.com/creasty/defaults"

// The sections carrying `default` struct tags apply them before
// decoding, so a document that omits a field observes the documented
// default rather than the zero value.

func (n *Network) UnmarshalYAML(f func(interface{}) error) error {
	_ = defaults.Set(n)
	type tmp Network // avoid recursive calls to UnmarshalYAML
	return f((*tmp)(n))
}

func (w *Worker) UnmarshalYAML(f func(interface{}) error) error {
	_ = defaults.Set(w)
	type tmp Worker
	return f((*tmp)(w))
}

func (o *Operation) UnmarshalYAML(f func(interface{}) error) error {
	_ = defaults.Set(o)
	type tmp Operation
	return f((*tmp)(o))
}

// Defaults returns a Root with every section present and populated
// with default values, the document an empty configuration file
// denotes.
func Defaults() *Root {
	m := &Root{
		Network:   &Network{},
		Worker:    &Worker{},
		Startup:   &Startup{},
		Operation: &Operation{},
		RunEngine: &RunEngine{},
	}
	_ = defaults.Set(m)
	return m
}
