package model

import "fmt"

type Node interface{}

type Visitor interface {
	Visit(Node) Visitor
}

func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Root:
		if n.Network != nil {
			Walk(v, n.Network)
		}

		if n.Worker != nil {
			Walk(v, n.Worker)
		}

		if n.Startup != nil {
			Walk(v, n.Startup)
		}

		if n.Operation != nil {
			Walk(v, n.Operation)
		}

		if n.RunEngine != nil {
			Walk(v, n.RunEngine)
		}

	case *Network, *Worker, *Startup, *Operation, *RunEngine:
		// nothing further

	default:
		panic(fmt.Sprintf("model.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type WalkFunc func(Node) bool

func (fn WalkFunc) Visit(node Node) Visitor {
	if fn(node) {
		return fn
	}
	return nil
}
