package typesystem

import (
	"fmt"
	"reflect"
)

// Unify attempts to find a substitution that makes t1 and t2 equal.
// It enforces strict equality (invariant).
func Unify(t1, t2 Type) (Subst, error) {
	// If types are strictly equal there is nothing to do.
	if reflect.DeepEqual(t1, t2) {
		return Subst{}, nil
	}

	switch a := t1.(type) {
	case TVar:
		return bindTVar(a, t2)

	case TCon:
		if b, ok := t2.(TVar); ok {
			return bindTVar(b, t1)
		}
		if b, ok := t2.(TCon); ok && a.Name == b.Name && a.Module == b.Module {
			return Subst{}, nil
		}
		return nil, unificationError(t1, t2)

	case TApp:
		if b, ok := t2.(TVar); ok {
			return bindTVar(b, t1)
		}
		b, ok := t2.(TApp)
		if !ok || len(a.Args) != len(b.Args) {
			return nil, unificationError(t1, t2)
		}
		s, err := Unify(a.Constructor, b.Constructor)
		if err != nil {
			return nil, unificationError(t1, t2)
		}
		for i := range a.Args {
			s2, err := Unify(a.Args[i].Apply(s), b.Args[i].Apply(s))
			if err != nil {
				return nil, unificationError(t1, t2)
			}
			s = s.Compose(s2)
		}
		return s, nil

	case TTuple:
		if b, ok := t2.(TVar); ok {
			return bindTVar(b, t1)
		}
		b, ok := t2.(TTuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return nil, unificationError(t1, t2)
		}
		s := Subst{}
		for i := range a.Elements {
			s2, err := Unify(a.Elements[i].Apply(s), b.Elements[i].Apply(s))
			if err != nil {
				return nil, unificationError(t1, t2)
			}
			s = s.Compose(s2)
		}
		return s, nil

	case TFunc:
		if b, ok := t2.(TVar); ok {
			return bindTVar(b, t1)
		}
		b, ok := t2.(TFunc)
		if !ok || len(a.Params) != len(b.Params) {
			return nil, unificationError(t1, t2)
		}
		s := Subst{}
		for i := range a.Params {
			s2, err := Unify(a.Params[i].Apply(s), b.Params[i].Apply(s))
			if err != nil {
				return nil, unificationError(t1, t2)
			}
			s = s.Compose(s2)
		}
		s2, err := Unify(a.ReturnType.Apply(s), b.ReturnType.Apply(s))
		if err != nil {
			return nil, unificationError(t1, t2)
		}
		return s.Compose(s2), nil

	default:
		return nil, unificationError(t1, t2)
	}
}

func bindTVar(v TVar, t Type) (Subst, error) {
	if tv, ok := t.(TVar); ok && tv.Name == v.Name {
		return Subst{}, nil
	}
	// Occurs check: v must not appear free in t.
	for _, free := range t.FreeTypeVariables() {
		if free.Name == v.Name {
			return nil, fmt.Errorf("infinite type: %s occurs in %s", v.Name, t.String())
		}
	}
	return Subst{v.Name: t}, nil
}

func unificationError(t1, t2 Type) error {
	return fmt.Errorf("cannot unify %s with %s", t1.String(), t2.String())
}
