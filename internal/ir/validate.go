package ir

import (
	"errors"
	"fmt"
)

// InvalidIRError reports a child whose kind is not allowed under its parent.
//
// This is a defect in whatever produced the tree, not a user-input error:
// rendering of the affected tree must stop.
type InvalidIRError struct {
	// Parent is the kind of the node holding the offending child.
	Parent Kind

	// Child is the offending child's kind.
	Child Kind

	// Path locates the child, e.g. "items[0].children[2]".
	Path string

	// Hint optionally suggests the intended construct.
	Hint string
}

// Error implements the error interface.
func (e *InvalidIRError) Error() string {
	msg := fmt.Sprintf("invalid IR: %s cannot contain %s", e.Parent, e.Child)
	if e.Path != "" {
		msg += " (at " + e.Path + ")"
	}
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// IsInvalidIR reports whether err is (or wraps) an *InvalidIRError.
func IsInvalidIR(err error) bool {
	var ie *InvalidIRError
	return errors.As(err, &ie)
}

// CheckChild reports whether a child of kind child may appear under a
// parent of kind parent. It returns nil or an *InvalidIRError without Path.
//
// Allowed children:
//   - Enum, BitFlagSet: Variable, Attribute
//   - Struct: any kind
//   - Function, FunctionPointer: Variable, FunctionPointer
//
// Variable, Attribute and unknown parents are unconstrained.
func CheckChild(parent, child Kind) error {
	switch parent {
	case KindEnum, KindBitFlags:
		if child == KindVariable || child == KindAttribute {
			return nil
		}
	case KindFunction, KindFunctionPointer:
		switch child {
		case KindVariable, KindFunctionPointer:
			return nil
		case KindFunction:
			return &InvalidIRError{Parent: parent, Child: child,
				Hint: fmt.Sprintf("did you mean %q?", KindFunctionPointer.Tag())}
		}
	default:
		return nil
	}
	return &InvalidIRError{Parent: parent, Child: child}
}

// CheckParam checks a node nested inside a Variable parameter of a
// function. Only a Function kind is rejected there; other kinds are ignored.
func CheckParam(fn Kind, nested Kind) error {
	if nested == KindFunction {
		return &InvalidIRError{Parent: fn, Child: nested,
			Hint: fmt.Sprintf("did you mean %q?", KindFunctionPointer.Tag())}
	}
	return nil
}

// CheckParamTree checks every node below param, a Variable parameter of a
// function of kind fn, at any depth. Function pointers found there are
// checked with their own child rules.
func CheckParamTree(fn Kind, param *Node, path string) error {
	for i, nested := range param.Children {
		if nested == nil {
			continue
		}
		nestedPath := fmt.Sprintf("%s.children[%d]", path, i)
		if err := CheckParam(fn, nested.Kind); err != nil {
			return WithPath(err, nestedPath)
		}
		if nested.Kind == KindFunctionPointer {
			if err := validateNode(nested, nestedPath); err != nil {
				return err
			}
			continue
		}
		if err := CheckParamTree(fn, nested, nestedPath); err != nil {
			return err
		}
	}
	return nil
}

// Validate walks every tree in nodes and returns the first structural
// violation found, or nil.
func Validate(nodes []*Node) error {
	for i, n := range nodes {
		if err := validateNode(n, fmt.Sprintf("items[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node, path string) error {
	if n == nil {
		return nil
	}
	for i, c := range n.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if c == nil {
			continue
		}
		if err := CheckChild(n.Kind, c.Kind); err != nil {
			return WithPath(err, childPath)
		}
		if n.Kind.IsFunc() && c.Kind == KindVariable {
			if err := CheckParamTree(n.Kind, c, childPath); err != nil {
				return err
			}
			continue
		}
		if err := validateNode(c, childPath); err != nil {
			return err
		}
	}
	return nil
}

// WithPath fills in the Path of an *InvalidIRError that has none yet.
func WithPath(err error, path string) error {
	var ie *InvalidIRError
	if errors.As(err, &ie) && ie.Path == "" {
		ie.Path = path
	}
	return err
}
