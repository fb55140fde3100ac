package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
)

// Banner lines, written inside the target's line comment.
const (
	BannerHeader = "Code generated by codespawn. DO NOT EDIT."
	BannerFooter = "End of generated code."
)

// defaultQualifier applies to standalone variables without a Qualifier.
const defaultQualifier = "const"

// entrySeparator ends enum and flag-set entries.
const entrySeparator = ","

// paramSeparator joins parameters of a function with several children.
const paramSeparator = ", "

// Engine renders IR trees for one target.
type Engine struct {
	syntax Syntax
}

// New creates an Engine for a Syntax.
func New(s Syntax) *Engine {
	return &Engine{syntax: s}
}

// ForLang creates an Engine for a built-in target.
func ForLang(lang ir.Lang) (*Engine, error) {
	s, err := SyntaxFor(lang)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// Syntax returns the engine's target syntax.
func (e *Engine) Syntax() Syntax {
	return e.syntax
}

// Render converts items to source text.
//
// Every attribute value is read through sub, so the tree itself is never
// modified. A structural violation aborts rendering with an
// *ir.InvalidIRError; unknown kinds render as empty text.
func (e *Engine) Render(items []*ir.Node, format config.Format, sub config.Substitution) (string, error) {
	w := &walker{
		syn:   e.syntax,
		unit:  strings.Repeat(string(format.IndentChar), int(format.IndentWidth)),
		sub:   sub,
		upper: cases.Upper(language.Und),
	}

	var sb strings.Builder
	sb.WriteString(e.syntax.LineComment() + " " + BannerHeader + "\n")
	for i, item := range items {
		s, err := w.node(item, 0, false, fmt.Sprintf("items[%d]", i))
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteString(e.syntax.LineComment() + " " + BannerFooter + "\n")
	return sb.String(), nil
}

// funcMode selects how a function signature is terminated.
type funcMode int

const (
	funcStatement funcMode = iota
	funcMember
	funcInline
)

// walker holds the state of one Render call.
type walker struct {
	syn   Syntax
	unit  string
	sub   config.Substitution
	upper cases.Caser
}

func (w *walker) indent(depth int) string {
	return strings.Repeat(w.unit, depth)
}

// get resolves a present attribute; absent attributes stay empty.
func (w *walker) get(n *ir.Node, key ir.AttrKey) string {
	v, _ := w.lookup(n, key)
	return v
}

func (w *walker) lookup(n *ir.Node, key ir.AttrKey) (string, bool) {
	v, ok := n.Lookup(key)
	if !ok {
		return "", false
	}
	return w.sub.Resolve(v), true
}

// node dispatches on kind. member is set for direct children of a struct.
func (w *walker) node(n *ir.Node, depth int, member bool, path string) (string, error) {
	if n == nil {
		return "", nil
	}
	switch n.Kind {
	case ir.KindVariable:
		return w.variable(n, depth, member), nil
	case ir.KindFunction, ir.KindFunctionPointer:
		mode := funcStatement
		if member {
			mode = funcMember
		}
		return w.function(n, depth, mode, path)
	case ir.KindEnum:
		return w.enum(n, depth, path)
	case ir.KindStruct:
		return w.structure(n, depth, path)
	case ir.KindBitFlags:
		return w.bitflags(n, depth, path)
	case ir.KindAttribute:
		return w.decoration(n, depth), nil
	default:
		return "", nil
	}
}

// decoration renders every non-empty attribute of an Attribute node as its
// own line.
func (w *walker) decoration(n *ir.Node, depth int) string {
	var sb strings.Builder
	ind := w.indent(depth)
	for _, a := range n.Attrs {
		if v := w.sub.Resolve(a.Value); v != "" {
			sb.WriteString(ind + v + "\n")
		}
	}
	return sb.String()
}

// headerDecoration is the node's own AttributeText line, if any.
func (w *walker) headerDecoration(n *ir.Node, depth int) string {
	if t := w.get(n, ir.AttrText); t != "" {
		return w.indent(depth) + t + "\n"
	}
	return ""
}

// entry renders an enum or flag entry: bare name, or name with value,
// cast to the underlying type when one is given.
func (w *walker) entry(name, value, typ string) string {
	if value == "" {
		return name
	}
	if typ != "" {
		value = w.syn.Cast(value, typ)
	}
	return name + " = " + value
}

func (w *walker) enum(n *ir.Node, depth int, path string) (string, error) {
	ind, body := w.indent(depth), w.indent(depth+1)

	var deco, entries strings.Builder
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		if err := ir.CheckChild(n.Kind, c.Kind); err != nil {
			return "", ir.WithPath(err, childPath(path, i))
		}
		switch c.Kind {
		case ir.KindVariable:
			e := w.entry(w.get(c, ir.AttrName), w.get(c, ir.AttrValue), w.get(c, ir.AttrType))
			entries.WriteString(body + e + entrySeparator + "\n")
		case ir.KindAttribute:
			deco.WriteString(w.decoration(c, depth))
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(deco.String())
	sb.WriteString(w.headerDecoration(n, depth))
	sb.WriteString(ind + w.syn.BlockHeader(ir.KindEnum, w.get(n, ir.AttrName)) + "\n")
	sb.WriteString(entries.String())
	sb.WriteString(ind + w.syn.BlockClose(ir.KindEnum) + "\n\n")
	return sb.String(), nil
}

func (w *walker) structure(n *ir.Node, depth int, path string) (string, error) {
	ind := w.indent(depth)

	var deco, members strings.Builder
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		if err := ir.CheckChild(n.Kind, c.Kind); err != nil {
			return "", ir.WithPath(err, childPath(path, i))
		}
		if c.Kind == ir.KindAttribute {
			deco.WriteString(w.decoration(c, depth))
			continue
		}
		s, err := w.node(c, depth+1, true, childPath(path, i))
		if err != nil {
			return "", err
		}
		members.WriteString(s)
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(deco.String())
	sb.WriteString(w.headerDecoration(n, depth))
	sb.WriteString(ind + w.syn.BlockHeader(ir.KindStruct, w.get(n, ir.AttrName)) + "\n")
	sb.WriteString(members.String())
	sb.WriteString(ind + w.syn.BlockClose(ir.KindStruct) + "\n\n")
	return sb.String(), nil
}

// variable renders a standalone binding or a struct member. A variable
// without a type renders as nothing in every mode.
func (w *walker) variable(n *ir.Node, depth int, member bool) string {
	typ := w.get(n, ir.AttrType)
	if typ == "" {
		return ""
	}
	name := w.get(n, ir.AttrName)
	var value string
	if v := w.get(n, ir.AttrValue); v != "" {
		value = " = " + v
	}
	ind := w.indent(depth)

	if member {
		return ind + w.syn.Bind(name, typ) + value + w.syn.FieldSeparator() + "\n"
	}

	qual, ok := w.lookup(n, ir.AttrQualifier)
	if !ok {
		qual = defaultQualifier
	}
	gopen, gclose := w.syn.GenericMarkers()
	if strings.Contains(qual, gopen) {
		return ind + w.syn.Visibility() + w.syn.Bind(name, qual+typ+gclose) + value + w.syn.Terminator() + "\n"
	}
	if qual != "" {
		qual += " "
	}
	return ind + w.syn.Visibility() + qual + w.syn.Bind(name, typ) + value + w.syn.Terminator() + "\n"
}

// function renders a Function or FunctionPointer node. In inline mode the
// result is a bare parameter description without indentation, visibility
// or terminator.
func (w *walker) function(n *ir.Node, depth int, mode funcMode, path string) (string, error) {
	ptr := n.Kind == ir.KindFunctionPointer
	name := w.get(n, ir.AttrName)
	qual := w.get(n, ir.AttrQualifier)
	if ptr && qual == "" {
		qual = w.syn.PointerQualifier(mode == funcStatement)
	}
	gopen, gclose := w.syn.GenericMarkers()
	generic := strings.Contains(qual, gopen)

	params, err := w.params(n, depth, path)
	if err != nil {
		return "", err
	}

	var decl string
	if generic {
		// The wrapper supplies the indirection, so the inner type is a
		// plain function type.
		inner := w.syn.FuncType(FuncSig{Params: params, Return: w.get(n, ir.AttrType)})
		decl = w.syn.Bind(name, qual+inner+gclose)
	} else {
		decl = w.syn.FuncType(FuncSig{
			Name:      name,
			Qualifier: qual,
			Params:    params,
			Return:    w.get(n, ir.AttrType),
			Pointer:   ptr,
		})
	}

	switch mode {
	case funcInline:
		return decl, nil
	case funcMember:
		return w.indent(depth) + decl + w.syn.FieldSeparator() + "\n", nil
	default:
		return w.indent(depth) + w.syn.Visibility() + decl + w.syn.Terminator() + "\n", nil
	}
}

// params renders the parameter list of a function node.
//
// A Variable with an empty type contributes nothing. Function pointers,
// whether direct children or nested in a Variable, are rendered inline.
// Separators are only written when the node has more than one child.
func (w *walker) params(n *ir.Node, depth int, path string) (string, error) {
	var list []string
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		cp := childPath(path, i)
		if err := ir.CheckChild(n.Kind, c.Kind); err != nil {
			return "", ir.WithPath(err, cp)
		}
		switch c.Kind {
		case ir.KindVariable:
			if err := ir.CheckParamTree(n.Kind, c, cp); err != nil {
				return "", err
			}
			for j, nested := range c.Children {
				if nested == nil || nested.Kind != ir.KindFunctionPointer {
					continue
				}
				s, err := w.function(nested, depth, funcInline, childPath(cp, j))
				if err != nil {
					return "", err
				}
				list = append(list, s)
			}
			if typ := w.get(c, ir.AttrType); typ != "" {
				list = append(list, w.syn.Bind(w.get(c, ir.AttrName), typ))
			}
		case ir.KindFunctionPointer:
			s, err := w.function(c, depth, funcInline, cp)
			if err != nil {
				return "", err
			}
			list = append(list, s)
		}
	}

	sep := ""
	if len(n.Children) > 1 {
		sep = paramSeparator
	}
	return strings.Join(list, sep), nil
}

func (w *walker) bitflags(n *ir.Node, depth int, path string) (string, error) {
	wrapOpen, wrapClose := w.syn.FlagsWrapper()
	inner := depth
	if wrapOpen != "" {
		inner = depth + 1
	}
	ind, iind, body := w.indent(depth), w.indent(inner), w.indent(inner+1)

	var deco, entries strings.Builder
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		if err := ir.CheckChild(n.Kind, c.Kind); err != nil {
			return "", ir.WithPath(err, childPath(path, i))
		}
		switch c.Kind {
		case ir.KindVariable:
			name := w.upper.String(w.get(c, ir.AttrName))
			e := w.entry(name, w.get(c, ir.AttrValue), w.get(c, ir.AttrType))
			entries.WriteString(body + w.syn.FlagsEntryPrefix() + e + entrySeparator + "\n")
		case ir.KindAttribute:
			deco.WriteString(w.decoration(c, inner))
		}
	}

	var sb strings.Builder
	if wrapOpen != "" {
		sb.WriteString(ind + wrapOpen + "\n")
	}
	sb.WriteString(deco.String())
	sb.WriteString(w.headerDecoration(n, inner))
	sb.WriteString(iind + w.syn.FlagsHeader(w.get(n, ir.AttrName), w.get(n, ir.AttrType)) + "\n")
	sb.WriteString(entries.String())
	sb.WriteString(iind + w.syn.FlagsClose() + "\n")
	if wrapOpen != "" {
		sb.WriteString(ind + wrapClose + "\n")
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

func childPath(path string, i int) string {
	return fmt.Sprintf("%s.children[%d]", path, i)
}
