package ir

// AttrKey names a node attribute.
type AttrKey string

// Attribute keys. The set is closed; loaders only produce these.
const (
	AttrName      AttrKey = "name"
	AttrType      AttrKey = "type"
	AttrValue     AttrKey = "value"
	AttrQualifier AttrKey = "qualifier"
	AttrText      AttrKey = "attribute"
)

// Attr is a single key/value attribute of a Node.
type Attr struct {
	Key   AttrKey `json:"key"`
	Value string  `json:"value"`
}

// Node is one element of the IR tree.
//
// Attributes are ordered; when a key repeats, the last occurrence wins.
// Children are owned by the node and are never shared between parents.
type Node struct {
	Kind     Kind    `json:"kind"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// NewNode creates a node of the given kind with the given attributes.
func NewNode(kind Kind, attrs ...Attr) *Node {
	return &Node{Kind: kind, Attrs: attrs}
}

// A is shorthand for constructing an Attr.
func A(key AttrKey, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Set appends an attribute and returns n for chaining.
func (n *Node) Set(key AttrKey, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Lookup returns the value of key and whether it is present.
func (n *Node) Lookup(key AttrKey) (string, bool) {
	var (
		value string
		found bool
	)
	for _, a := range n.Attrs {
		if a.Key == key {
			value, found = a.Value, true
		}
	}
	return value, found
}

// Get returns the value of key, or "" when absent.
func (n *Node) Get(key AttrKey) string {
	v, _ := n.Lookup(key)
	return v
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind}
	if n.Attrs != nil {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if n.Children != nil {
		c.Children = Clone(n.Children)
	}
	return c
}

// Clone deep-copies a sequence of nodes.
func Clone(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// Walk visits n and all of its descendants depth-first, parents first.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
