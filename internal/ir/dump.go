package ir

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented structural dump of nodes to w, one node per
// line, two spaces per level:
//
//	enum name="Color"
//	  var name="Red" value="1"
func Fprint(w io.Writer, nodes []*Node) error {
	var sb strings.Builder
	for _, n := range nodes {
		dumpNode(&sb, n, 0)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Sprint returns the dump produced by Fprint.
func Sprint(nodes []*Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, nodes)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.Tag())
	for _, a := range n.Attrs {
		fmt.Fprintf(sb, " %s=%q", a.Key, a.Value)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		dumpNode(sb, c, depth+1)
	}
}
