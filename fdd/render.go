package fdd

import (
	"fmt"
	"io"
	"strings"

	"github.com/emicklei/dot"
)

// ToString renders h as indented text: each branch prints its test, then
// its true child (labeled "T") and false child (labeled "F") indented
// one level further; each leaf prints its ActionSet. Shared subdiagrams
// are printed once per occurrence, not once overall — ToDot is the tool
// for inspecting sharing, ToString is for quick human reading.
func (f *Forest) ToString(h Handle) string {
	var b strings.Builder
	f.toStringWalk(h, 0, &b)
	return b.String()
}

func (f *Forest) toStringWalk(h Handle, depth int, b *strings.Builder) {
	indent := strings.Repeat("  ", depth)
	n := f.get(h)
	if n.isLeaf {
		fmt.Fprintf(b, "%s%s\n", indent, n.leaf.String())
		return
	}
	fmt.Fprintf(b, "%s%s = %s ?\n", indent, n.test.Field, n.test.Value)
	fmt.Fprintf(b, "%sT:\n", indent)
	f.toStringWalk(n.tChild, depth+1, b)
	fmt.Fprintf(b, "%sF:\n", indent)
	f.toStringWalk(n.fChild, depth+1, b)
}

// ToDot writes h as a GraphViz DOT graph, one graph node per reachable
// FDD node (shared nodes drawn once, so the diagram's sharing is visible
// in the rendering) and edges labeled "true"/"false" (spec.md section
// 4.3, "to_dotfile").
func (f *Forest) ToDot(h Handle, w io.Writer) error {
	g := dot.NewGraph(dot.Directed)
	visited := map[Handle]dot.Node{}
	f.toDotWalk(h, g, visited)
	_, err := io.WriteString(w, g.String())
	return err
}

func (f *Forest) toDotWalk(h Handle, g *dot.Graph, visited map[Handle]dot.Node) dot.Node {
	if gn, ok := visited[h]; ok {
		return gn
	}
	n := f.get(h)
	var gn dot.Node
	if n.isLeaf {
		gn = g.Node(fmt.Sprintf("h%d", h)).Box().Label(n.leaf.String())
	} else {
		gn = g.Node(fmt.Sprintf("h%d", h)).Label(fmt.Sprintf("%s=%s", n.test.Field, n.test.Value))
		visited[h] = gn
		tgn := f.toDotWalk(n.tChild, g, visited)
		fgn := f.toDotWalk(n.fChild, g, visited)
		g.Edge(gn, tgn).Label("true")
		g.Edge(gn, fgn).Label("false")
		return gn
	}
	visited[h] = gn
	return gn
}
