package resolver

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// NodeType renders the kind of a node with its typed payload, for example
// `Function(int, str) -> bool` or `Variable(Point*)`.
func (s *Symbol) NodeType() string {
	switch s.Kind {
	case KindFunction:
		params := make([]string, len(s.function.Params))
		for i, p := range s.function.Params {
			params[i] = p.String()
		}
		return fmt.Sprintf("Function(%s) -> %s", strings.Join(params, ", "), s.function.ReturnType)
	case KindVariable:
		return fmt.Sprintf("Variable(%s)", s.variable.Type)
	case KindStructField:
		return fmt.Sprintf("StructField(%s)", s.field.Type)
	}
	return s.Kind.String()
}

// Dump writes the scope tree rooted at the Global node, one line per node
// indented by depth.
func (st *SymbolTable) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	st.dump(bw, st.Root(), 0)
	return bw.Flush()
}

// String returns the output of Dump.
func (st *SymbolTable) String() string {
	var sb strings.Builder
	_ = st.Dump(&sb)
	return sb.String()
}

func (st *SymbolTable) dump(w *bufio.Writer, id ScopeID, depth int) {
	node := st.nodes[id]
	parent := "-"
	if node.Parent != NoScope {
		parent = st.nodes[node.Parent].Name
	}
	fmt.Fprintf(w, "%sName:%s Access:%s NodeType:%s Parent:%s Children:%d\n",
		strings.Repeat("  ", depth), node.Name, node.Access, node.NodeType(), parent, len(node.children))

	for _, child := range node.children {
		st.dump(w, child, depth+1)
	}
}
