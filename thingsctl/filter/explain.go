package filter

import (
	"fmt"
	"strings"
)

// Explain renders the expression tree one node per line, indented by
// depth. Useful for checking how a query parsed.
func Explain(e Expr) string {
	var b strings.Builder
	explainNode(&b, e, 0)
	return b.String()
}

func explainNode(b *strings.Builder, e Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case And:
		fmt.Fprintf(b, "%sAND\n", indent)
		explainNode(b, n.Left, depth+1)
		explainNode(b, n.Right, depth+1)
	case Or:
		fmt.Fprintf(b, "%sOR\n", indent)
		explainNode(b, n.Left, depth+1)
		explainNode(b, n.Right, depth+1)
	case Not:
		fmt.Fprintf(b, "%sNOT\n", indent)
		explainNode(b, n.Inner, depth+1)
	case Compare:
		switch n.Op {
		case OpIn:
			fmt.Fprintf(b, "%s%s IN ('%s')\n", indent, n.Field, strings.Join(n.Values, "', '"))
		case OpIsNull, OpIsNotNull:
			fmt.Fprintf(b, "%s%s %s\n", indent, n.Field, n.Op)
		default:
			fmt.Fprintf(b, "%s%s %s '%s'\n", indent, n.Field, n.Op, n.Value)
		}
	}
}
