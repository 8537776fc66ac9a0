package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Debug renders the tree below n, one element per line, indented by depth:
//
//	Root@0..13
//	  Struct@0..13
//	    Ident@0..6 "struct"
func Debug(n *SyntaxNode) string {
	var sb strings.Builder
	writeDebug(&sb, n, 0)
	return sb.String()
}

func writeDebug(sb *strings.Builder, n *SyntaxNode, depth int) {
	fmt.Fprintf(sb, "%s%s@%s\n", strings.Repeat("  ", depth), n.Kind(), n.TextRange())
	for el := range n.ChildrenWithTokens() {
		switch el := el.(type) {
		case *SyntaxNode:
			writeDebug(sb, el, depth+1)
		case *SyntaxToken:
			fmt.Fprintf(sb, "%s%s@%s %s\n", strings.Repeat("  ", depth+1), el.Kind(), el.TextRange(), strconv.Quote(el.Text()))
		}
	}
}
