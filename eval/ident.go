package eval

import (
	"fmt"
	"maps"
	"slices"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Identifiers returns the sorted names of the variables formula refers to.
// Names of called functions are not variables.
func Identifiers(formula string) ([]string, error) {
	tree, err := parser.Parse(formula)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", formula, err)
	}
	idents := map[string]bool{}
	collectIdents(tree.Node, idents)
	return slices.Sorted(maps.Keys(idents)), nil
}

// collectIdents walks node top down so call nodes are seen before their
// callee.
func collectIdents(node ast.Node, idents map[string]bool) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *ast.IdentifierNode:
		idents[n.Value] = true
	case *ast.CallNode:
		if _, ok := n.Callee.(*ast.IdentifierNode); !ok {
			collectIdents(n.Callee, idents)
		}
		for _, arg := range n.Arguments {
			collectIdents(arg, idents)
		}
	case *ast.BuiltinNode:
		for _, arg := range n.Arguments {
			collectIdents(arg, idents)
		}
	case *ast.BinaryNode:
		collectIdents(n.Left, idents)
		collectIdents(n.Right, idents)
	case *ast.UnaryNode:
		collectIdents(n.Node, idents)
	case *ast.ConditionalNode:
		collectIdents(n.Cond, idents)
		collectIdents(n.Exp1, idents)
		collectIdents(n.Exp2, idents)
	case *ast.ArrayNode:
		for _, elem := range n.Nodes {
			collectIdents(elem, idents)
		}
	case *ast.MapNode:
		for _, pair := range n.Pairs {
			collectIdents(pair, idents)
		}
	case *ast.PairNode:
		collectIdents(n.Key, idents)
		collectIdents(n.Value, idents)
	case *ast.MemberNode:
		collectIdents(n.Node, idents)
	case *ast.ChainNode:
		collectIdents(n.Node, idents)
	}
}
