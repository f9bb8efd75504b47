package ir

import (
	"iter"

	"github.com/fastbreeding/breedpatch/debug"
)

// Leaf is a scalar found while walking a document, together with where it
// was found.
type Leaf struct {
	Path   Path
	Node   *Node
	Parent *Node // nil when the walk started at the scalar itself
	Key    Segment
}

// Matcher selects leaves by the unescaped segments of their path.
type Matcher interface {
	Match(path []string) bool
}

// Leaves yields every scalar below root in document order, each with its path
// prefixed by prefix. Null values are not scalars and are skipped. The
// sequence holds no state between iterations and can be ranged over again.
func Leaves(root *Node, prefix Path) iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		if root == nil {
			return
		}
		if root.Type.IsScalar() {
			leaf := Leaf{Path: prefix.Append(), Node: root}
			if len(prefix) != 0 {
				leaf.Key = prefix[len(prefix)-1]
			}
			yield(leaf)
			return
		}
		walk(root, prefix.Append(), yield)
	}
}

func walk(y *Node, p Path, yield func(Leaf) bool) bool {
	for i, yv := range y.Values {
		var seg Segment
		switch y.Type {
		case ObjectType:
			seg = FieldSeg(y.Fields[i])
		case ArrayType:
			seg = IndexSeg(i)
		default:
			return true
		}
		childPath := p.Append(seg)
		switch {
		case !yv.Type.IsLeaf():
			if !walk(yv, childPath, yield) {
				return false
			}
		case yv.Type.IsScalar():
			if debug.Walk() {
				debug.Logf("leaf %s\n", childPath)
			}
			if !yield(Leaf{Path: childPath, Node: yv, Parent: y, Key: seg}) {
				return false
			}
		}
	}
	return true
}

// FilterLeaves yields the leaves of root whose path m accepts.
func FilterLeaves(root *Node, prefix Path, m Matcher) iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		for leaf := range Leaves(root, prefix) {
			if !m.Match(leaf.Path.Strings()) {
				continue
			}
			if debug.Match() {
				debug.Logf("matched %s\n", leaf.Path)
			}
			if !yield(leaf) {
				return
			}
		}
	}
}
