// Package ir holds the document model shared by every stage of patch
// compilation.
//
// A document is a tree of *Node. Scalars are NumberType, StringType and
// BoolType nodes; NullType is a leaf but carries no value to scale. ObjectType
// nodes keep their keys in Fields, in source order, with Fields[i] naming
// Values[i]. ArrayType nodes only use Values.
//
// Every child knows its Parent, its ParentIndex and, under an object, its
// ParentField, so a node can report its Path without help from the walker.
//
// Positions are addressed by Path, a list of field or index segments whose
// string form is a JSON pointer:
//
//	p, _ := ir.ParsePath("/server/behaviors/0/hoursToGrow")
//	node, err := doc.GetPath(p)
//
// Leaves and FilterLeaves enumerate the scalars of a tree lazily:
//
//	for leaf := range ir.FilterLeaves(doc, nil, patterns) {
//		v, _ := leaf.Node.Number()
//		fmt.Println(leaf.Path, v)
//	}
//
// Documents are read-only once parsed. Code that needs to edit one works on a
// Clone.
package ir
