// Package encode writes IR nodes as JSON text.
//
// Output is indented with two spaces and terminated by a newline, the layout
// the game's asset loader and version control both tolerate best. Object keys
// are written in document order unless a key comparator is supplied:
//
//	err := encode.Encode(node, w, encode.SortKeys(encode.CompareKeys))
//
// With CompareKeys the output of Encode is a fixed point: parsing it and
// encoding the result again yields the same bytes.
//
// # Related Packages
//
//   - github.com/fastbreeding/breedpatch/ir - IR representation
//   - github.com/fastbreeding/breedpatch/parse - Parse text to IR
package encode
