package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object field or an array index.
type Segment struct {
	Field   string
	Index   int
	IsIndex bool
}

func FieldSeg(f string) Segment {
	return Segment{Field: f}
}

func IndexSeg(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Field
}

// Path addresses a node from a document root. Its string form is a JSON
// pointer.
type Path []Segment

// ParsePath parses a JSON pointer. Segments made only of digits become
// indices; everything else is a field. "" and "/" parse differently: the first
// is the root, the second a single empty field.
func ParsePath(p string) (Path, error) {
	if p == "" {
		return nil, nil
	}
	if p[0] != '/' {
		return nil, fmt.Errorf("%w: %q should start with '/'", ErrBadPath, p)
	}
	parts := strings.Split(p[1:], "/")
	res := make(Path, 0, len(parts))
	for _, part := range parts {
		part = unescape(part)
		if isIndex(part) {
			i, err := strconv.Atoi(part)
			if err == nil {
				res = append(res, IndexSeg(i))
				continue
			}
		}
		res = append(res, FieldSeg(part))
	}
	return res, nil
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var (
	ptrEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	ptrUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

func escape(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	return ptrEscaper.Replace(s)
}

func unescape(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return ptrUnescaper.Replace(s)
}

func (p Path) String() string {
	var buf strings.Builder
	for _, seg := range p {
		buf.WriteByte('/')
		buf.WriteString(escape(seg.String()))
	}
	return buf.String()
}

// Strings returns the unescaped segments of p, the form path patterns are
// matched against.
func (p Path) Strings() []string {
	res := make([]string, len(p))
	for i, seg := range p {
		res[i] = seg.String()
	}
	return res
}

// Append returns a new path; p is never modified.
func (p Path) Append(segs ...Segment) Path {
	res := make(Path, len(p), len(p)+len(segs))
	copy(res, p)
	return append(res, segs...)
}

// HasPrefix reports whether q is a prefix of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i].String() != q[i].String() {
			return false
		}
	}
	return true
}

// Path returns the position of y relative to its root.
func (y *Node) Path() Path {
	var rev Path
	for x := y; x.Parent != nil; x = x.Parent {
		switch x.Parent.Type {
		case ObjectType:
			rev = append(rev, FieldSeg(x.ParentField))
		case ArrayType:
			rev = append(rev, IndexSeg(x.ParentIndex))
		default:
			panic("parent but not in container")
		}
	}
	res := make(Path, len(rev))
	for i, seg := range rev {
		res[len(rev)-1-i] = seg
	}
	return res
}

// GetPath returns the node at p below y without copying it.
func (y *Node) GetPath(p Path) (*Node, error) {
	res := y
	for i, seg := range p {
		switch res.Type {
		case ObjectType:
			v := Get(res, seg.String())
			if v == nil {
				return nil, fmt.Errorf("%w: no field %q at %s", ErrNoPath, seg.String(), p[:i])
			}
			res = v
		case ArrayType:
			idx := seg.Index
			if !seg.IsIndex {
				n, err := strconv.Atoi(seg.Field)
				if err != nil {
					return nil, fmt.Errorf("%w: field %q into array at %s", ErrNoPath, seg.Field, p[:i])
				}
				idx = n
			}
			if idx < 0 || idx >= len(res.Values) {
				return nil, fmt.Errorf("%w: index out of bounds %d (len %d) at %s", ErrNoPath, idx, len(res.Values), p[:i])
			}
			res = res.Values[idx]
		default:
			return nil, fmt.Errorf("%w: %s is not a container at %s", ErrNoPath, res.Type, p[:i])
		}
	}
	return res, nil
}
