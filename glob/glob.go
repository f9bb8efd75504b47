// Package glob compiles structural path patterns.
//
// A pattern is a list of segments separated by '/':
//
//	literal   matches a segment equal to it
//	*         matches exactly one segment
//	**        matches zero or more segments
//	pig-*.json, [ab]c
//	          matches one segment with path.Match rules
//
// Matching is anchored at both ends. A leading '/' is optional and ignored, so
// "/server/behaviors/**" and "server/behaviors/**" are the same pattern.
package glob

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrBadPattern = errors.New("bad pattern")

type segKind int

const (
	literalSeg segKind = iota
	oneSeg
	anySeg
	globSeg
)

type seg struct {
	kind segKind
	text string
}

func (s seg) match(v string) bool {
	switch s.kind {
	case literalSeg:
		return s.text == v
	case oneSeg:
		return true
	case globSeg:
		ok, _ := path.Match(s.text, v)
		return ok
	default:
		return false
	}
}

// Pattern is a compiled path pattern.
type Pattern struct {
	src  string
	segs []seg
}

func (p *Pattern) String() string {
	return p.src
}

func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{src: pattern}
	body := strings.TrimPrefix(pattern, "/")
	if body == "" {
		return p, nil
	}
	parts := strings.Split(body, "/")
	p.segs = make([]seg, 0, len(parts))
	for i, part := range parts {
		switch {
		case part == "":
			return nil, fmt.Errorf("%w: empty segment %d in %q", ErrBadPattern, i, pattern)
		case part == "**":
			p.segs = append(p.segs, seg{kind: anySeg})
		case strings.Contains(part, "**"):
			return nil, fmt.Errorf("%w: unbalanced wildcard %q in %q", ErrBadPattern, part, pattern)
		case part == "*":
			p.segs = append(p.segs, seg{kind: oneSeg})
		case strings.ContainsAny(part, `*?[\`):
			if _, err := path.Match(part, ""); err != nil {
				return nil, fmt.Errorf("%w: %q in %q: %w", ErrBadPattern, part, pattern, err)
			}
			p.segs = append(p.segs, seg{kind: globSeg, text: part})
		default:
			p.segs = append(p.segs, seg{kind: literalSeg, text: part})
		}
	}
	return p, nil
}

func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the whole of segs is accepted by p.
//
// '**' first takes as few segments as it can and grows one segment at a time
// when the rest of the pattern fails, resuming from the most recent '**' only.
// Earlier '**'s never need to grow: any extra segments they could take are
// equally well taken by the later one.
func (p *Pattern) Match(segs []string) bool {
	pi, si := 0, 0
	star, mark := -1, 0
	for si < len(segs) {
		if pi < len(p.segs) {
			s := p.segs[pi]
			if s.kind == anySeg {
				star, mark = pi, si
				pi++
				continue
			}
			if s.match(segs[si]) {
				pi++
				si++
				continue
			}
		}
		if star == -1 {
			return false
		}
		mark++
		pi, si = star+1, mark
	}
	for pi < len(p.segs) && p.segs[pi].kind == anySeg {
		pi++
	}
	return pi == len(p.segs)
}

// MatchString splits s on '/' and matches the result.
func (p *Pattern) MatchString(s string) bool {
	return p.Match(Split(s))
}

// Split turns a slash delimited path into segments, ignoring one leading '/'.
func Split(s string) []string {
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
