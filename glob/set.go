package glob

import "strings"

// Set matches a path when any of its patterns does.
type Set []*Pattern

func CompileSet(patterns ...string) (Set, error) {
	res := make(Set, 0, len(patterns))
	for _, pattern := range patterns {
		p, err := Compile(pattern)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

// Cross compiles every prefix joined with every suffix, prefixes outermost.
func Cross(prefixes, suffixes []string) (Set, error) {
	joined := make([]string, 0, len(prefixes)*len(suffixes))
	for _, prefix := range prefixes {
		for _, suffix := range suffixes {
			joined = append(joined, join(prefix, suffix))
		}
	}
	return CompileSet(joined...)
}

func MustCross(prefixes, suffixes []string) Set {
	s, err := Cross(prefixes, suffixes)
	if err != nil {
		panic(err)
	}
	return s
}

func MustCompileSet(patterns ...string) Set {
	s, err := CompileSet(patterns...)
	if err != nil {
		panic(err)
	}
	return s
}

func join(prefix, suffix string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(suffix, "/")
}

func (s Set) Match(segs []string) bool {
	for _, p := range s {
		if p.Match(segs) {
			return true
		}
	}
	return false
}

// Union returns a set holding the patterns of s followed by those of o.
func (s Set) Union(o Set) Set {
	res := make(Set, 0, len(s)+len(o))
	res = append(res, s...)
	return append(res, o...)
}
