package parse

import "bytes"

// Normalize rewrites relaxed JSON into text a YAML flow parser accepts:
// comments are removed, tabs outside strings become spaces, a space follows
// every ':' and commas directly before a closing bracket are dropped.
// Single-quoted strings become double-quoted ones with the same value.
func Normalize(d []byte) []byte {
	d = bytes.TrimPrefix(d, []byte("\xef\xbb\xbf"))
	return dropTrailingCommas(stripComments(d))
}

func stripComments(d []byte) []byte {
	res := make([]byte, 0, len(d))
	var quote byte
	for i := 0; i < len(d); i++ {
		c := d[i]
		if quote != 0 {
			switch {
			case c == '\\' && i+1 < len(d):
				i++
				if d[i] == '\'' {
					// \' is not an escape in double quotes
					res = append(res, '\'')
				} else {
					res = append(res, c, d[i])
				}
			case c == quote:
				res = append(res, '"')
				quote = 0
			case c == '"':
				res = append(res, '\\', '"')
			default:
				res = append(res, c)
			}
			continue
		}
		switch {
		case c == '"' || c == '\'':
			quote = c
			res = append(res, '"')
		case c == '/' && i+1 < len(d) && d[i+1] == '/':
			for i < len(d) && d[i] != '\n' {
				i++
			}
			if i < len(d) {
				res = append(res, '\n')
			}
		case c == '/' && i+1 < len(d) && d[i+1] == '*':
			i += 2
			for i < len(d) && !(d[i] == '*' && i+1 < len(d) && d[i+1] == '/') {
				if d[i] == '\n' {
					res = append(res, '\n')
				}
				i++
			}
			i++
			res = append(res, ' ')
		case c == '\t':
			res = append(res, ' ')
		case c == ':':
			res = append(res, c)
			if i+1 < len(d) && !isSpace(d[i+1]) {
				res = append(res, ' ')
			}
		default:
			res = append(res, c)
		}
	}
	return res
}

func dropTrailingCommas(d []byte) []byte {
	res := make([]byte, 0, len(d))
	var quote byte
	for i := 0; i < len(d); i++ {
		c := d[i]
		if quote != 0 {
			res = append(res, c)
			switch c {
			case '\\':
				if i+1 < len(d) {
					i++
					res = append(res, d[i])
				}
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"':
			quote = c
		case ',':
			j := i + 1
			for j < len(d) && isSpace(d[j]) {
				j++
			}
			if j < len(d) && (d[j] == ']' || d[j] == '}') {
				continue
			}
		}
		res = append(res, c)
	}
	return res
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
