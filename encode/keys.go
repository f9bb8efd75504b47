package encode

import (
	"strconv"
	"strings"
)

// CompareKeys orders keys that both start with a decimal number by that
// number first and by the rest of the key second, so "2/value" sorts before
// "10/value". All other pairs compare as plain strings.
func CompareKeys(a, b string) int {
	an, arest, aok := numericPrefix(a)
	bn, brest, bok := numericPrefix(b)
	if aok && bok {
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
		return strings.Compare(arest, brest)
	}
	return strings.Compare(a, b)
}

func numericPrefix(s string) (uint64, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	n, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return n, s[i:], true
}
