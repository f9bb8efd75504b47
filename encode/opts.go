package encode

type EncodeOption func(*EncState)

// SortKeys orders the keys of every object with cmp.
func SortKeys(cmp func(a, b string) int) EncodeOption {
	return func(es *EncState) { es.cmp = cmp }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeWire writes everything on one line.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
