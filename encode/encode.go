package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/fastbreeding/breedpatch/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	wire          bool
	cmp           func(a, b string) int

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w followed by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return writeColored(w, es, ir.NullType, ValueColor, "null")
	}
	switch node.Type {
	case ir.NullType:
		return writeColored(w, es, node.Type, ValueColor, "null")
	case ir.BoolType:
		return writeColored(w, es, node.Type, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NumberType:
		s, err := formatNumber(node)
		if err != nil {
			return err
		}
		return writeColored(w, es, node.Type, ValueColor, s)
	case ir.StringType:
		s, err := quote(node.String)
		if err != nil {
			return err
		}
		return writeColored(w, es, node.Type, ValueColor, s)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
	}
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeColored(w, es, node.Type, SepColor, "[]")
	}
	if err := writeColored(w, es, node.Type, SepColor, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeColored(w, es, node.Type, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, node.Type, SepColor, "]")
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeColored(w, es, node.Type, SepColor, "{}")
	}
	order := make([]int, len(node.Fields))
	for i := range order {
		order[i] = i
	}
	if es.cmp != nil {
		slices.SortStableFunc(order, func(a, b int) int {
			return es.cmp(node.Fields[a], node.Fields[b])
		})
	}
	if err := writeColored(w, es, node.Type, SepColor, "{"); err != nil {
		return err
	}
	es.depth++
	for n, i := range order {
		if n > 0 {
			if err := writeColored(w, es, node.Type, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		key, err := quote(node.Fields[i])
		if err != nil {
			return err
		}
		if err := writeColored(w, es, node.Type, FieldColor, key); err != nil {
			return err
		}
		sep := ": "
		if es.wire {
			sep = ":"
		}
		if err := writeColored(w, es, node.Type, SepColor, sep); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, node.Type, SepColor, "}")
}

func formatNumber(node *ir.Node) (string, error) {
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10), nil
	}
	if node.Float64 == nil {
		return "", fmt.Errorf("%w: number without value at %s", ErrEncoding, node.Path())
	}
	f := *node.Float64
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v is not representable at %s", ErrEncoding, f, node.Path())
	}
	return ir.FormatNumber(f), nil
}

func quote(s string) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeColored(w io.Writer, es *EncState, t ir.Type, attr ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, attr, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
