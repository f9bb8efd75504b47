package scale

import (
	"fmt"

	"github.com/fastbreeding/breedpatch/ir"
)

// NumType partitions the configuration table.
type NumType string

const (
	Integer NumType = "integer"
	Float   NumType = "float"
)

// ReduceDrops is the boolean setting guarding drop scaling.
const ReduceDrops = "REDUCE_DROPS"

// Expression is the configuration formula for one patched value.
type Expression struct {
	SettingKey string
	Category   Category
	Formula    string
	Type       NumType
}

// Formula builds the expression re-deriving a field of category cat with
// original value v from the multiplier named key.
//
// Only CooldownMin gets the zero special case; CooldownMax at zero uses the
// generic formula.
func Formula(cat Category, key string, v float64) Expression {
	val := ir.FormatNumber(v)
	generic := fmt.Sprintf("round(%s * %s)", key, val)
	res := Expression{
		SettingKey: key,
		Category:   cat,
		Formula:    generic,
		Type:       Integer,
	}
	switch cat {
	case Duration:
		res.Formula = fmt.Sprintf("max(1, %s)", generic)
	case CooldownMin:
		if v == 0 {
			res.Formula = fmt.Sprintf("greater(%s, 1.0, ceiling(%s - 1), 0)", key, key)
		}
	case DropQuantity:
		res.Formula = fmt.Sprintf("(%s) ? min(1.0, %s) * %s : %s", ReduceDrops, key, val, val)
		res.Type = Float
	}
	return res
}
