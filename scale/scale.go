// Package scale decides what a tunable field is patched to and how the
// settings menu re-derives it from a cycle multiplier.
package scale

import (
	"math"
	"slices"
)

// Category is the kind of tunable field, inferred from its path.
type Category int

const (
	Generic Category = iota
	Duration
	CooldownMin
	CooldownMax
	DropQuantity
)

func (c Category) String() string {
	switch c {
	case Duration:
		return "duration"
	case CooldownMin:
		return "cooldownMin"
	case CooldownMax:
		return "cooldownMax"
	case DropQuantity:
		return "dropQuantity"
	default:
		return "generic"
	}
}

const Factor = 0.5

var (
	dropKeys        = []string{"drops", "dropsByType"}
	durationKeys    = []string{"hoursToGrow", "hoursToGrowByType", "pregnancyDays", "pregnancyDaysByType"}
	cooldownMinKeys = []string{"multiplyCooldownDaysMin", "multiplyCooldownDaysMinByType"}
	cooldownMaxKeys = []string{"multiplyCooldownDaysMax", "multiplyCooldownDaysMaxByType"}
)

// Classify infers the category of the field at path from the set of its
// segments. Drops win over everything else since quantities nest below them.
func Classify(path []string) Category {
	has := func(keys []string) bool {
		return slices.ContainsFunc(path, func(s string) bool {
			return slices.Contains(keys, s)
		})
	}
	switch {
	case has(dropKeys):
		return DropQuantity
	case has(durationKeys):
		return Duration
	case has(cooldownMinKeys):
		return CooldownMin
	case has(cooldownMaxKeys):
		return CooldownMax
	default:
		return Generic
	}
}

// PatchValue returns the value baked into the patch document for a field of
// category cat whose original value is v. ok is false when no patch should be
// emitted at all.
func PatchValue(cat Category, v float64) (res float64, ok bool) {
	if cat == DropQuantity {
		if v == 0 {
			return 0, false
		}
		return v * Factor, true
	}
	return math.Ceil(v * Factor), true
}
