package scale

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"server/behaviors/0/hoursToGrow", Duration},
		{"server/behaviors/0/hoursToGrowByType/*-piglet", Duration},
		{"server/behaviors/2/pregnancyDays", Duration},
		{"server/behaviors/2/multiplyCooldownDaysMin", CooldownMin},
		{"server/behaviors/2/multiplyCooldownDaysMinByType/female", CooldownMin},
		{"server/behaviors/2/multiplyCooldownDaysMax", CooldownMax},
		{"server/behaviors/4/drops/0/quantity/avg", DropQuantity},
		{"server/behaviors/4/dropsByType/*/0/quantityByType/a/var", DropQuantity},
		{"server/behaviors/1/portionsEatenForMultiply", Generic},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(strings.Split(tt.path, "/")); got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestPatchValue(t *testing.T) {
	tests := []struct {
		cat  Category
		in   float64
		want float64
		ok   bool
	}{
		{Duration, 480, 240, true},
		{Duration, 3, 2, true},
		{CooldownMin, 0, 0, true},
		{CooldownMin, 5, 3, true},
		{CooldownMax, 0, 0, true},
		{CooldownMax, 1, 1, true},
		{DropQuantity, 0, 0, false},
		{DropQuantity, 2, 1, true},
		{DropQuantity, 3, 1.5, true},
		{Generic, 7, 4, true},
	}
	for _, tt := range tests {
		got, ok := PatchValue(tt.cat, tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PatchValue(%s, %v) = %v, %v want %v, %v", tt.cat, tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormula(t *testing.T) {
	tests := []struct {
		name    string
		cat     Category
		v       float64
		formula string
		typ     NumType
	}{
		{"duration", Duration, 480, "max(1, round(KEY_CYCLE * 480))", Integer},
		{"cooldown min zero", CooldownMin, 0, "greater(KEY_CYCLE, 1.0, ceiling(KEY_CYCLE - 1), 0)", Integer},
		{"cooldown min", CooldownMin, 4, "round(KEY_CYCLE * 4)", Integer},
		{"cooldown max zero", CooldownMax, 0, "round(KEY_CYCLE * 0)", Integer},
		{"drop", DropQuantity, 2, "(REDUCE_DROPS) ? min(1.0, KEY_CYCLE) * 2 : 2", Float},
		{"drop fraction", DropQuantity, 0.25, "(REDUCE_DROPS) ? min(1.0, KEY_CYCLE) * 0.25 : 0.25", Float},
		{"generic", Generic, 12, "round(KEY_CYCLE * 12)", Integer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Formula(tt.cat, "KEY_CYCLE", tt.v)
			if e.Formula != tt.formula {
				t.Errorf("formula %q want %q", e.Formula, tt.formula)
			}
			if e.Type != tt.typ {
				t.Errorf("type %s want %s", e.Type, tt.typ)
			}
			if e.SettingKey != "KEY_CYCLE" || e.Category != tt.cat {
				t.Errorf("metadata %+v", e)
			}
		})
	}
}
