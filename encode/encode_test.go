package encode

import (
	"bytes"
	"testing"

	"github.com/fastbreeding/breedpatch/ir"
	"github.com/fastbreeding/breedpatch/parse"
	"github.com/google/go-cmp/cmp"
)

func TestCompareKeys(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2/value", "10/value", -1},
		{"10/value", "2/value", 1},
		{"2/value", "2/value/x", -1},
		{"10", "9", 1},
		{"b", "a", 1},
		{"10", "a", -1},
		{"file", "file", 0},
	}
	for _, tt := range tests {
		if got := CompareKeys(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareKeys(%q, %q) = %d want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEncodeSorted(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "10/value", Val: ir.FromString("round(A * 2)")},
		{Key: "2/value", Val: ir.FromString("max(1, round(A * 480))")},
		{Key: "empty", Val: ir.FromKeyVals(nil)},
		{Key: "list", Val: ir.FromSlice([]*ir.Node{ir.FromFloat(0.5), ir.FromInt(3), ir.FromBool(true), ir.Null()})},
	})
	want := `{
  "2/value": "max(1, round(A * 480))",
  "10/value": "round(A * 2)",
  "empty": {},
  "list": [
    0.5,
    3,
    true,
    null
  ]
}
`
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, SortKeys(CompareKeys)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeKeepsOrder(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "op", Val: ir.FromString("add")},
		{Key: "file", Val: ir.FromString("game:entities/land/pig.json")},
	})
	got := MustString(node, EncodeWire(true))
	if got != `{"op":"add","file":"game:entities/land/pig.json"}` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeStrings(t *testing.T) {
	got := MustString(ir.FromString("a <b> & \"c\"\n"))
	if got != `"a <b> & \"c\"\n"` {
		t.Errorf("got %s", got)
	}
}

func TestFixedPoint(t *testing.T) {
	inputs := []string{
		`[{"file": "game:entities/land/pig.json", "op": "replace", "path": "/server/behaviors/3/hoursToGrow", "value": 240, "dependsOn": [{"modId": "x"}]}]`,
		`{"patches": {"integer": {"f": {"10/value": "a", "9/value": "b"}}, "float": {}}, "settings": {"A": 1.25}}`,
	}
	for _, in := range inputs {
		node, err := parse.Parse([]byte(in))
		if err != nil {
			t.Fatal(err)
		}
		first := bytes.NewBuffer(nil)
		if err := Encode(node, first, SortKeys(CompareKeys)); err != nil {
			t.Fatal(err)
		}
		reparsed, err := parse.Parse(first.Bytes())
		if err != nil {
			t.Fatalf("reparse: %v\n%s", err, first)
		}
		second := bytes.NewBuffer(nil)
		if err := Encode(reparsed, second, SortKeys(CompareKeys)); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first.String(), second.String()); diff != "" {
			t.Errorf("not a fixed point (-first +second):\n%s", diff)
		}
	}
}

func TestEncodeColors(t *testing.T) {
	got := MustString(ir.FromInt(5), EncodeColors(&Colors{Default: colorDefault}))
	if got != "5" {
		t.Errorf("got %q", got)
	}
}
