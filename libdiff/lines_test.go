package libdiff

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	from := "[\n  1,\n  2,\n  3\n]\n"
	to := "[\n  1,\n  4,\n  3\n]\n"
	got := Lines(from, to)
	want := []Line{
		{Equal, "["},
		{Equal, "  1,"},
		{Delete, "  2,"},
		{Insert, "  4,"},
		{Equal, "  3"},
		{Equal, "]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if !Changed(got) {
		t.Error("expected change")
	}
	if Changed(Lines(from, from)) {
		t.Error("expected no change")
	}
}

func TestWrite(t *testing.T) {
	lines := []Line{
		{Equal, "a"},
		{Equal, "b"},
		{Equal, "c"},
		{Delete, "d"},
		{Insert, "e"},
		{Equal, "f"},
	}
	buf := bytes.NewBuffer(nil)
	if err := Write(buf, lines, 1, false); err != nil {
		t.Fatal(err)
	}
	want := "@@\n c\n-d\n+e\n f\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}
