// Package libdiff compares generated files line by line.
package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Lines diffs from and to by whole lines.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, ln := range strings.Split(text, "\n") {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

// Changed reports whether lines holds any insertion or deletion.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

// Write prints lines with at most context unchanged lines around each change.
// Skipped runs are marked with "@@". With colors, insertions are green and
// deletions red.
func Write(w io.Writer, lines []Line, context int, colors bool) error {
	keep := make([]bool, len(lines))
	for i, ln := range lines {
		if ln.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	paint := func(op Op, s string) string {
		if !colors {
			return s
		}
		switch op {
		case Insert:
			return color.GreenString("%s", s)
		case Delete:
			return color.RedString("%s", s)
		}
		return s
	}
	skipped := false
	for i, ln := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			if _, err := fmt.Fprintln(w, paint(Equal, "@@")); err != nil {
				return err
			}
			skipped = false
		}
		if _, err := fmt.Fprintln(w, paint(ln.Op, ln.Op.Prefix()+ln.Text)); err != nil {
			return err
		}
	}
	return nil
}
