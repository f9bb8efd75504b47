package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fastbreeding/breedpatch"
	"github.com/fastbreeding/breedpatch/catalog"
	"github.com/fastbreeding/breedpatch/dirbuild"
	"github.com/fastbreeding/breedpatch/encode"
	"github.com/fastbreeding/breedpatch/libdiff"

	"github.com/fatih/color"
)

func newColor(on bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func writeResult(w io.Writer, res *breedpatch.Result, colors bool) error {
	head := newColor(colors, color.Bold)
	if _, err := head.Fprintf(w, "# patches/%s\n", res.Output); err != nil {
		return err
	}
	opts := []encode.EncodeOption{encode.SortKeys(encode.CompareKeys)}
	if colors {
		opts = append(opts, encode.EncodeColors(encode.NewColors()))
	}
	if err := encode.Encode(breedpatch.PatchesNode(res.Patches), w, opts...); err != nil {
		return fmt.Errorf("error encoding patches of %s: %w", res.Output, err)
	}
	for _, ov := range res.Overrides {
		if _, err := head.Fprintf(w, "# compatibility/%s/%s\n", res.ModID, ov.OutputPath); err != nil {
			return err
		}
		if err := encode.Encode(ov.Doc, w, opts[1:]...); err != nil {
			return fmt.Errorf("error encoding %s: %w", ov.Source, err)
		}
	}
	return nil
}

// writeCandidates reports add operations that look like breeding for a
// creature nothing registers.
func writeCandidates(w io.Writer, cs []*breedpatch.Candidate, colors bool) error {
	warn := newColor(colors, color.FgYellow, color.Bold)
	target := newColor(colors, color.FgCyan)
	for _, c := range cs {
		_, err := fmt.Fprintf(w, "%s %s: %s op %d adds %s to %s\n",
			warn.Sprint("unregistered breeding:"), c.ModID, c.PatchFile, c.Index,
			strings.Join(c.Paths, ", "), target.Sprint(c.Target))
		if err != nil {
			return err
		}
	}
	return nil
}

func writeChanges(w io.Writer, changes []dirbuild.Change, quiet, colors bool) error {
	head := newColor(colors, color.Bold)
	for _, c := range changes {
		state := "changed"
		switch {
		case c.Old == nil:
			state = "new"
		case c.New == nil:
			state = "removed"
		}
		if _, err := head.Fprintf(w, "%s %s\n", state, c.Path); err != nil {
			return err
		}
		if quiet {
			continue
		}
		if err := libdiff.Write(w, libdiff.Lines(string(c.Old), string(c.New)), 3, colors); err != nil {
			return err
		}
	}
	return nil
}

func writeVersionTable(w io.Writer, changes []catalog.Change) error {
	if len(changes) == 0 {
		_, err := io.WriteString(w, "No mod versions changed.\n")
		return err
	}
	var b strings.Builder
	b.WriteString("| Mod | Old | New |\n")
	b.WriteString("|-----|-----|-----|\n")
	for _, c := range changes {
		old := c.Old
		if old == "" {
			old = "-"
		}
		next := c.New
		if next == "" {
			next = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c.ID, old, next)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
