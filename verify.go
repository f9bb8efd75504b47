package breedpatch

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fastbreeding/breedpatch/encode"
	"github.com/fastbreeding/breedpatch/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrVerify = errors.New("patch does not apply")

// Verify applies ps to the documents they target, keyed by domain-qualified
// file, and fails unless every patch replaces an existing number.
func Verify(ps []*Patch, docs map[string]*ir.Node) error {
	byFile := map[string][]*Patch{}
	var files []string
	for _, p := range ps {
		if p.Op != "replace" {
			return fmt.Errorf("%w: %s %s: unexpected op %q", ErrVerify, p.File, p.Path, p.Op)
		}
		if _, ok := byFile[p.File]; !ok {
			files = append(files, p.File)
		}
		byFile[p.File] = append(byFile[p.File], p)
	}
	for _, file := range files {
		doc := docs[file]
		if doc == nil {
			return fmt.Errorf("%w: no document for %s", ErrVerify, file)
		}
		if err := verifyFile(doc, byFile[file]); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrVerify, file, err)
		}
	}
	return nil
}

func verifyFile(doc *ir.Node, ps []*Patch) error {
	ops := make([]*ir.Node, len(ps))
	for i, p := range ps {
		path, err := ir.ParsePath(p.Path)
		if err != nil {
			return err
		}
		target, err := doc.GetPath(path)
		if err != nil {
			return err
		}
		if target.Type != ir.NumberType {
			return fmt.Errorf("%s is %s, not a number", p.Path, target.Type)
		}
		ops[i] = ir.FromKeyVals([]ir.KeyVal{
			{Key: "op", Val: ir.FromString(p.Op)},
			{Key: "path", Val: ir.FromString(p.Path)},
			{Key: "value", Val: ir.FromNumber(p.Value)},
		})
	}
	patchJSON := bytes.NewBuffer(nil)
	if err := encode.Encode(ir.FromSlice(ops), patchJSON, encode.EncodeWire(true)); err != nil {
		return err
	}
	jp, err := jsonpatch.DecodePatch(patchJSON.Bytes())
	if err != nil {
		return err
	}
	docJSON := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, docJSON, encode.EncodeWire(true)); err != nil {
		return err
	}
	_, err = jp.Apply(docJSON.Bytes())
	return err
}
