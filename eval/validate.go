package eval

import (
	"fmt"
	"iter"
	"slices"

	"github.com/fastbreeding/breedpatch/configlib"
)

// UnknownSettingError is a formula referring to a setting that is not
// declared.
type UnknownSettingError struct {
	Setting string
	Entry   configlib.Entry
}

func (e *UnknownSettingError) Error() string {
	return fmt.Sprintf("%s %s[%s]: unknown setting %s in %q",
		e.Entry.Type, e.Entry.FileKey, e.Entry.Key, e.Setting, e.Formula())
}

func (e *UnknownSettingError) Formula() string {
	return e.Entry.Formula
}

// Validate checks that every formula of entries parses and refers only to
// declared settings. A formula that does not parse is returned as an error;
// unknown settings are collected.
func Validate(entries iter.Seq[configlib.Entry], settings []string) ([]*UnknownSettingError, error) {
	known := make(map[string]bool, len(settings))
	for _, s := range settings {
		known[s] = true
	}
	var res []*UnknownSettingError
	for e := range entries {
		idents, err := Identifiers(e.Formula)
		if err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", e.FileKey, e.Key, err)
		}
		for _, id := range idents {
			if !known[id] {
				res = append(res, &UnknownSettingError{Setting: id, Entry: e})
			}
		}
	}
	slices.SortStableFunc(res, func(a, b *UnknownSettingError) int {
		switch {
		case a.Setting < b.Setting:
			return -1
		case a.Setting > b.Setting:
			return 1
		}
		return 0
	})
	return res, nil
}
