package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Walk   bool
	Match  bool
	Patch  bool
	Compat bool
	Read   bool
	Write  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Walk = boolEnv("FB_DEBUG_WALK")
	d.Match = boolEnv("FB_DEBUG_MATCH")
	d.Patch = boolEnv("FB_DEBUG_PATCH")
	d.Compat = boolEnv("FB_DEBUG_COMPAT")
	d.Read = boolEnv("FB_DEBUG_READ")
	d.Write = boolEnv("FB_DEBUG_WRITE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Walk() bool {
	return d.Walk
}
func Match() bool {
	return d.Match
}
func Patch() bool {
	return d.Patch
}
func Compat() bool {
	return d.Compat
}
func Read() bool {
	return d.Read
}
func Write() bool {
	return d.Write
}

// Logf writes to stderr. Maps, slices and json.Number arguments are rendered
// as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
