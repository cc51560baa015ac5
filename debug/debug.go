package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Dump    bool
	Resolve bool
	Walk    bool
	Convert bool
	Eval    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Dump = boolEnv("PSB_DEBUG_DUMP")
	d.Resolve = boolEnv("PSB_DEBUG_RESOLVE")
	d.Walk = boolEnv("PSB_DEBUG_WALK")
	d.Convert = boolEnv("PSB_DEBUG_CONVERT")
	d.Eval = boolEnv("PSB_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Dump reports whether archives should be dumped to stderr as they are
// loaded.
func Dump() bool {
	return d.Dump
}
func Resolve() bool {
	return d.Resolve
}
func Walk() bool {
	return d.Walk
}
func Convert() bool {
	return d.Convert
}
func Eval() bool {
	return d.Eval
}
