package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Rotate bool
	Record bool
	Parse  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Rotate = boolEnv("LOGV_DEBUG_ROTATE")
	d.Record = boolEnv("LOGV_DEBUG_RECORD")
	d.Parse = boolEnv("LOGV_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Rotate reports whether format auto-detection rotations are logged.
func Rotate() bool {
	return d.Rotate
}

// Record reports whether record construction decisions are logged.
func Record() bool {
	return d.Record
}
func Parse() bool {
	return d.Parse
}
