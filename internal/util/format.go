package util

import (
	"fmt"
	"strconv"
	"strings"
)

// Sizeify converts bytes to a human-readable string (B, KiB, MiB, GiB, TiB).
func Sizeify(size int64) string {
	if size >= int64(TiB) {
		return fmt.Sprintf("%.2f TiB", float64(size)/float64(TiB))
	} else if size >= int64(GiB) {
		return fmt.Sprintf("%.2f GiB", float64(size)/float64(GiB))
	} else if size >= int64(MiB) {
		return fmt.Sprintf("%.2f MiB", float64(size)/float64(MiB))
	} else if size >= int64(KiB) {
		return fmt.Sprintf("%.2f KiB", float64(size)/float64(KiB))
	} else {
		return fmt.Sprintf("%d B", size)
	}
}

var sizeUnits = []struct {
	suffix string
	mult   int64
}{
	{"TIB", TiB}, {"GIB", GiB}, {"MIB", MiB}, {"KIB", KiB},
	{"TB", TiB}, {"GB", GiB}, {"MB", MiB}, {"KB", KiB},
	{"T", TiB}, {"G", GiB}, {"M", MiB}, {"K", KiB},
	{"B", 1},
}

// ParseSize parses sizes like "256MiB", "1.5 GiB", "4096" or "64k".
// Units are binary regardless of spelling.
func ParseSize(s string) (int64, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("empty size")
	}

	mult := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(str, u.suffix) {
			str = strings.TrimSpace(strings.TrimSuffix(str, u.suffix))
			mult = u.mult
			break
		}
	}

	n, err := strconv.ParseFloat(str, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	size := n * float64(mult)
	if size > float64(1<<62) {
		return 0, fmt.Errorf("size %q too large", s)
	}
	return int64(size), nil
}
