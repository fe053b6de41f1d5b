package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

var sizeRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(KB|MB|GB|TB)`)

// binaryUnits maps the units upstream addons print to their IEC spelling so
// that humanize interprets them as powers of 1024.
var binaryUnits = map[string]string{
	"KB": "KiB",
	"MB": "MiB",
	"GB": "GiB",
	"TB": "TiB",
}

// ExtractSizeInBytes finds the first size token in text and converts it to
// bytes. base is 1024 or 1000; any other value is treated as 1024. Returns 0
// when no token is found.
func ExtractSizeInBytes(text string, base int) int64 {
	m := sizeRegex.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	unit := strings.ToUpper(m[2])
	if base != 1000 {
		unit = binaryUnits[unit]
	}

	bytes, err := humanize.ParseBytes(m[1] + " " + unit)
	if err != nil || bytes > math.MaxInt64 {
		return 0
	}
	return int64(bytes)
}
