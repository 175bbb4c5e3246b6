package inference

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// ParseSalary scans a raw salary string for numeric groups after stripping
// thousands separators. Two or more groups yield (min, max); one group
// yields min = max; none, or an unparseable value, yields (nil, nil).
// No currency or unit disambiguation is attempted.
func ParseSalary(raw string) (min, max *float64) {
	if raw == "" {
		return nil, nil
	}

	groups := digitRun.FindAllString(strings.ReplaceAll(raw, ",", ""), -1)
	switch {
	case len(groups) >= 2:
		lo, err1 := strconv.ParseFloat(groups[0], 64)
		hi, err2 := strconv.ParseFloat(groups[1], 64)
		if err1 != nil || err2 != nil {
			return nil, nil
		}
		return &lo, &hi
	case len(groups) == 1:
		v, err := strconv.ParseFloat(groups[0], 64)
		if err != nil {
			return nil, nil
		}
		hi := v
		return &v, &hi
	default:
		return nil, nil
	}
}
