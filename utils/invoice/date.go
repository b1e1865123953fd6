package invoice

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical output format for dates.
const DateLayout = "2006-01-02"

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func (e *Extractor) dateStrategies() []Strategy[string] {
	out := make([]Strategy[string], 0, len(e.lib.dates))
	for _, dp := range e.lib.dates {
		out = append(out, Strategy[string]{
			Name: dp.name,
			Run: func(text string) (string, bool) {
				for _, m := range dp.re.FindAllStringSubmatch(text, -1) {
					if d, ok := buildDate(dp.shape, m[1], m[2], m[3]); ok {
						return d, true
					}
				}
				return "", false
			},
		})
	}
	return out
}

// ExtractDate returns the first valid date found, trying patterns in
// priority order and matches in document order. The result is YYYY-MM-DD
// or empty.
func (e *Extractor) ExtractDate(text string) string {
	d, _, _ := firstSuccess(text, e.dateStrategies())
	return d
}

func buildDate(shape DateShape, a, b, c string) (string, bool) {
	var year, day int
	var month time.Month
	var err error

	switch shape {
	case ShapeTextMonth:
		key := strings.ToLower(a)
		if len(key) < 3 {
			return "", false
		}
		m, ok := monthIndex[key[:3]]
		if !ok {
			return "", false
		}
		month = m
		if day, err = strconv.Atoi(b); err != nil {
			return "", false
		}
		if year, err = strconv.Atoi(c); err != nil {
			return "", false
		}
	case ShapeMDY, ShapeTimestamp, ShapeMDYShort:
		m, err1 := strconv.Atoi(a)
		d, err2 := strconv.Atoi(b)
		y, err3 := strconv.Atoi(c)
		if err1 != nil || err2 != nil || err3 != nil {
			return "", false
		}
		if shape == ShapeMDYShort {
			if y < 50 {
				y += 2000
			} else {
				y += 1900
			}
		}
		month, day, year = time.Month(m), d, y
	case ShapeYMD:
		y, err1 := strconv.Atoi(a)
		m, err2 := strconv.Atoi(b)
		d, err3 := strconv.Atoi(c)
		if err1 != nil || err2 != nil || err3 != nil {
			return "", false
		}
		year, month, day = y, time.Month(m), d
	default:
		return "", false
	}

	return validDate(year, month, day)
}

// validDate rejects dates time.Date would silently roll over, like Feb 30.
func validDate(year int, month time.Month, day int) (string, bool) {
	if year < 1 || year > 9999 || month < time.January || month > time.December || day < 1 {
		return "", false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return "", false
	}
	return t.Format(DateLayout), true
}
