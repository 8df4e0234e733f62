package render

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/leengari/mini-datagrid/internal/util/types"
)

// HumanNumber builds a Render override that formats numeric cells with
// thousands separators. Non-numeric values fall back to the default
// string form.
func HumanNumber[R any]() func(interface{}, R) string {
	return func(value interface{}, _ R) string {
		f, ok := types.NormalizeToFloat(value)
		if !ok {
			return types.Stringify(value)
		}
		if f == math.Trunc(f) {
			return humanize.Comma(int64(f))
		}
		return humanize.CommafWithDigits(f, 2)
	}
}

// HumanTime builds a Render override that shows time cells relative to
// now, for example "3 days ago". RFC 3339 strings are parsed first,
// which is how times arrive in records loaded from JSON. Anything else
// falls back to the default string form.
func HumanTime[R any]() func(interface{}, R) string {
	return func(value interface{}, _ R) string {
		switch t := value.(type) {
		case time.Time:
			return humanize.Time(t)
		case string:
			if parsed, err := time.Parse(time.RFC3339, t); err == nil {
				return humanize.Time(parsed)
			}
		}
		return types.Stringify(value)
	}
}
