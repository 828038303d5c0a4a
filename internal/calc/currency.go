package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency formats large monetary values into a readable string:
// billions and millions with two decimals and a B/M suffix, smaller values
// as a grouped-thousands integer. Nil and non-numeric values render "N/A".
// Numeric strings are coerced so values passed through JSON untyped still
// format correctly.
func FormatCurrency(value any) string {
	var v float64

	switch t := value.(type) {
	case nil:
		return "N/A"
	case float64:
		v = t
	case float32:
		v = float64(t)
	case int:
		v = float64(t)
	case int64:
		v = float64(t)
	case *float64:
		if t == nil {
			return "N/A"
		}
		v = *t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return "N/A"
		}
		v = parsed
	default:
		return "N/A"
	}

	switch {
	case math.Abs(v) >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return "$" + groupThousands(math.Round(v))
	}
}

// groupThousands renders an integral value with comma separators,
// sign ahead of the digits ("$-1,234" matches the B/M branches).
func groupThousands(v float64) string {
	neg := v < 0
	digits := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
