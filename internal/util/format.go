package util //nolint:revive // package name util hosts shared formatting helpers used by templates and the CLI

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// GroupThousands formats x with comma separators, e.g. -1234567 -> "-1,234,567".
func GroupThousands(x int64) string {
	neg := x < 0
	var u uint64
	if neg {
		u = uint64(-x)
	} else {
		u = uint64(x)
	}
	s := strconv.FormatUint(u, 10)
	if len(s) > 3 {
		var b strings.Builder
		b.Grow(len(s) + (len(s)-1)/3)
		prefix := len(s) % 3
		if prefix == 0 {
			prefix = 3
		}
		b.WriteString(s[:prefix])
		for i := prefix; i < len(s); i += 3 {
			b.WriteByte(',')
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatMoney renders an amount in dollars with cents and thousands separators,
// e.g. 1234.5 -> "$1,234.50".
func FormatMoney(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	out := "$" + GroupThousands(cents/100) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent renders a percentage with one decimal, e.g. 12.345 -> "12.3%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// FormatDuration renders a sync run duration compactly: "850ms", "42s", "3m 5s".
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	case d < time.Minute:
		return strconv.Itoa(int(d.Seconds())) + "s"
	default:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
