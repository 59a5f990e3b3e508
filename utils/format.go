package utils

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders a price with thousands separators, dropping the
// fraction when it is whole (1500 -> "1,500", 1500.5 -> "1,500.50").
// Rounding happens in integer cents so a fraction that rounds up carries
// into the whole part (1999.999 -> "2,000").
func FormatPrice(price float64) string {
	cents := int64(math.Round(price * 100))
	whole := cents / 100
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}

	if frac == 0 {
		return humanize.Comma(whole)
	}
	return fmt.Sprintf("%s.%02d", humanize.Comma(whole), frac)
}
