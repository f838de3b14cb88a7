package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatReal renders an amount as "R$ 1.234,56".
func FormatReal(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	return fmt.Sprintf("%sR$ %s,%02d", sign, formatThousand(cents/100), cents%100)
}

// FormatPercent renders a margin as "70,0%".
func FormatPercent(p float64) string {
	return strings.Replace(fmt.Sprintf("%.1f%%", p), ".", ",", 1)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
