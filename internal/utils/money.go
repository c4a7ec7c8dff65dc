package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders a whole-unit integer amount with a currency code and
// thousand separators, e.g. "INR 12,500". Formatting only; arithmetic stays on
// int64 amounts.
func FormatAmount(currency string, amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cur := strings.TrimSpace(currency)
	if cur == "" {
		return sign + formatThousand(amount)
	}
	return fmt.Sprintf("%s%s %s", sign, cur, formatThousand(amount))
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
