package currency

import (
	"fmt"
	"math"
)

// FormatINR renders a rupee amount rounded to whole rupees with Indian digit
// grouping, e.g. "INR 1,23,456".
func FormatINR(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := groupIndian(intStr, ',')

	result := "INR " + formatted
	if negative {
		result = "-" + result
	}

	return result
}

// groupIndian places the first separator after three digits from the right
// and every two digits after that.
func groupIndian(s string, sep byte) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	head := s[:n-3]
	tail := s[n-3:]

	result := make([]byte, 0, n+n/2)
	lead := len(head) % 2
	if lead > 0 {
		result = append(result, head[:lead]...)
	}
	for i := lead; i < len(head); i += 2 {
		if len(result) > 0 {
			result = append(result, sep)
		}
		result = append(result, head[i:i+2]...)
	}
	result = append(result, sep)
	result = append(result, tail...)

	return string(result)
}
