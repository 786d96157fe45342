package core

import "strconv"

// Ordinal formats n as an English ordinal: 1st, 2nd, 3rd, 4th, 11th, 21st, 100th.
func Ordinal(n int) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	suffix := "th"
	if teen := abs % 100; teen < 11 || teen > 13 {
		switch abs % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
