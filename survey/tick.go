// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

// TickStep picks the Y-axis step for a results chart from the total number
// of responses shown.
func TickStep(total int) int {
	switch {
	case total <= 10:
		return 1
	case total <= 30:
		return 2
	case total <= 100:
		return 5
	default:
		return 10
	}
}
