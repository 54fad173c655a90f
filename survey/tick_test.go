// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickStepBoundaries(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{30, 2},
		{31, 5},
		{100, 5},
		{101, 10},
		{5000, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TickStep(tt.total), "TickStep(%d)", tt.total)
	}
}

func TestTickStepNonDecreasing(t *testing.T) {
	prev := TickStep(0)
	for total := 1; total <= 1000; total++ {
		step := TickStep(total)
		if step < prev {
			t.Fatalf("TickStep(%d) = %d, smaller than TickStep(%d) = %d", total, step, total-1, prev)
		}
		prev = step
	}
}
