package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 15, hour, min, 0, 0, time.UTC)
}

func TestRentalHours(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int32
	}{
		{"one minute bills one hour", at(10, 0), at(10, 1), 1},
		{"45 minutes rounds up", at(10, 0), at(10, 45), 1},
		{"exactly one hour", at(10, 0), at(11, 0), 1},
		{"one hour one minute", at(10, 0), at(11, 1), 2},
		{"exactly two hours", at(10, 0), at(12, 0), 2},
		{"full day", at(0, 0), time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RentalHours(tt.start, tt.end))
		})
	}
}

func TestCost(t *testing.T) {
	t.Run("45 minutes at rate 50 costs 50", func(t *testing.T) {
		assert.Equal(t, int32(50), Cost(50, at(10, 0), at(10, 45)))
	})

	t.Run("two hours at rate 50 costs 100", func(t *testing.T) {
		assert.Equal(t, int32(100), Cost(50, at(10, 0), at(12, 0)))
	})

	t.Run("rate in cents rounds the interval up", func(t *testing.T) {
		assert.Equal(t, int32(15000), Cost(5000, at(9, 0), at(11, 30)))
	})
}
