package leave_test

import (
	"testing"

	"go-leave/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestRangesOverlap(t *testing.T) {
	t.Run("disjoint ranges", func(t *testing.T) {
		assert.False(t, leave.RangesOverlap(
			date("2025-03-01"), date("2025-03-03"),
			date("2025-03-04"), date("2025-03-06"),
		))
	})

	t.Run("shared boundary day conflicts", func(t *testing.T) {
		assert.True(t, leave.RangesOverlap(
			date("2025-03-01"), date("2025-03-05"),
			date("2025-03-05"), date("2025-03-08"),
		))
	})

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, leave.RangesOverlap(
			date("2025-03-01"), date("2025-03-04"),
			date("2025-03-03"), date("2025-03-06"),
		))
	})

	t.Run("containment", func(t *testing.T) {
		assert.True(t, leave.RangesOverlap(
			date("2025-03-01"), date("2025-03-10"),
			date("2025-03-04"), date("2025-03-05"),
		))
	})

	t.Run("symmetric", func(t *testing.T) {
		a1, a2 := date("2025-03-01"), date("2025-03-04")
		b1, b2 := date("2025-03-03"), date("2025-03-06")
		assert.Equal(t,
			leave.RangesOverlap(a1, a2, b1, b2),
			leave.RangesOverlap(b1, b2, a1, a2),
		)
	})

	t.Run("single day ranges", func(t *testing.T) {
		assert.True(t, leave.RangesOverlap(
			date("2025-03-05"), date("2025-03-05"),
			date("2025-03-05"), date("2025-03-05"),
		))
		assert.False(t, leave.RangesOverlap(
			date("2025-03-05"), date("2025-03-05"),
			date("2025-03-06"), date("2025-03-06"),
		))
	})
}
