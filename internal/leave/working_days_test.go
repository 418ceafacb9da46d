package leave_test

import (
	"testing"
	"time"

	"go-leave/internal/leave"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCountWorkingDays(t *testing.T) {
	t.Run("plain working week", func(t *testing.T) {
		// Mon 2025-06-02 through Fri 2025-06-06
		got := leave.CountWorkingDays(date("2025-06-02"), date("2025-06-06"), leave.NewDateSet())
		assert.Equal(t, 5, got)
	})

	t.Run("weekend excluded", func(t *testing.T) {
		// Fri 2025-01-24 through Mon 2025-01-27 spans a full weekend
		got := leave.CountWorkingDays(date("2025-01-24"), date("2025-01-27"), leave.NewDateSet())
		assert.Equal(t, 2, got)
	})

	t.Run("holiday on a weekday excluded", func(t *testing.T) {
		holidays := leave.NewDateSet(date("2025-01-27"))
		got := leave.CountWorkingDays(date("2025-01-24"), date("2025-01-27"), holidays)
		assert.Equal(t, 1, got)
	})

	t.Run("holiday on a weekend not excluded twice", func(t *testing.T) {
		// Sunday holiday must not reduce the count below the weekend-only result
		holidays := leave.NewDateSet(date("2025-01-26"))
		got := leave.CountWorkingDays(date("2025-01-24"), date("2025-01-27"), holidays)
		assert.Equal(t, 2, got)
	})

	t.Run("duplicate holiday rows collapse", func(t *testing.T) {
		holidays := leave.NewDateSet(date("2025-01-27"), date("2025-01-27"))
		got := leave.CountWorkingDays(date("2025-01-24"), date("2025-01-27"), holidays)
		assert.Equal(t, 1, got)
	})

	t.Run("single weekday", func(t *testing.T) {
		got := leave.CountWorkingDays(date("2025-06-04"), date("2025-06-04"), leave.NewDateSet())
		assert.Equal(t, 1, got)
	})

	t.Run("weekend only range yields zero", func(t *testing.T) {
		got := leave.CountWorkingDays(date("2025-06-07"), date("2025-06-08"), leave.NewDateSet())
		assert.Equal(t, 0, got)
	})

	t.Run("start after end yields zero", func(t *testing.T) {
		got := leave.CountWorkingDays(date("2025-06-06"), date("2025-06-02"), leave.NewDateSet())
		assert.Equal(t, 0, got)
	})

	t.Run("time of day ignored", func(t *testing.T) {
		start := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
		end := time.Date(2025, 6, 4, 0, 15, 0, 0, time.UTC)
		got := leave.CountWorkingDays(start, end, leave.NewDateSet())
		assert.Equal(t, 3, got)
	})
}

func TestDateSet(t *testing.T) {
	s := leave.NewDateSet(date("2025-12-25"))

	assert.True(t, s.Contains(date("2025-12-25")))
	assert.True(t, s.Contains(time.Date(2025, 12, 25, 18, 0, 0, 0, time.UTC)))
	assert.False(t, s.Contains(date("2025-12-26")))

	s.Add(date("2025-12-26"))
	assert.True(t, s.Contains(date("2025-12-26")))
}
