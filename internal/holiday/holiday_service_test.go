package holiday_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/holiday"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeHolidayRepository struct {
	createFn      func(ctx context.Context, h *holiday.Holiday) error
	findInRangeFn func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error)
	recurringFn   func(ctx context.Context) ([]holiday.Holiday, error)

	rangeCalls int
}

func (f *fakeHolidayRepository) Create(ctx context.Context, h *holiday.Holiday) error {
	if f.createFn != nil {
		return f.createFn(ctx, h)
	}
	return nil
}

func (f *fakeHolidayRepository) FindInRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	f.rangeCalls++
	if f.findInRangeFn != nil {
		return f.findInRangeFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeHolidayRepository) FindRecurring(ctx context.Context) ([]holiday.Holiday, error) {
	if f.recurringFn != nil {
		return f.recurringFn(ctx)
	}
	return nil, nil
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedHoliday(day, name string) holiday.Holiday {
	return holiday.Holiday{
		ID:          uuid.New(),
		Date:        date(day),
		Name:        name,
		HolidayType: holiday.TypePublic,
	}
}

func TestHolidayService_NonWorkingDates(t *testing.T) {
	ctx := context.Background()

	t.Run("fixed holidays inside the range", func(t *testing.T) {
		repo := &fakeHolidayRepository{
			findInRangeFn: func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
				return []holiday.Holiday{
					fixedHoliday("2025-01-27", "Company Day"),
					fixedHoliday("2025-08-17", "Independence Day"),
				}, nil
			},
		}
		svc := holiday.NewService(repo, nil)

		dates, err := svc.NonWorkingDates(ctx, date("2025-01-24"), date("2025-01-31"))
		assert.NoError(t, err)
		assert.Len(t, dates, 1)
		assert.Equal(t, "2025-01-27", dates[0].Format("2006-01-02"))
	})

	t.Run("recurring holiday projected into the requested year", func(t *testing.T) {
		recurring := fixedHoliday("2020-12-25", "Christmas")
		recurring.IsRecurring = true

		repo := &fakeHolidayRepository{
			recurringFn: func(ctx context.Context) ([]holiday.Holiday, error) {
				return []holiday.Holiday{recurring}, nil
			},
		}
		svc := holiday.NewService(repo, nil)

		dates, err := svc.NonWorkingDates(ctx, date("2025-12-20"), date("2025-12-31"))
		assert.NoError(t, err)
		assert.Len(t, dates, 1)
		assert.Equal(t, "2025-12-25", dates[0].Format("2006-01-02"))
	})

	t.Run("fixed and recurring duplicates collapse", func(t *testing.T) {
		recurring := fixedHoliday("2020-12-25", "Christmas")
		recurring.IsRecurring = true

		repo := &fakeHolidayRepository{
			findInRangeFn: func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
				return []holiday.Holiday{fixedHoliday("2025-12-25", "Christmas 2025")}, nil
			},
			recurringFn: func(ctx context.Context) ([]holiday.Holiday, error) {
				return []holiday.Holiday{recurring}, nil
			},
		}
		svc := holiday.NewService(repo, nil)

		dates, err := svc.NonWorkingDates(ctx, date("2025-12-01"), date("2025-12-31"))
		assert.NoError(t, err)
		assert.Len(t, dates, 1)
	})

	t.Run("range spanning two years loads both calendars", func(t *testing.T) {
		repo := &fakeHolidayRepository{
			findInRangeFn: func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
				if start.Year() == 2025 {
					return []holiday.Holiday{fixedHoliday("2025-12-31", "Year End")}, nil
				}
				return []holiday.Holiday{fixedHoliday("2026-01-01", "New Year")}, nil
			},
		}
		svc := holiday.NewService(repo, nil)

		dates, err := svc.NonWorkingDates(ctx, date("2025-12-29"), date("2026-01-02"))
		assert.NoError(t, err)
		assert.Len(t, dates, 2)
		assert.Equal(t, 2, repo.rangeCalls)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		svc := holiday.NewService(&fakeHolidayRepository{}, nil)
		_, err := svc.NonWorkingDates(ctx, date("2025-06-10"), date("2025-06-01"))
		assert.ErrorIs(t, err, holiday.ErrInvalidDateRange)
	})
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to public type", func(t *testing.T) {
		var created *holiday.Holiday
		repo := &fakeHolidayRepository{
			createFn: func(ctx context.Context, h *holiday.Holiday) error {
				created = h
				return nil
			},
		}
		svc := holiday.NewService(repo, nil)

		resp, err := svc.Create(ctx, holiday.CreateHolidayRequest{
			Date: "2025-08-17",
			Name: "Independence Day",
		})
		assert.NoError(t, err)
		assert.Equal(t, holiday.TypePublic, created.HolidayType)
		assert.Equal(t, "2025-08-17", resp.Date)
	})

	t.Run("invalid date format", func(t *testing.T) {
		svc := holiday.NewService(&fakeHolidayRepository{}, nil)
		_, err := svc.Create(ctx, holiday.CreateHolidayRequest{
			Date: "17-08-2025",
			Name: "Independence Day",
		})
		assert.ErrorIs(t, err, holiday.ErrInvalidDateFormat)
	})
}

func TestHolidayService_List(t *testing.T) {
	ctx := context.Background()

	recurring := fixedHoliday("2020-12-25", "Christmas")
	recurring.IsRecurring = true

	repo := &fakeHolidayRepository{
		findInRangeFn: func(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
			return []holiday.Holiday{fixedHoliday("2025-08-17", "Independence Day")}, nil
		},
		recurringFn: func(ctx context.Context) ([]holiday.Holiday, error) {
			return []holiday.Holiday{recurring}, nil
		},
	}
	svc := holiday.NewService(repo, nil)

	resp, err := svc.List(ctx, "2025-01-01", "2025-12-31")
	assert.NoError(t, err)
	assert.Len(t, resp, 2)

	byName := map[string]holiday.HolidayResponse{}
	for _, r := range resp {
		byName[r.Name] = r
	}
	assert.Equal(t, "2025-08-17", byName["Independence Day"].Date)
	// recurring occurrence carries the projected year, not the stored one
	assert.Equal(t, "2025-12-25", byName["Christmas"].Date)
	assert.True(t, byName["Christmas"].IsRecurring)
}
