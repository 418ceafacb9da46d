package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-leave/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must be before or equal to",
		http.StatusBadRequest,
	)
)

const calendarCacheTTL = 12 * time.Hour

func calendarCacheKey(year int) string {
	return fmt.Sprintf("holidays:calendar:%d", year)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, from, to string) ([]HolidayResponse, error)
	// NonWorkingDates returns every holiday date inside the inclusive range,
	// recurring holidays expanded per year, normalized to day granularity
	// and deduplicated.
	NonWorkingDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	holidayType := req.HolidayType
	if holidayType == "" {
		holidayType = TypePublic
	}

	h := &Holiday{
		ID:          uuid.New(),
		Date:        date,
		Name:        req.Name,
		HolidayType: holidayType,
		IsRecurring: req.IsRecurring,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.invalidateCalendar(ctx, date.Year())

	s.logger.Info("holiday created",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
		zap.Bool("recurring", h.IsRecurring),
	)
	return mapToResponse(*h), nil
}

func (s *service) List(ctx context.Context, from, to string) ([]HolidayResponse, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	start = normalize(start)
	end = normalize(end)

	fixed, err := s.repo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	recurring, err := s.repo.FindRecurring(ctx)
	if err != nil {
		return nil, err
	}

	var resp []HolidayResponse
	for _, h := range fixed {
		resp = append(resp, mapToResponse(h))
	}
	// Project recurring holidays onto each year the range touches.
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range recurring {
			occurrence := time.Date(year, h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC)
			if occurrence.Before(start) || occurrence.After(end) {
				continue
			}
			r := mapToResponse(h)
			r.Date = occurrence.Format("2006-01-02")
			resp = append(resp, r)
		}
	}
	return resp, nil
}

func (s *service) NonWorkingDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	start = normalize(start)
	end = normalize(end)
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	seen := make(map[string]struct{})
	var dates []time.Time

	for year := start.Year(); year <= end.Year(); year++ {
		yearDates, err := s.calendarForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, d := range yearDates {
			if d.Before(start) || d.After(end) {
				continue
			}
			key := d.Format("2006-01-02")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			dates = append(dates, d)
		}
	}

	return dates, nil
}

// calendarForYear resolves the full holiday calendar for one year, reading
// through a redis cache. Concurrent misses for the same year collapse into a
// single repository load.
func (s *service) calendarForYear(ctx context.Context, year int) ([]time.Time, error) {
	key := calendarCacheKey(year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var raw []string
			if err := json.Unmarshal([]byte(cached), &raw); err == nil {
				return parseDates(raw)
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.loadCalendarYear(ctx, year)
	})
	if err != nil {
		return nil, err
	}
	dates := v.([]time.Time)

	if s.rdb != nil {
		raw := make([]string, len(dates))
		for i, d := range dates {
			raw[i] = d.Format("2006-01-02")
		}
		if payload, err := json.Marshal(raw); err == nil {
			if err := s.rdb.Set(ctx, key, payload, calendarCacheTTL).Err(); err != nil {
				s.logger.Warn("holiday calendar cache write failed", zap.Int("year", year), zap.Error(err))
			}
		}
	}

	return dates, nil
}

func (s *service) loadCalendarYear(ctx context.Context, year int) ([]time.Time, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	fixed, err := s.repo.FindInRange(ctx, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	recurring, err := s.repo.FindRecurring(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var dates []time.Time

	add := func(d time.Time) {
		d = normalize(d)
		key := d.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		dates = append(dates, d)
	}

	for _, h := range fixed {
		add(h.Date)
	}
	for _, h := range recurring {
		add(time.Date(year, h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC))
	}

	return dates, nil
}

func (s *service) invalidateCalendar(ctx context.Context, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, calendarCacheKey(year)).Err(); err != nil {
		s.logger.Warn("holiday calendar cache invalidate failed", zap.Int("year", year), zap.Error(err))
	}
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for _, v := range raw {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Date:        h.Date.Format("2006-01-02"),
		Name:        h.Name,
		HolidayType: h.HolidayType,
		IsRecurring: h.IsRecurring,
	}
}
