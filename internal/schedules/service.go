package schedules

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studyseat/internal/shared/apperrors"
	"studyseat/internal/timeslot"
)

type Service interface {
	// HasConflict reports whether the candidate interval overlaps any existing
	// entry for the same seat and date. Pure read-then-decide; the exclusion
	// constraint on the schedules table is the authoritative guard under
	// concurrent writes.
	HasConflict(ctx context.Context, seatID uuid.UUID, date string, startHour, endHour float64) (bool, error)

	// SeatCalendar returns occupied intervals per date for one seat over a
	// range of days starting at fromDate.
	SeatCalendar(ctx context.Context, seatID uuid.UUID, fromDate string, days int) (map[string][]Interval, error)

	// SeatsAvailability returns occupied intervals per seat for one date,
	// used to render a multi-seat grid in one round trip.
	SeatsAvailability(ctx context.Context, seatIDs []uuid.UUID, date string) (map[string][]Interval, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) HasConflict(ctx context.Context, seatID uuid.UUID, date string, startHour, endHour float64) (bool, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return false, apperrors.Validation("invalid interval [%.2f, %.2f)", startHour, endHour)
	}

	entries, err := s.repo.ListBySeatAndDate(ctx, seatID, date)
	if err != nil {
		return false, apperrors.Persistence("listing schedule entries", err)
	}

	for _, entry := range entries {
		if timeslot.Overlaps(entry.StartHour, entry.EndHour, startHour, endHour) {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) SeatCalendar(ctx context.Context, seatID uuid.UUID, fromDate string, days int) (map[string][]Interval, error) {
	if days < 1 {
		days = 1
	}

	start, err := time.Parse(timeslot.DateLayout, fromDate)
	if err != nil {
		return nil, apperrors.Validation("invalid date %q: expected YYYY-MM-DD", fromDate)
	}

	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(timeslot.DateLayout))
	}

	entries, err := s.repo.ListBySeatAndDates(ctx, seatID, dates)
	if err != nil {
		return nil, apperrors.Persistence("listing seat calendar", err)
	}

	// Every requested date appears in the result, empty days included, so
	// clients can render the full range without filling gaps themselves.
	calendar := make(map[string][]Interval, days)
	for _, date := range dates {
		calendar[date] = []Interval{}
	}
	for _, entry := range entries {
		calendar[entry.Date] = append(calendar[entry.Date], Interval{Start: entry.StartHour, End: entry.EndHour})
	}
	return calendar, nil
}

func (s *service) SeatsAvailability(ctx context.Context, seatIDs []uuid.UUID, date string) (map[string][]Interval, error) {
	if len(seatIDs) == 0 {
		return nil, apperrors.Validation("seat_ids is required")
	}
	if _, err := time.Parse(timeslot.DateLayout, date); err != nil {
		return nil, apperrors.Validation("invalid date %q: expected YYYY-MM-DD", date)
	}

	entries, err := s.repo.ListBySeatsAndDate(ctx, seatIDs, date)
	if err != nil {
		return nil, apperrors.Persistence("listing seat availability", err)
	}

	availability := make(map[string][]Interval, len(seatIDs))
	for _, id := range seatIDs {
		availability[id.String()] = []Interval{}
	}
	for _, entry := range entries {
		key := entry.SeatID.String()
		availability[key] = append(availability[key], Interval{Start: entry.StartHour, End: entry.EndHour})
	}
	return availability, nil
}
