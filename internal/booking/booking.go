// Package booking is the appointment ledger: create, delete, and
// partition bookings into upcoming and past relative to a reference day.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"healthease/internal/dates"
	"healthease/internal/idgen"
	"healthease/internal/model"
	"healthease/internal/storage"
	"healthease/internal/store"
)

const storageKey = "healthEase_bookings"

// Ledger reads and writes the bookings collection. Now supplies the
// reference day for Upcoming and Past; callers override it in tests.
type Ledger struct {
	records *store.Collection[model.Booking]
	Now     func() time.Time
}

func New(backend storage.Store) *Ledger {
	return &Ledger{
		records: store.New(backend, storageKey, seed, validate),
		Now:     time.Now,
	}
}

// seed is the collection persisted the first time the bookings key is
// read with no prior value.
func seed() []model.Booking {
	return []model.Booking{
		{
			ID:          1,
			DoctorName:  "Sophia-Rose Wiss",
			Date:        "01/12/2025",
			Time:        "11:30 AM",
			Category:    "General blood analysis",
			TypeOfVisit: "Chronic care visit",
		},
		{
			ID:          2,
			DoctorName:  "Marc Smith",
			Date:        "10/12/2025",
			Time:        "02:30 PM",
			Category:    "Kidney function test",
			TypeOfVisit: "Follow up visit",
		},
		{
			ID:          3,
			DoctorName:  "Tory Lanes",
			Date:        "15/12/2025",
			Time:        "12:30 PM",
			Category:    "X-ray examination",
			TypeOfVisit: "Follow up visit",
		},
	}
}

func validate(b model.Booking) error {
	if b.ID == 0 {
		return errors.New("booking id missing")
	}
	if _, err := dates.ParseDMY(b.Date); err != nil {
		return err
	}
	return nil
}

// List returns every booking, seeding the collection on first access.
func (l *Ledger) List(ctx context.Context) ([]model.Booking, error) {
	return l.records.Load(ctx)
}

// Add appends a booking with a fresh id and returns it. Fields are stored
// as given; the caller supplies date and time already formatted.
func (l *Ledger) Add(ctx context.Context, doctorName, date, timeOfDay, category, typeOfVisit string) (model.Booking, error) {
	b := model.Booking{
		ID:          idgen.Next(),
		DoctorName:  doctorName,
		Date:        date,
		Time:        timeOfDay,
		Category:    category,
		TypeOfVisit: typeOfVisit,
	}
	err := l.records.Update(ctx, func(bs []model.Booking) ([]model.Booking, error) {
		return append(bs, b), nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// Upcoming returns bookings dated today or later.
func (l *Ledger) Upcoming(ctx context.Context) ([]model.Booking, error) {
	return l.filter(ctx, true)
}

// Past returns bookings dated strictly before today.
func (l *Ledger) Past(ctx context.Context) ([]model.Booking, error) {
	return l.filter(ctx, false)
}

func (l *Ledger) filter(ctx context.Context, upcoming bool) ([]model.Booking, error) {
	records, err := l.records.Load(ctx)
	if err != nil {
		return nil, err
	}
	today := dates.DayOf(l.Now())

	out := []model.Booking{}
	for _, b := range records {
		day, err := dates.ParseDMY(b.Date)
		if err != nil {
			continue
		}
		if day.Before(today) != upcoming {
			out = append(out, b)
		}
	}
	return out, nil
}

// Remove deletes the booking with the given id and persists the rest.
// An unknown id is a no-op, not an error.
func (l *Ledger) Remove(ctx context.Context, id int64) error {
	return l.records.Update(ctx, func(bs []model.Booking) ([]model.Booking, error) {
		out := bs[:0]
		for _, b := range bs {
			if b.ID != id {
				out = append(out, b)
			}
		}
		return out, nil
	})
}

// FormatDate converts an ISO calendar date (YYYY-MM-DD) to the stored
// DD/MM/YYYY form.
func FormatDate(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", fmt.Errorf("date %q is not YYYY-MM-DD", iso)
	}
	return dates.FormatDMY(t), nil
}

// FormatTime converts a 24-hour HH:MM string to the stored 12-hour form:
// hour unpadded, minutes as given, noon 12:00 PM and midnight 12:00 AM.
func FormatTime(hhmm string) (string, error) {
	hh, mm, ok := strings.Cut(hhmm, ":")
	if !ok {
		return "", fmt.Errorf("time %q is not HH:MM", hhmm)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("time %q is not HH:MM", hhmm)
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, mm, ampm), nil
}
