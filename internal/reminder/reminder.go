// Package reminder is the reminder ledger: create and delete dated notes.
package reminder

import (
	"context"
	"errors"
	"time"

	"healthease/internal/dates"
	"healthease/internal/idgen"
	"healthease/internal/model"
	"healthease/internal/storage"
	"healthease/internal/store"
)

const storageKey = "healthEase_reminders"

type Ledger struct {
	records *store.Collection[model.Reminder]
}

func New(backend storage.Store) *Ledger {
	return &Ledger{records: store.New(backend, storageKey, seed, validate)}
}

func seed() []model.Reminder {
	return []model.Reminder{
		{
			ID:         1,
			DoctorName: "Sophia-Rose Wiss",
			DueDate:    "30/11/2025",
			Notes:      "Avoid eating or drinking for 12 hours before the appointment.",
		},
		{
			ID:         2,
			DoctorName: "Marc Smith",
			DueDate:    "09/12/2025",
			Notes:      "Bring previous medical reports and any current medications.",
		},
		{
			ID:         3,
			DoctorName: "Tory Lanes",
			DueDate:    "14/12/2025",
			Notes:      "Arrive 15 minutes early for pre-appointment checks.",
		},
	}
}

func validate(r model.Reminder) error {
	if r.ID == 0 {
		return errors.New("reminder id missing")
	}
	if _, err := dates.ParseDMY(r.DueDate); err != nil {
		return err
	}
	return nil
}

// List returns every reminder, seeding the collection on first access.
func (l *Ledger) List(ctx context.Context) ([]model.Reminder, error) {
	return l.records.Load(ctx)
}

// Add appends a reminder with a fresh id and returns it.
func (l *Ledger) Add(ctx context.Context, doctorName, dueDate, notes string) (model.Reminder, error) {
	r := model.Reminder{
		ID:         idgen.Next(),
		DoctorName: doctorName,
		DueDate:    dueDate,
		Notes:      notes,
	}
	err := l.records.Update(ctx, func(rs []model.Reminder) ([]model.Reminder, error) {
		return append(rs, r), nil
	})
	if err != nil {
		return model.Reminder{}, err
	}
	return r, nil
}

// Remove deletes the reminder with the given id; an unknown id is a no-op.
func (l *Ledger) Remove(ctx context.Context, id int64) error {
	return l.records.Update(ctx, func(rs []model.Reminder) ([]model.Reminder, error) {
		out := rs[:0]
		for _, r := range rs {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out, nil
	})
}

// FormatDueDate renders a calendar date in the stored DD/MM/YYYY form.
func FormatDueDate(t time.Time) string {
	return dates.FormatDMY(t)
}
