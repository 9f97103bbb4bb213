package booking_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"healthease/internal/booking"
	"healthease/internal/model"
	"healthease/internal/storage"
	"healthease/internal/store"
)

func setup(t *testing.T) (*booking.Ledger, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	return booking.New(backend), backend
}

// emptyLedger starts from an already-initialized empty collection so the
// seed records do not participate.
func emptyLedger(t *testing.T) (*booking.Ledger, *storage.Memory) {
	t.Helper()
	ledger, backend := setup(t)
	if err := backend.Set(context.Background(), "healthEase_bookings", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	return ledger, backend
}

func TestSeedOnFirstAccess(t *testing.T) {
	ledger, backend := setup(t)
	ctx := context.Background()

	got, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("seed has %d bookings, want 3", len(got))
	}
	want := []model.Booking{
		{ID: 1, DoctorName: "Sophia-Rose Wiss", Date: "01/12/2025", Time: "11:30 AM",
			Category: "General blood analysis", TypeOfVisit: "Chronic care visit"},
		{ID: 2, DoctorName: "Marc Smith", Date: "10/12/2025", Time: "02:30 PM",
			Category: "Kidney function test", TypeOfVisit: "Follow up visit"},
		{ID: 3, DoctorName: "Tory Lanes", Date: "15/12/2025", Time: "12:30 PM",
			Category: "X-ray examination", TypeOfVisit: "Follow up visit"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("seed = %+v", got)
	}

	if _, ok, _ := backend.Get(ctx, "healthEase_bookings"); !ok {
		t.Fatal("seed was not persisted")
	}
	again, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Fatal("second list differs from first")
	}
}

func TestAddLifecycle(t *testing.T) {
	ledger, _ := setup(t)
	ctx := context.Background()

	b, err := ledger.Add(ctx, "Dr. A", "25/12/2099", "10:00 AM", "Checkup", "Routine")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.ID == 0 {
		t.Fatal("empty booking id")
	}

	all, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !containsID(all, b.ID) {
		t.Fatalf("id %d missing from list", b.ID)
	}

	upcoming, err := ledger.Upcoming(ctx)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if !containsID(upcoming, b.ID) {
		t.Fatal("new booking missing from upcoming")
	}
	past, err := ledger.Past(ctx)
	if err != nil {
		t.Fatalf("past: %v", err)
	}
	if containsID(past, b.ID) {
		t.Fatal("new booking listed as past")
	}

	if err := ledger.Remove(ctx, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	all, _ = ledger.List(ctx)
	if containsID(all, b.ID) {
		t.Fatalf("id %d still listed after remove", b.ID)
	}
}

func TestAddIDsAreUnique(t *testing.T) {
	ledger, _ := emptyLedger(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		b, err := ledger.Add(ctx, "Dr. A", "25/12/2099", "10:00 AM", "Checkup", "Routine")
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if seen[b.ID] {
			t.Fatalf("duplicate id %d", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestPartition(t *testing.T) {
	ledger, _ := emptyLedger(t)
	ctx := context.Background()
	ledger.Now = func() time.Time {
		return time.Date(2025, time.June, 10, 15, 30, 0, 0, time.Local)
	}

	for _, date := range []string{"09/06/2025", "10/06/2025", "11/06/2025"} {
		if _, err := ledger.Add(ctx, "Dr. A", date, "9:00 AM", "Checkup", "Routine"); err != nil {
			t.Fatalf("add %s: %v", date, err)
		}
	}

	upcoming, err := ledger.Upcoming(ctx)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	past, err := ledger.Past(ctx)
	if err != nil {
		t.Fatalf("past: %v", err)
	}

	// the boundary day belongs to upcoming only
	if got := datesOf(upcoming); !reflect.DeepEqual(got, []string{"10/06/2025", "11/06/2025"}) {
		t.Fatalf("upcoming = %v", got)
	}
	if got := datesOf(past); !reflect.DeepEqual(got, []string{"09/06/2025"}) {
		t.Fatalf("past = %v", got)
	}

	// together they reconstruct the full set
	all, _ := ledger.List(ctx)
	if len(upcoming)+len(past) != len(all) {
		t.Fatalf("partition lost records: %d + %d != %d", len(upcoming), len(past), len(all))
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ledger, _ := setup(t)
	ctx := context.Background()

	b, err := ledger.Add(ctx, "Dr. A", "25/12/2099", "10:00 AM", "Checkup", "Routine")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ledger.Remove(ctx, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	after, _ := ledger.List(ctx)

	if err := ledger.Remove(ctx, b.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	again, _ := ledger.List(ctx)
	if !reflect.DeepEqual(again, after) {
		t.Fatal("second remove changed the collection")
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	ledger, _ := setup(t)
	ctx := context.Background()

	before, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := ledger.Remove(ctx, 424242); err != nil {
		t.Fatalf("remove unknown: %v", err)
	}
	after, _ := ledger.List(ctx)
	if !reflect.DeepEqual(after, before) {
		t.Fatal("removing an unknown id changed the collection")
	}
}

func TestMalformedCollection(t *testing.T) {
	ledger, backend := setup(t)
	ctx := context.Background()
	if err := backend.Set(ctx, "healthEase_bookings", `{"not":"an array"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	_, err := ledger.List(ctx)
	var malformed *store.MalformedDataError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedDataError", err)
	}
}

func TestStatusOmittedWhenEmpty(t *testing.T) {
	_, backend := emptyLedger(t)
	ctx := context.Background()
	ledger := booking.New(backend)

	if _, err := ledger.Add(ctx, "Dr. A", "25/12/2099", "10:00 AM", "Checkup", "Routine"); err != nil {
		t.Fatalf("add: %v", err)
	}
	raw, _, _ := backend.Get(ctx, "healthEase_bookings")
	if strings.Contains(raw, `"status"`) {
		t.Fatalf("empty status persisted: %s", raw)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:05", "12:05 AM"},
		{"12:00", "12:00 PM"},
		{"23:59", "11:59 PM"},
		{"09:07", "9:07 AM"},
		{"13:45", "1:45 PM"},
		{"11:30", "11:30 AM"},
	}
	for _, tt := range tests {
		got, err := booking.FormatTime(tt.in)
		if err != nil {
			t.Fatalf("FormatTime(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("FormatTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "noon", "25:00", "-1:00", "1200"} {
		if _, err := booking.FormatTime(in); err == nil {
			t.Fatalf("FormatTime(%q) succeeded, want error", in)
		}
	}
}

func TestFormatDate(t *testing.T) {
	got, err := booking.FormatDate("2025-12-01")
	if err != nil {
		t.Fatalf("FormatDate: %v", err)
	}
	if got != "01/12/2025" {
		t.Fatalf("got %q, want 01/12/2025", got)
	}

	for _, in := range []string{"", "01/12/2025", "2025-13-01", "yesterday"} {
		if _, err := booking.FormatDate(in); err == nil {
			t.Fatalf("FormatDate(%q) succeeded, want error", in)
		}
	}
}

func containsID(bs []model.Booking, id int64) bool {
	for _, b := range bs {
		if b.ID == id {
			return true
		}
	}
	return false
}

func datesOf(bs []model.Booking) []string {
	out := []string{}
	for _, b := range bs {
		out = append(out, b.Date)
	}
	return out
}
