package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/database"
	"github.com/arnavshah/sandwich-orders-api/pkg/dates"
	"github.com/arnavshah/sandwich-orders-api/pkg/models"
)

type staticForm struct {
	schema *models.FormSchema
}

func (f staticForm) Current(ctx context.Context) (*models.FormSchema, error) {
	return f.schema, nil
}

var form = &models.FormSchema{
	Version:    1,
	Sandwiches: []models.MenuItem{{ID: "ham", Name: "Ham", Available: true}, {ID: "egg", Name: "Egg", Available: true}},
	Breads:     []models.MenuItem{{ID: "white", Name: "White", Available: true}},
	Extras:     []models.MenuItem{{ID: "apple", Name: "Apple", Available: true}},
	MaxExtras:  1,
}

// Wednesday 2026-10-14, before a 14:00 cutoff
var wednesdayMorning = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(database.Options{DataPath: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	schedule, err := dates.NewSchedule(time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC),
		[]bool{true, true, true, true, true, false, false})
	if err != nil {
		t.Fatal(err)
	}
	calc := dates.NewCalculator(schedule, dates.CutoffTime{Hour: 14}, time.UTC)
	return NewService(NewGormStore(db), calc, staticForm{form})
}

func input(date, student string) models.OrderInput {
	return models.OrderInput{Date: date, StudentName: student, Sandwich: "ham", Bread: "white"}
}

func contains(opts []dates.DateOption, iso string) bool {
	for _, o := range opts {
		if o.Date == iso {
			return true
		}
	}
	return false
}

func TestPlace_RemovesDateFromOptions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, "fam1", input("2026-10-16", "Sam"), wednesdayMorning)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}

	opts, err := svc.DateOptions(ctx, "fam1", "", wednesdayMorning)
	if err != nil {
		t.Fatal(err)
	}
	if contains(opts, "2026-10-16") {
		t.Errorf("booked Friday should not be offered")
	}

	// other accounts are unaffected
	opts, _ = svc.DateOptions(ctx, "fam2", "", wednesdayMorning)
	if !contains(opts, "2026-10-16") {
		t.Errorf("Friday should still be offered to another account")
	}

	focused, err := svc.DateOptions(ctx, "fam1", o.ID, wednesdayMorning)
	if err != nil {
		t.Fatal(err)
	}
	if !contains(focused, "2026-10-16") {
		t.Errorf("Friday should be offered while editing the Friday order")
	}
}

func TestPlace_Rejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Place(ctx, "fam1", input("2026-10-16", "Sam"), wednesdayMorning); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   models.OrderInput
		want error
	}{
		{"same day twice", input("2026-10-16", "Sam"), ErrDateUnavailable},
		{"weekend", input("2026-10-17", "Sam"), ErrDateUnavailable},
		{"past", input("2026-10-13", "Sam"), ErrDateUnavailable},
		{"beyond window", input("2026-10-28", "Sam"), ErrDateUnavailable},
		{"bad date", input("16/10/2026", "Sam"), ErrInvalidOrder},
		{"no student", input("2026-10-19", " "), ErrInvalidOrder},
		{"unknown sandwich", models.OrderInput{Date: "2026-10-19", StudentName: "Sam", Sandwich: "club", Bread: "white"}, ErrInvalidOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Place(ctx, "fam1", tt.in, wednesdayMorning)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPlace_TodayAfterCutoff(t *testing.T) {
	svc := newTestService(t)
	late := time.Date(2026, time.October, 14, 16, 0, 0, 0, time.UTC)
	if _, err := svc.Place(context.Background(), "fam1", input("2026-10-14", "Sam"), late); !errors.Is(err, ErrDateUnavailable) {
		t.Errorf("expected ErrDateUnavailable after cutoff, got %v", err)
	}
}

func TestChange_KeepsOrMovesDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	o, err := svc.Place(ctx, "fam1", input("2026-10-16", "Sam"), wednesdayMorning)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Place(ctx, "fam1", input("2026-10-19", "Sam"), wednesdayMorning); err != nil {
		t.Fatal(err)
	}

	in := input("2026-10-16", "Sam")
	in.Sandwich = "egg"
	updated, err := svc.Change(ctx, "fam1", o.ID, in, wednesdayMorning)
	if err != nil {
		t.Fatalf("Change on same date: %v", err)
	}
	if updated.Sandwich != "egg" {
		t.Errorf("expected egg, got %s", updated.Sandwich)
	}

	if _, err := svc.Change(ctx, "fam1", o.ID, input("2026-10-19", "Sam"), wednesdayMorning); !errors.Is(err, ErrDateUnavailable) {
		t.Errorf("moving onto another order's date should fail, got %v", err)
	}

	moved, err := svc.Change(ctx, "fam1", o.ID, input("2026-10-20", "Sam"), wednesdayMorning)
	if err != nil {
		t.Fatalf("Change to free date: %v", err)
	}
	got, err := svc.Get(ctx, "fam1", o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Date != "2026-10-20" || moved.Date != "2026-10-20" {
		t.Errorf("expected order moved to 2026-10-20, got %s", got.Date)
	}

	if _, err := svc.Change(ctx, "fam2", o.ID, in, wednesdayMorning); !errors.Is(err, ErrNotFound) {
		t.Errorf("another account should not see the order, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	o, err := svc.Place(ctx, "fam1", input("2026-10-14", "Sam"), wednesdayMorning)
	if err != nil {
		t.Fatal(err)
	}

	late := time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)
	if err := svc.Cancel(ctx, "fam1", o.ID, late); !errors.Is(err, ErrDateUnavailable) {
		t.Errorf("cancelling today's order after cutoff should fail, got %v", err)
	}

	if err := svc.Cancel(ctx, "fam1", o.ID, wednesdayMorning); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := svc.Get(ctx, "fam1", o.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected cancelled order to be gone, got %v", err)
	}
	if err := svc.Cancel(ctx, "fam1", o.ID, wednesdayMorning); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second cancel, got %v", err)
	}
}

func TestDateOptions_UnknownFocus(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.DateOptions(context.Background(), "fam1", "nope", wednesdayMorning); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestKitchenSheet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.Place(ctx, "fam1", input("2026-10-15", "Zoe"), wednesdayMorning)
	egg := input("2026-10-15", "Ana")
	egg.Sandwich = "egg"
	svc.Place(ctx, "fam2", egg, wednesdayMorning)
	svc.Place(ctx, "fam3", input("2026-10-15", "Max"), wednesdayMorning)
	svc.Place(ctx, "fam3", input("2026-10-16", "Max"), wednesdayMorning)

	sheet, err := svc.KitchenSheet(ctx, "2026-10-15")
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.Orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(sheet.Orders))
	}
	if sheet.Orders[0].StudentName != "Ana" || sheet.Orders[2].StudentName != "Zoe" {
		t.Errorf("expected orders sorted by student, got %s..%s", sheet.Orders[0].StudentName, sheet.Orders[2].StudentName)
	}
	if sheet.Totals["ham"] != 2 || sheet.Totals["egg"] != 1 {
		t.Errorf("unexpected totals %v", sheet.Totals)
	}

	if _, err := svc.KitchenSheet(ctx, "tomorrow"); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("expected ErrInvalidOrder for bad date, got %v", err)
	}
}

func TestGormStore_RejectsSecondOrderSameDay(t *testing.T) {
	svc := newTestService(t)
	store := svc.Store
	ctx := context.Background()
	a := &models.Order{ID: "a", AccountID: "fam1", Date: "2026-10-15", StudentName: "Sam", Sandwich: "ham", Bread: "white"}
	b := &models.Order{ID: "b", AccountID: "fam1", Date: "2026-10-15", StudentName: "Sam", Sandwich: "ham", Bread: "white"}

	if err := store.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, b); !errors.Is(err, ErrDateTaken) {
		t.Errorf("expected ErrDateTaken, got %v", err)
	}

	a.Extras = []string{"apple"}
	if err := store.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.Get(ctx, "fam1", "a")
	if len(got.Extras) != 1 || got.Extras[0] != "apple" {
		t.Errorf("expected extras [apple], got %v", got.Extras)
	}
}
