package orders

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"github.com/google/uuid"
)

// newFirestoreStore talks to the Firestore emulator; the client picks up
// FIRESTORE_EMULATOR_HOST on its own
func newFirestoreStore(t *testing.T) *FirestoreStore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skipf("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "sandwich-orders-test")
	if err != nil {
		t.Fatalf("firestore client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewFirestoreStore(client)
}

func firestoreOrder(account, date string) *models.Order {
	now := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	return &models.Order{
		ID:          uuid.NewString(),
		AccountID:   account,
		Date:        date,
		StudentName: "Sam",
		Sandwich:    "ham",
		Bread:       "white",
		Extras:      []string{"apple"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestFirestoreStore_OneOrderPerDay(t *testing.T) {
	s := newFirestoreStore(t)
	ctx := context.Background()
	account := "fam-" + uuid.NewString()

	first := firestoreOrder(account, "2026-10-15")
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, firestoreOrder(account, "2026-10-15")); !errors.Is(err, ErrDateTaken) {
		t.Errorf("second order on the same day: expected ErrDateTaken, got %v", err)
	}

	// another account may book the same day
	if err := s.Create(ctx, firestoreOrder("fam-"+uuid.NewString(), "2026-10-15")); err != nil {
		t.Errorf("other account: %v", err)
	}

	second := firestoreOrder(account, "2026-10-16")
	if err := s.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second.Date = "2026-10-15"
	if err := s.Update(ctx, second); !errors.Is(err, ErrDateTaken) {
		t.Errorf("moving onto a booked day: expected ErrDateTaken, got %v", err)
	}

	// keeping its own date is not a clash
	first.Notes = "no crusts"
	if err := s.Update(ctx, first); err != nil {
		t.Errorf("Update in place: %v", err)
	}

	list, err := s.List(ctx, account)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Date != "2026-10-15" || list[0].Notes != "no crusts" {
		t.Errorf("unexpected orders %+v", list)
	}
}

func TestFirestoreStore_OtherAccountNotFound(t *testing.T) {
	s := newFirestoreStore(t)
	ctx := context.Background()
	owner := "fam-" + uuid.NewString()
	intruder := "fam-" + uuid.NewString()

	o := firestoreOrder(owner, "2026-10-19")
	if err := s.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Get(ctx, intruder, o.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	stolen := *o
	stolen.AccountID = intruder
	if err := s.Update(ctx, &stolen); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, intruder, o.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}

	got, err := s.Get(ctx, owner, o.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Date != o.Date || len(got.Extras) != 1 {
		t.Errorf("unexpected order %+v", got)
	}

	if err := s.Delete(ctx, owner, o.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, owner, o.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, owner, o.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
