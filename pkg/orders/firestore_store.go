package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection is the Firestore collection holding order documents
const Collection = "orders"

// orderDoc is the Firestore shape of an order; the document ID is the order ID
type orderDoc struct {
	AccountID   string    `firestore:"account_id"`
	Date        string    `firestore:"date"`
	StudentName string    `firestore:"student_name"`
	Sandwich    string    `firestore:"sandwich"`
	Bread       string    `firestore:"bread"`
	Extras      []string  `firestore:"extras"`
	Notes       string    `firestore:"notes"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// FirestoreStore keeps orders as documents in a Cloud Firestore collection
type FirestoreStore struct {
	Client *firestore.Client
}

// NewFirestoreClient opens Firestore through the Firebase Admin SDK.
// An empty credentialsFile falls back to application default credentials.
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}
	return client, nil
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{Client: client}
}

func (s *FirestoreStore) List(ctx context.Context, accountID string) ([]models.Order, error) {
	out, err := s.query(ctx, s.Client.Collection(Collection).Where("account_id", "==", accountID))
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *FirestoreStore) ListByDate(ctx context.Context, date string) ([]models.Order, error) {
	out, err := s.query(ctx, s.Client.Collection(Collection).Where("date", "==", date))
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentName < out[j].StudentName })
	return out, nil
}

func (s *FirestoreStore) Get(ctx context.Context, accountID, id string) (*models.Order, error) {
	snap, err := s.Client.Collection(Collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o, err := fromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	if o.AccountID != accountID {
		return nil, ErrNotFound
	}
	return &o, nil
}

// Create checks the account's day is free and writes the document in one transaction
func (s *FirestoreStore) Create(ctx context.Context, o *models.Order) error {
	ref := s.Client.Collection(Collection).Doc(o.ID)
	return s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := s.dateFree(tx, o.AccountID, o.Date, ""); err != nil {
			return err
		}
		return tx.Create(ref, toDoc(o))
	})
}

func (s *FirestoreStore) Update(ctx context.Context, o *models.Order) error {
	ref := s.Client.Collection(Collection).Doc(o.ID)
	return s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		existing, err := fromSnapshot(snap)
		if err != nil {
			return err
		}
		if existing.AccountID != o.AccountID {
			return ErrNotFound
		}
		if err := s.dateFree(tx, o.AccountID, o.Date, o.ID); err != nil {
			return err
		}
		doc := toDoc(o)
		doc.CreatedAt = existing.CreatedAt
		return tx.Set(ref, doc)
	})
}

func (s *FirestoreStore) Delete(ctx context.Context, accountID, id string) error {
	ref := s.Client.Collection(Collection).Doc(id)
	return s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if acc, err := snap.DataAt("account_id"); err != nil || acc != accountID {
			return ErrNotFound
		}
		return tx.Delete(ref)
	})
}

func (s *FirestoreStore) dateFree(tx *firestore.Transaction, accountID, date, exceptID string) error {
	q := s.Client.Collection(Collection).
		Where("account_id", "==", accountID).
		Where("date", "==", date)
	snaps, err := tx.Documents(q).GetAll()
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		if snap.Ref.ID != exceptID {
			return ErrDateTaken
		}
	}
	return nil
}

func (s *FirestoreStore) query(ctx context.Context, q firestore.Query) ([]models.Order, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []models.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		o, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func toDoc(o *models.Order) orderDoc {
	return orderDoc{
		AccountID:   o.AccountID,
		Date:        o.Date,
		StudentName: o.StudentName,
		Sandwich:    o.Sandwich,
		Bread:       o.Bread,
		Extras:      o.Extras,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (models.Order, error) {
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return models.Order{}, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
	}
	extras := d.Extras
	if extras == nil {
		extras = []string{}
	}
	return models.Order{
		ID:          snap.Ref.ID,
		AccountID:   d.AccountID,
		Date:        d.Date,
		StudentName: d.StudentName,
		Sandwich:    d.Sandwich,
		Bread:       d.Bread,
		Extras:      extras,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}
