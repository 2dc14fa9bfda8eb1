package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/arnavshah/sandwich-orders-api/pkg/database"
	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"gorm.io/gorm"
)

// GormStore keeps orders in the orders table (Postgres or SQLite)
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) List(ctx context.Context, accountID string) ([]models.Order, error) {
	var recs []database.OrderRecord
	if err := s.DB.WithContext(ctx).Where("account_id = ?", accountID).Order("date asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return toOrders(recs), nil
}

func (s *GormStore) ListByDate(ctx context.Context, date string) ([]models.Order, error) {
	var recs []database.OrderRecord
	if err := s.DB.WithContext(ctx).Where("date = ?", date).Order("student_name asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return toOrders(recs), nil
}

func (s *GormStore) Get(ctx context.Context, accountID, id string) (*models.Order, error) {
	var rec database.OrderRecord
	err := s.DB.WithContext(ctx).Where("id = ? AND account_id = ?", id, accountID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o := toOrder(rec)
	return &o, nil
}

func (s *GormStore) Create(ctx context.Context, o *models.Order) error {
	rec := toRecord(o)
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dateFree(tx, o.AccountID, o.Date, ""); err != nil {
			return err
		}
		return translate(tx.Create(&rec).Error)
	})
}

func (s *GormStore) Update(ctx context.Context, o *models.Order) error {
	rec := toRecord(o)
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dateFree(tx, o.AccountID, o.Date, o.ID); err != nil {
			return err
		}
		res := tx.Model(&database.OrderRecord{}).
			Where("id = ? AND account_id = ?", o.ID, o.AccountID).
			Updates(map[string]interface{}{
				"date":         rec.Date,
				"student_name": rec.StudentName,
				"sandwich":     rec.Sandwich,
				"bread":        rec.Bread,
				"extras":       rec.Extras,
				"notes":        rec.Notes,
				"updated_at":   rec.UpdatedAt,
			})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *GormStore) Delete(ctx context.Context, accountID, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND account_id = ?", id, accountID).Delete(&database.OrderRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// dateFree fails with ErrDateTaken when another order of the account holds date
func dateFree(tx *gorm.DB, accountID, date, exceptID string) error {
	q := tx.Model(&database.OrderRecord{}).Where("account_id = ? AND date = ?", accountID, date)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDateTaken
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDateTaken
	}
	return err
}

func toRecord(o *models.Order) database.OrderRecord {
	return database.OrderRecord{
		ID:          o.ID,
		AccountID:   o.AccountID,
		Date:        o.Date,
		StudentName: o.StudentName,
		Sandwich:    o.Sandwich,
		Bread:       o.Bread,
		Extras:      strings.Join(o.Extras, "|"),
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOrder(r database.OrderRecord) models.Order {
	extras := []string{}
	if r.Extras != "" {
		extras = strings.Split(r.Extras, "|")
	}
	return models.Order{
		ID:          r.ID,
		AccountID:   r.AccountID,
		Date:        r.Date,
		StudentName: r.StudentName,
		Sandwich:    r.Sandwich,
		Bread:       r.Bread,
		Extras:      extras,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toOrders(recs []database.OrderRecord) []models.Order {
	out := make([]models.Order, len(recs))
	for i, r := range recs {
		out[i] = toOrder(r)
	}
	return out
}
