package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arnavshah/sandwich-orders-api/pkg/database"
	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"gorm.io/gorm"
)

// Store persists published order forms
type Store interface {
	Latest(ctx context.Context) (*models.FormSchema, error)
	// Save stores s as the version after the latest one and sets s.Version
	Save(ctx context.Context, s *models.FormSchema) error
}

// GormStore keeps every published version in the form_schemas table
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Latest returns the highest version, or ErrNoSchema
func (s *GormStore) Latest(ctx context.Context) (*models.FormSchema, error) {
	var rec database.FormSchemaRecord
	err := s.DB.WithContext(ctx).Order("version desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSchema
	}
	if err != nil {
		return nil, err
	}

	var schema models.FormSchema
	if err := json.Unmarshal([]byte(rec.Body), &schema); err != nil {
		return nil, fmt.Errorf("decode form schema v%d: %w", rec.Version, err)
	}
	return &schema, nil
}

// Save assigns the next version and inserts it in one transaction;
// versions are never overwritten
func (s *GormStore) Save(ctx context.Context, schema *models.FormSchema) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest int
		if err := tx.Model(&database.FormSchemaRecord{}).Select("COALESCE(MAX(version), 0)").Scan(&latest).Error; err != nil {
			return err
		}
		schema.Version = latest + 1

		body, err := json.Marshal(schema)
		if err != nil {
			return err
		}
		return tx.Create(&database.FormSchemaRecord{
			Version:   schema.Version,
			Body:      string(body),
			CreatedAt: schema.UpdatedAt,
		}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrVersionConflict
	}
	return err
}
