package orders

import (
	"context"
	"errors"

	"github.com/arnavshah/sandwich-orders-api/pkg/models"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDateTaken is returned by a Store when the account already has an order that day
	ErrDateTaken = errors.New("account already has an order on that date")
)

// Store persists orders. Every read and write is scoped to an account except ListByDate.
type Store interface {
	List(ctx context.Context, accountID string) ([]models.Order, error)
	ListByDate(ctx context.Context, date string) ([]models.Order, error)
	Get(ctx context.Context, accountID, id string) (*models.Order, error)
	Create(ctx context.Context, o *models.Order) error
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, accountID, id string) error
}
