package menu

import (
	"errors"
	"fmt"

	"github.com/arnavshah/sandwich-orders-api/pkg/models"
)

var (
	ErrNoSchema      = errors.New("no order form has been published")
	ErrInvalidSchema = errors.New("invalid order form")
	ErrInvalidChoice = errors.New("invalid order choice")

	// ErrVersionConflict means another publish claimed the same version first
	ErrVersionConflict = errors.New("order form was published concurrently, retry")
)

// ValidateSchema checks a form before it is published
func ValidateSchema(s *models.FormSchema) error {
	if len(s.Sandwiches) == 0 {
		return fmt.Errorf("%w: at least one sandwich is required", ErrInvalidSchema)
	}
	if len(s.Breads) == 0 {
		return fmt.Errorf("%w: at least one bread is required", ErrInvalidSchema)
	}
	if s.MaxExtras < 0 {
		return fmt.Errorf("%w: max_extras cannot be negative", ErrInvalidSchema)
	}
	for section, items := range map[string][]models.MenuItem{
		"sandwiches": s.Sandwiches,
		"breads":     s.Breads,
		"extras":     s.Extras,
	} {
		seen := make(map[string]bool, len(items))
		for _, item := range items {
			if item.ID == "" || item.Name == "" {
				return fmt.Errorf("%w: %s entries need an id and a name", ErrInvalidSchema, section)
			}
			if seen[item.ID] {
				return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidSchema, section, item.ID)
			}
			seen[item.ID] = true
		}
	}
	return nil
}

// ValidateChoice checks an order's sandwich, bread and extras against the form
func ValidateChoice(s *models.FormSchema, in models.OrderInput) error {
	if !offered(s.Sandwiches, in.Sandwich) {
		return fmt.Errorf("%w: sandwich %q is not on the menu", ErrInvalidChoice, in.Sandwich)
	}
	if !offered(s.Breads, in.Bread) {
		return fmt.Errorf("%w: bread %q is not on the menu", ErrInvalidChoice, in.Bread)
	}
	if len(in.Extras) > s.MaxExtras {
		return fmt.Errorf("%w: at most %d extras allowed", ErrInvalidChoice, s.MaxExtras)
	}
	seen := make(map[string]bool, len(in.Extras))
	for _, e := range in.Extras {
		if seen[e] {
			return fmt.Errorf("%w: extra %q chosen twice", ErrInvalidChoice, e)
		}
		seen[e] = true
		if !offered(s.Extras, e) {
			return fmt.Errorf("%w: extra %q is not on the menu", ErrInvalidChoice, e)
		}
	}
	return nil
}

func offered(items []models.MenuItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return item.Available
		}
	}
	return false
}
