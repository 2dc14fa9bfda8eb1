package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/dates"
	"github.com/arnavshah/sandwich-orders-api/pkg/menu"
	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"github.com/google/uuid"
)

var (
	ErrDateUnavailable = errors.New("date is not available for ordering")
	ErrInvalidOrder    = errors.New("invalid order")
)

// FormSource supplies the current order form
type FormSource interface {
	Current(ctx context.Context) (*models.FormSchema, error)
}

// Service applies the order-date rule and the order form to every write
type Service struct {
	Store      Store
	Calculator *dates.Calculator
	Forms      FormSource
}

func NewService(store Store, calc *dates.Calculator, forms FormSource) *Service {
	return &Service{Store: store, Calculator: calc, Forms: forms}
}

// DateOptions lists the dates the account can order on. focusID names the
// order being edited, whose own date stays selectable; empty means a new order.
func (s *Service) DateOptions(ctx context.Context, accountID, focusID string, now time.Time) ([]dates.DateOption, error) {
	existing, err := s.Store.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var focused *dates.Booking
	if focusID != "" {
		for _, o := range existing {
			if o.ID == focusID {
				focused = &dates.Booking{ID: o.ID, Date: o.Date}
				break
			}
		}
		if focused == nil {
			return nil, ErrNotFound
		}
	}

	return s.Calculator.OptionValues(now, bookings(existing), focused), nil
}

func (s *Service) List(ctx context.Context, accountID string) ([]models.Order, error) {
	return s.Store.List(ctx, accountID)
}

func (s *Service) Get(ctx context.Context, accountID, id string) (*models.Order, error) {
	return s.Store.Get(ctx, accountID, id)
}

// Place validates and stores a new order
func (s *Service) Place(ctx context.Context, accountID string, in models.OrderInput, now time.Time) (*models.Order, error) {
	in = normalize(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	existing, err := s.Store.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !s.Calculator.Allows(now, bookings(existing), nil, in.Date) {
		return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, in.Date)
	}

	ts := now.UTC()
	o := &models.Order{
		ID:        uuid.NewString(),
		AccountID: accountID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	apply(o, in)

	if err := s.Store.Create(ctx, o); err != nil {
		return nil, storeErr(err, in.Date)
	}
	return o, nil
}

// Change replaces the editable fields of an existing order
func (s *Service) Change(ctx context.Context, accountID, id string, in models.OrderInput, now time.Time) (*models.Order, error) {
	in = normalize(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	existing, err := s.Store.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	var current *models.Order
	for i := range existing {
		if existing[i].ID == id {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		return nil, ErrNotFound
	}

	focused := &dates.Booking{ID: current.ID, Date: current.Date}
	// the order's current date must itself still be editable
	if !s.Calculator.Allows(now, bookings(existing), focused, current.Date) {
		return nil, fmt.Errorf("%w: order for %s can no longer be changed", ErrDateUnavailable, current.Date)
	}
	if !s.Calculator.Allows(now, bookings(existing), focused, in.Date) {
		return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, in.Date)
	}

	updated := *current
	apply(&updated, in)
	updated.UpdatedAt = now.UTC()

	if err := s.Store.Update(ctx, &updated); err != nil {
		return nil, storeErr(err, in.Date)
	}
	return &updated, nil
}

// Cancel deletes an order while its date is still open for changes
func (s *Service) Cancel(ctx context.Context, accountID, id string, now time.Time) error {
	existing, err := s.Store.List(ctx, accountID)
	if err != nil {
		return err
	}
	for _, o := range existing {
		if o.ID != id {
			continue
		}
		focused := &dates.Booking{ID: o.ID, Date: o.Date}
		if !s.Calculator.Allows(now, bookings(existing), focused, o.Date) {
			return fmt.Errorf("%w: order for %s can no longer be cancelled", ErrDateUnavailable, o.Date)
		}
		return s.Store.Delete(ctx, accountID, id)
	}
	return ErrNotFound
}

// KitchenSheet lists every order for a day with per-sandwich totals
func (s *Service) KitchenSheet(ctx context.Context, date string) (*models.KitchenSheet, error) {
	if _, err := time.Parse(dates.ISOLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidOrder)
	}
	list, err := s.Store.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].StudentName < list[j].StudentName })

	totals := make(map[string]int)
	for _, o := range list {
		totals[o.Sandwich]++
	}
	return &models.KitchenSheet{Date: date, Orders: list, Totals: totals}, nil
}

// Check validates an order without storing it
func (s *Service) Check(ctx context.Context, accountID string, in models.OrderInput, now time.Time) error {
	in = normalize(in)
	if err := s.validate(ctx, in); err != nil {
		return err
	}
	existing, err := s.Store.List(ctx, accountID)
	if err != nil {
		return err
	}
	if !s.Calculator.Allows(now, bookings(existing), nil, in.Date) {
		return fmt.Errorf("%w: %s", ErrDateUnavailable, in.Date)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, in models.OrderInput) error {
	if in.StudentName == "" {
		return fmt.Errorf("%w: student_name is required", ErrInvalidOrder)
	}
	if _, err := time.Parse(dates.ISOLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidOrder)
	}
	if s.Forms == nil {
		return nil
	}
	form, err := s.Forms.Current(ctx)
	if err != nil {
		return err
	}
	if err := menu.ValidateChoice(form, in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	return nil
}

func storeErr(err error, date string) error {
	if errors.Is(err, ErrDateTaken) {
		return fmt.Errorf("%w: %s", ErrDateUnavailable, date)
	}
	return err
}

func normalize(in models.OrderInput) models.OrderInput {
	in.Date = strings.TrimSpace(in.Date)
	in.StudentName = strings.TrimSpace(in.StudentName)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Extras == nil {
		in.Extras = []string{}
	}
	return in
}

func apply(o *models.Order, in models.OrderInput) {
	o.Date = in.Date
	o.StudentName = in.StudentName
	o.Sandwich = in.Sandwich
	o.Bread = in.Bread
	o.Extras = in.Extras
	o.Notes = in.Notes
}

func bookings(list []models.Order) []dates.Booking {
	out := make([]dates.Booking, len(list))
	for i, o := range list {
		out[i] = dates.Booking{ID: o.ID, Date: o.Date}
	}
	return out
}
