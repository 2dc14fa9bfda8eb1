package models

import "time"

// Order is a sandwich order for one student on one school day
type Order struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Date        string    `json:"date"` // ISO 2006-01-02
	StudentName string    `json:"student_name"`
	Sandwich    string    `json:"sandwich"`
	Bread       string    `json:"bread"`
	Extras      []string  `json:"extras"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderInput is the client-writable part of an order
type OrderInput struct {
	Date        string   `json:"date" binding:"required"`
	StudentName string   `json:"student_name" binding:"required"`
	Sandwich    string   `json:"sandwich" binding:"required"`
	Bread       string   `json:"bread" binding:"required"`
	Extras      []string `json:"extras"`
	Notes       string   `json:"notes"`
}

// MenuItem is one choice on the order form
type MenuItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// FormSchema describes the order form shown by client apps
type FormSchema struct {
	Version    int        `json:"version"`
	Sandwiches []MenuItem `json:"sandwiches"`
	Breads     []MenuItem `json:"breads"`
	Extras     []MenuItem `json:"extras"`
	MaxExtras  int        `json:"max_extras"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DateOptionsResponse is the payload of the date selector endpoint
type DateOptionsResponse struct {
	Cutoff  string       `json:"cutoff"`
	Focus   string       `json:"focus,omitempty"`
	Options []DateOption `json:"options"`
}

// DateOption mirrors dates.DateOption for API responses
type DateOption struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// KitchenSheet lists every order for one day
type KitchenSheet struct {
	Date   string         `json:"date"`
	Orders []Order        `json:"orders"`
	Totals map[string]int `json:"totals"` // sandwich ID -> count
}
