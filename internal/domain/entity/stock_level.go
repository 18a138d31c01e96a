package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is the authoritative stock row for a (product, location) pair.
// Created on first touch; never deleted. Invariants I1/I2 (spec.md §3) hold
// at every commit that touches this row.
type StockLevel struct {
	ProductID   int64
	LocationID  int64
	QtyOnHand   decimal.Decimal // >= 0
	QtyReserved decimal.Decimal // >= 0, <= QtyOnHand
	QtyOnOrder  decimal.Decimal // >= 0, derived — never set outside the rebuilder
	UpdatedAt   time.Time
}

// Available is the quantity eligible to be reserved or transferred out
// (spec.md glossary: "Available" = on_hand - reserved).
func (s *StockLevel) Available() decimal.Decimal {
	return s.QtyOnHand.Sub(s.QtyReserved)
}

// NewStockLevel returns the zero-quantity row the engine creates on first
// touch of a (product, location) pair that has never been written.
func NewStockLevel(productID, locationID int64) *StockLevel {
	return &StockLevel{
		ProductID:   productID,
		LocationID:  locationID,
		QtyOnHand:   decimal.Zero,
		QtyReserved: decimal.Zero,
		QtyOnOrder:  decimal.Zero,
	}
}
