// Package catalog provides the item catalog: item name to current retail price.
// It is the leaf dependency for the inventory ledger and the settlement engine.
package catalog

import (
	"context"
	"strings"
	"time"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/core/types"
)

// Item maps a case-normalized item name to its current MRP per unit.
// Created on first shipment of a new item; the price is overwritten on every
// subsequent shipment of the same item. Never deleted in normal operation.
type Item struct {
	ID         id.ID       `db:"id" json:"id"`
	Name       string      `db:"item" json:"item"`
	MRPPerUnit types.Money `db:"mrp_per_unit" json:"mrpPerUnit"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updatedAt"`
}

// NormalizeName lowercases and trims an item name. All catalog lookups and
// storage go through this, so "Paracetamol " and "paracetamol" are one item.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate implements basic invariants before storage.
func (i *Item) Validate(ctx context.Context) error {
	if NormalizeName(i.Name) == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "item")
	}
	if !i.MRPPerUnit.IsPositive() {
		return apperror.NewValidation("mrp per unit must be positive").
			WithDetail("field", "mrpPerUnit")
	}
	return nil
}
