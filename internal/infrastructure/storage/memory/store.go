// Package memory provides an in-process implementation of every repository
// plus the transaction manager. It exists for unit tests and local
// experimentation; the transactional guarantees mirror the PostgreSQL layer
// closely enough to exercise the all-or-nothing settlement path.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/core/tx"
	"medikos/internal/core/types"
	"medikos/internal/domain/billing"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/internal/domain/shipment"
)

// Compile-time interface checks.
var (
	_ tx.Manager           = (*Store)(nil)
	_ catalog.Repository   = (*ItemRepo)(nil)
	_ inventory.Repository = (*LotRepo)(nil)
	_ shipment.Repository  = (*ShipmentRepo)(nil)
	_ billing.Repository   = (*BillRepo)(nil)
)

type state struct {
	items     map[string]catalog.Item
	lots      map[id.ID]inventory.Lot
	shipments map[id.ID]shipment.Shipment
	bills     map[string]billing.Bill
	billItems map[id.ID]billing.BillItem
}

func newState() *state {
	return &state{
		items:     make(map[string]catalog.Item),
		lots:      make(map[id.ID]inventory.Lot),
		shipments: make(map[id.ID]shipment.Shipment),
		bills:     make(map[string]billing.Bill),
		billItems: make(map[id.ID]billing.BillItem),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	for k, v := range s.bills {
		c.bills[k] = v
	}
	for k, v := range s.billItems {
		c.billItems[k] = v
	}
	return c
}

// Store holds all data in maps guarded by one mutex. Transactions snapshot
// the state and restore it when the transactional function fails.
type Store struct {
	mu      sync.Mutex
	state   *state
	txDepth int
	backup  *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Items returns the catalog repository view of the store.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s} }

// Lots returns the inventory repository view of the store.
func (s *Store) Lots() *LotRepo { return &LotRepo{s} }

// Shipments returns the shipment repository view of the store.
func (s *Store) Shipments() *ShipmentRepo { return &ShipmentRepo{s} }

// Bills returns the bill repository view of the store.
func (s *Store) Bills() *BillRepo { return &BillRepo{s} }

// RunInTransaction snapshots the state, runs fn, and restores the snapshot
// if fn returns an error. Nested calls join the outer transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.txDepth == 0 {
		s.backup = s.state.clone()
	}
	s.txDepth++
	s.mu.Unlock()

	err := fn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txDepth--
	if s.txDepth == 0 {
		if err != nil {
			s.state = s.backup
		}
		s.backup = nil
	}
	return err
}

// RunSerializable is RunInTransaction: the single mutex already serializes
// every caller.
func (s *Store) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.RunInTransaction(ctx, fn)
}

// ItemRepo is the in-memory catalog storage.
type ItemRepo struct{ s *Store }

func (r *ItemRepo) GetByName(ctx context.Context, name string) (*catalog.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.state.items[name]
	if !ok {
		return nil, apperror.NewNotFound("item", name)
	}
	return &item, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *catalog.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.state.items[item.Name]; ok {
		return apperror.NewDuplicate(fmt.Sprintf("item %q", item.Name))
	}
	r.s.state.items[item.Name] = *item
	return nil
}

func (r *ItemRepo) UpdatePrice(ctx context.Context, name string, mrpPerUnit types.Money) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.state.items[name]
	if !ok {
		return apperror.NewNotFound("item", name)
	}
	item.MRPPerUnit = mrpPerUnit
	item.UpdatedAt = time.Now().UTC()
	r.s.state.items[name] = item
	return nil
}

func (r *ItemRepo) List(ctx context.Context) ([]catalog.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make([]catalog.Item, 0, len(r.s.state.items))
	for _, item := range r.s.state.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// LotRepo is the in-memory inventory ledger storage.
type LotRepo struct{ s *Store }

func (r *LotRepo) CreateLot(ctx context.Context, lot *inventory.Lot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.state.lots[lot.ID] = *lot
	return nil
}

func (r *LotRepo) LotsForUpdate(ctx context.Context, item string) ([]inventory.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var lots []inventory.Lot
	for _, lot := range r.s.state.lots {
		if lot.Item == item {
			lots = append(lots, lot)
		}
	}
	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].CreatedOn.Equal(lots[j].CreatedOn) {
			return lots[i].CreatedOn.Before(lots[j].CreatedOn)
		}
		return lots[i].ID.String() < lots[j].ID.String()
	})
	return lots, nil
}

func (r *LotRepo) SetLotUnits(ctx context.Context, lotID id.ID, units int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	lot, ok := r.s.state.lots[lotID]
	if !ok {
		return apperror.NewNotFound("lot", lotID.String())
	}
	lot.Units = units
	r.s.state.lots[lotID] = lot
	return nil
}

func (r *LotRepo) DeleteLot(ctx context.Context, lotID id.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.state.lots, lotID)
	return nil
}

func (r *LotRepo) AvailableUnits(ctx context.Context, item string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var units int64
	for _, lot := range r.s.state.lots {
		if lot.Item == item {
			units += lot.Units
		}
	}
	return units, nil
}

func (r *LotRepo) StockSummary(ctx context.Context) ([]inventory.StockRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byItem := make(map[string]int64)
	for _, lot := range r.s.state.lots {
		byItem[lot.Item] += lot.Units
	}

	rows := make([]inventory.StockRow, 0, len(byItem))
	for item, units := range byItem {
		cat, ok := r.s.state.items[item]
		if !ok {
			continue
		}
		rows = append(rows, inventory.StockRow{
			Item:       item,
			Units:      units,
			MRPPerUnit: cat.MRPPerUnit,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Item < rows[j].Item })
	return rows, nil
}

// ShipmentRepo is the in-memory shipment ledger storage.
type ShipmentRepo struct{ s *Store }

// sameShipment compares the full tuple the database constrains as unique.
func sameShipment(a, b *shipment.Shipment) bool {
	if a.InvoiceNo != b.InvoiceNo ||
		!a.CreatedOn.Equal(b.CreatedOn) ||
		a.Quantity != b.Quantity ||
		a.PackOf != b.PackOf ||
		a.Item != b.Item {
		return false
	}
	if (a.Bonus == nil) != (b.Bonus == nil) {
		return false
	}
	if a.Bonus != nil && *a.Bonus != *b.Bonus {
		return false
	}
	return a.MRP.Equal(b.MRP) && a.Rate.Equal(b.Rate) && a.Amount.Equal(b.Amount)
}

func (r *ShipmentRepo) Create(ctx context.Context, sh *shipment.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.state.shipments {
		if sameShipment(&existing, sh) {
			return apperror.NewDuplicate(fmt.Sprintf("shipment of %q on invoice %s", sh.Item, sh.InvoiceNo))
		}
	}
	r.s.state.shipments[sh.ID] = *sh
	return nil
}

func (r *ShipmentRepo) ListByInvoice(ctx context.Context, invoiceNo string) ([]shipment.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var shipments []shipment.Shipment
	for _, sh := range r.s.state.shipments {
		if sh.InvoiceNo == invoiceNo {
			shipments = append(shipments, sh)
		}
	}
	sort.Slice(shipments, func(i, j int) bool {
		if !shipments[i].CreatedOn.Equal(shipments[j].CreatedOn) {
			return shipments[i].CreatedOn.Before(shipments[j].CreatedOn)
		}
		return shipments[i].ID.String() < shipments[j].ID.String()
	})
	return shipments, nil
}

func (r *ShipmentRepo) InvoiceSummaries(ctx context.Context) ([]shipment.InvoiceSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byInvoice := make(map[string]*shipment.InvoiceSummary)
	for _, sh := range r.s.state.shipments {
		sum, ok := byInvoice[sh.InvoiceNo]
		if !ok {
			sum = &shipment.InvoiceSummary{
				InvoiceNo: sh.InvoiceNo,
				CreatedOn: sh.CreatedOn,
				Amount:    types.Zero(),
			}
			byInvoice[sh.InvoiceNo] = sum
		}
		if sh.CreatedOn.After(sum.CreatedOn) {
			sum.CreatedOn = sh.CreatedOn
		}
		sum.ItemCount++
		sum.Amount = sum.Amount.Add(sh.Amount)
	}

	summaries := make([]shipment.InvoiceSummary, 0, len(byInvoice))
	for _, sum := range byInvoice {
		summaries = append(summaries, *sum)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedOn.Equal(summaries[j].CreatedOn) {
			return summaries[i].CreatedOn.After(summaries[j].CreatedOn)
		}
		return summaries[i].InvoiceNo < summaries[j].InvoiceNo
	})
	return summaries, nil
}

// BillRepo is the in-memory bill storage.
type BillRepo struct{ s *Store }

func (r *BillRepo) CreateBill(ctx context.Context, bill *billing.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.state.bills[bill.BillNo]; ok {
		return apperror.NewDuplicate(fmt.Sprintf("bill %s", bill.BillNo))
	}
	r.s.state.bills[bill.BillNo] = *bill
	return nil
}

func (r *BillRepo) CreateItems(ctx context.Context, items []billing.BillItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range items {
		r.s.state.billItems[item.ID] = item
	}
	return nil
}

func (r *BillRepo) ListBills(ctx context.Context) ([]billing.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[string]int64)
	for _, item := range r.s.state.billItems {
		counts[item.BillNo]++
	}

	summaries := make([]billing.Summary, 0, len(r.s.state.bills))
	for _, bill := range r.s.state.bills {
		summaries = append(summaries, billing.Summary{
			BillNo:    bill.BillNo,
			CreatedOn: bill.CreatedOn,
			ItemCount: counts[bill.BillNo],
			Amount:    bill.Amount,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedOn.Equal(summaries[j].CreatedOn) {
			return summaries[i].CreatedOn.After(summaries[j].CreatedOn)
		}
		return summaries[i].BillNo < summaries[j].BillNo
	})
	return summaries, nil
}

func (r *BillRepo) GetBill(ctx context.Context, billNo string) (*billing.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bill, ok := r.s.state.bills[billNo]
	if !ok {
		return nil, apperror.NewNotFound("bill", billNo)
	}
	return &bill, nil
}

func (r *BillRepo) GetItems(ctx context.Context, billNo string) ([]billing.BillItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var items []billing.BillItem
	for _, item := range r.s.state.billItems {
		if item.BillNo == billNo {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Item < items[j].Item })
	return items, nil
}
