package shipment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medikos/internal/core/apperror"
	"medikos/internal/core/id"
	"medikos/internal/core/tx"
	"medikos/internal/domain/catalog"
	"medikos/internal/domain/inventory"
	"medikos/pkg/logger"
)

// LineResult pairs a submitted line with the message describing what
// happened to it.
type LineResult struct {
	Shipment Input  `json:"shipment"`
	Message  string `json:"message"`
}

// BatchResult is the per-line outcome of a batch submission. Lines are
// processed independently: one line's duplicate or validation failure does
// not abort its siblings.
type BatchResult struct {
	Success  []LineResult `json:"success"`
	Warnings []LineResult `json:"warnings"`
	Errors   []LineResult `json:"errors"`
}

// Service records incoming shipments: it upserts the catalog price, appends
// an inventory lot and inserts the shipment row, atomically per line.
type Service struct {
	repo      Repository
	catalog   *catalog.Service
	inventory *inventory.Service
	txManager tx.Manager
}

// NewService creates a new shipment recorder.
func NewService(repo Repository, catalogSvc *catalog.Service, inventorySvc *inventory.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalogSvc,
		inventory: inventorySvc,
		txManager: txManager,
	}
}

// RecordBatch processes a batch of shipment lines. Each line runs in its own
// transaction: a duplicate shipment rolls back that line's catalog upsert and
// inventory lot, leaving the ledger exactly as before the re-submission.
func (s *Service) RecordBatch(ctx context.Context, lines []Input) (BatchResult, error) {
	var result BatchResult

	if len(lines) == 0 {
		return result, apperror.NewValidation("request must contain at least one shipment line")
	}

	for _, line := range lines {
		if err := line.Validate(ctx); err != nil {
			appErr, _ := apperror.AsAppError(err)
			result.Errors = append(result.Errors, LineResult{
				Shipment: line,
				Message:  appErr.Message,
			})
			continue
		}

		outcome, err := s.recordLine(ctx, line)
		if err != nil {
			msg := "error processing shipment"
			if appErr, ok := apperror.AsAppError(err); ok {
				msg = appErr.Message
			}
			result.Errors = append(result.Errors, LineResult{Shipment: line, Message: msg})
			continue
		}

		if outcome == catalog.OutcomeUpdated {
			result.Warnings = append(result.Warnings, LineResult{
				Shipment: line,
				Message:  fmt.Sprintf("item %q already exists, price updated", catalog.NormalizeName(line.Item)),
			})
		}
		result.Success = append(result.Success, LineResult{
			Shipment: line,
			Message:  "shipment recorded",
		})
	}

	logger.Info(ctx, "shipment batch processed",
		"lines", len(lines),
		"success", len(result.Success),
		"warnings", len(result.Warnings),
		"errors", len(result.Errors))

	return result, nil
}

// recordLine applies one validated line atomically.
func (s *Service) recordLine(ctx context.Context, line Input) (catalog.UpsertOutcome, error) {
	var outcome catalog.UpsertOutcome

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		outcome, err = s.catalog.Upsert(ctx, line.Item, line.MRPPerUnit())
		if err != nil {
			return err
		}

		if _, err := s.inventory.AddLot(ctx, catalog.NormalizeName(line.Item), line.TotalUnits(), line.RatePerUnit()); err != nil {
			return err
		}

		sh := &Shipment{
			ID:        id.New(),
			InvoiceNo: strings.TrimSpace(line.InvoiceNo),
			// created_on is a date: re-submitting the same line on the same
			// day is a duplicate, the same line on a later day is new stock.
			CreatedOn: time.Now().UTC().Truncate(24 * time.Hour),
			Quantity:  line.Quantity,
			Bonus:     line.Bonus,
			PackOf:    line.PackOf,
			Item:      catalog.NormalizeName(line.Item),
			MRP:       line.MRP,
			Rate:      line.Rate,
			Amount:    line.Amount(),
		}
		return s.repo.Create(ctx, sh)
	})

	return outcome, err
}

// ListByInvoice returns all shipment lines recorded under an invoice.
func (s *Service) ListByInvoice(ctx context.Context, invoiceNo string) ([]Shipment, error) {
	return s.repo.ListByInvoice(ctx, strings.TrimSpace(invoiceNo))
}

// InvoiceSummaries returns per-invoice line counts and amounts.
func (s *Service) InvoiceSummaries(ctx context.Context) ([]InvoiceSummary, error) {
	return s.repo.InvoiceSummaries(ctx)
}
