package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/pkg/logger"
)

var (
	ErrItemNameRequired = errors.New("item name is required")
	ErrInvalidUnitPrice = errors.New("unit price must be greater than zero")
	ErrEmptyBill        = errors.New("bill has no items")
)

// ComputeTotals derives the money fields of a bill from its items and tax
// rate. It is pure and is called after every mutation so the derived fields
// are never observed stale.
func ComputeTotals(items []model.BillItem, taxRatePercent float64) model.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal
	}
	taxAmount := subtotal * taxRatePercent / 100
	return model.Totals{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		GrandTotal: subtotal + taxAmount,
	}
}

// BillService owns the bill currently being built. All operations are
// synchronous read-modify-write under one lock, so every mutation is atomic
// from the caller's perspective.
type BillService interface {
	Current() model.Bill
	AddItem(name string, quantity int, unitPrice float64) (model.Bill, error)
	RemoveItem(itemID string) model.Bill
	SetTaxRate(ratePercent float64) model.Bill
	SetDetails(tableNumber, customerName string) model.Bill
	SetProfile(profile model.RestaurantProfile) model.Bill
	Finalize() (model.Bill, error)
	Reset() model.Bill
}

type billService struct {
	mu           sync.Mutex
	bill         model.Bill
	salesService SalesService
}

func NewBillService(profile model.RestaurantProfile, salesService SalesService) BillService {
	return &billService{
		bill:         newBill(profile),
		salesService: salesService,
	}
}

func newBill(profile model.RestaurantProfile) model.Bill {
	return model.Bill{
		Profile:        profile,
		Items:          []model.BillItem{},
		TaxRatePercent: model.DefaultTaxRatePercent,
		Date:           time.Now().Format(model.BillDateFormat),
	}
}

func (s *billService) Current() model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *billService) AddItem(name string, quantity int, unitPrice float64) (model.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		logger.Warn("Rejected bill item without a name", nil)
		return s.snapshot(), ErrItemNameRequired
	}
	if unitPrice <= 0 {
		logger.Warn("Rejected bill item with non-positive price", map[string]interface{}{
			"name":       name,
			"unit_price": unitPrice,
		})
		return s.snapshot(), ErrInvalidUnitPrice
	}
	if quantity < 1 {
		quantity = 1
	}

	item := model.BillItem{
		ID:        uuid.NewString(),
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: float64(quantity) * unitPrice,
	}
	s.bill.Items = append(s.bill.Items, item)
	s.recompute()

	logger.Info("Bill item added", map[string]interface{}{
		"item_id":    item.ID,
		"name":       item.Name,
		"quantity":   item.Quantity,
		"line_total": item.LineTotal,
	})
	return s.snapshot(), nil
}

// RemoveItem drops the item with the given id. A missing id is a no-op, not
// an error.
func (s *billService) RemoveItem(itemID string) model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.bill.Items[:0:0]
	for _, item := range s.bill.Items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(s.bill.Items) {
		logger.Debug("Bill item not found for removal", map[string]interface{}{
			"item_id": itemID,
		})
		return s.snapshot()
	}

	s.bill.Items = filtered
	s.recompute()

	logger.Info("Bill item removed", map[string]interface{}{
		"item_id": itemID,
	})
	return s.snapshot()
}

// SetTaxRate replaces the rate and recomputes. The engine does not clamp the
// rate; the API boundary restricts it to [0, 100].
func (s *billService) SetTaxRate(ratePercent float64) model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bill.TaxRatePercent = ratePercent
	s.recompute()

	logger.Debug("Tax rate updated", map[string]interface{}{
		"rate_percent": ratePercent,
	})
	return s.snapshot()
}

func (s *billService) SetDetails(tableNumber, customerName string) model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bill.TableNumber = tableNumber
	s.bill.CustomerName = customerName
	return s.snapshot()
}

func (s *billService) SetProfile(profile model.RestaurantProfile) model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bill.Profile = profile
	return s.snapshot()
}

// Finalize records the bill into the day's sales and returns it. The bill is
// kept as-is so the caller can still preview and export it; Reset starts the
// next one.
func (s *billService) Finalize() (model.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.bill.Items) == 0 {
		logger.Warn("Rejected finalize on empty bill", nil)
		return s.snapshot(), ErrEmptyBill
	}

	bill := s.snapshot()
	if err := s.salesService.RecordBill(bill); err != nil {
		logger.Error("Failed to record finalized bill", err, map[string]interface{}{
			"grand_total": bill.GrandTotal,
		})
		return bill, err
	}

	logger.Info("Bill finalized", map[string]interface{}{
		"items":       len(bill.Items),
		"grand_total": bill.GrandTotal,
	})
	return bill, nil
}

func (s *billService) Reset() model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.bill.Profile
	s.bill = newBill(profile)

	logger.Info("Bill reset", nil)
	return s.snapshot()
}

func (s *billService) recompute() {
	totals := ComputeTotals(s.bill.Items, s.bill.TaxRatePercent)
	s.bill.Subtotal = totals.Subtotal
	s.bill.TaxAmount = totals.TaxAmount
	s.bill.GrandTotal = totals.GrandTotal
}

// snapshot returns a copy whose items slice does not alias internal state.
// Callers must hold the lock.
func (s *billService) snapshot() model.Bill {
	bill := s.bill
	bill.Items = make([]model.BillItem, len(s.bill.Items))
	copy(bill.Items, s.bill.Items)
	return bill
}
