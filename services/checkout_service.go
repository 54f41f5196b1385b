package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"aidla/models"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("a checkout is already in progress")
)

// ValidationError marks a required checkout field that failed the non-empty
// check. Nothing is submitted while one exists.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// RemoteError wraps the first failed purchase-request call. Submitted counts
// the line items already accepted by the platform before the failure; those
// are not rolled back.
type RemoteError struct {
	Submitted int
	Err       error
}

func (e *RemoteError) Error() string {
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// PurchaseCreator is the slice of the backend platform checkout depends on.
type PurchaseCreator interface {
	CreatePurchaseRequest(ctx context.Context, token string, req models.PurchaseRequest) (*models.PurchaseReceipt, error)
}

// CheckoutService turns the cart into purchase requests: one remote call per
// line item, strictly sequential in cart order, stopping at the first failure.
// The cart is cleared only after every line item went through.
type CheckoutService struct {
	carts   *CartService
	backend PurchaseCreator

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutService(carts *CartService, backend PurchaseCreator) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		backend:  backend,
		inFlight: map[string]bool{},
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, userID, token string, req models.CheckoutRequest) (*models.CheckoutResult, error) {
	if !s.begin(userID) {
		return nil, ErrCheckoutInProgress
	}
	defer s.end(userID)

	items := s.carts.Load(ctx, userID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	fullName := strings.TrimSpace(req.FullName)
	phone := strings.TrimSpace(req.Phone)
	if fullName == "" {
		return nil, &ValidationError{Field: "full_name"}
	}
	if phone == "" {
		return nil, &ValidationError{Field: "phone"}
	}

	details := models.OrderDetails{
		FullName: fullName,
		Phone:    phone,
		Address:  strings.TrimSpace(req.Address),
		Notes:    strings.TrimSpace(req.Notes),
	}

	result := &models.CheckoutResult{Receipts: []models.PurchaseReceipt{}}

	for _, item := range items {
		receipt, err := s.backend.CreatePurchaseRequest(ctx, token, models.PurchaseRequest{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			OrderDetails: details,
		})
		if err != nil {
			// Fail fast: later items are never submitted, earlier ones stay
			// submitted, and the cart is left intact for a manual retry.
			log.Printf("[Checkout] submission stopped for %s after %d of %d items: %v",
				userID, result.Submitted, len(items), err)
			return result, &RemoteError{Submitted: result.Submitted, Err: err}
		}
		result.Receipts = append(result.Receipts, *receipt)
		result.Submitted++
	}

	s.carts.Clear(ctx, userID)
	result.CartCleared = true
	return result, nil
}

// begin reserves the user's submission slot. Only one batch per cart owner
// may be in flight at a time.
func (s *CheckoutService) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *CheckoutService) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, userID)
}
