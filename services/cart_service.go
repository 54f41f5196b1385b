package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"aidla/models"
	"aidla/repositories"
)

var ErrItemNotFound = errors.New("item not in cart")

// CartService owns the persisted cart and enforces its invariants on every
// mutation: one line item per product id, quantity >= 1, and quantity capped
// by the last-known stock snapshot. Storage failures are swallowed; the cart
// is a client cache and the backend stays authoritative for stock and price.
type CartService struct {
	repo repositories.CartRepository
}

func NewCartService(repo repositories.CartRepository) *CartService {
	return &CartService{repo: repo}
}

func cartKey(userID string) string {
	return models.CartStorageKey + ":" + userID
}

// Load reads the persisted cart. Missing, unreadable or malformed data comes
// back as an empty cart; the result is always normalized before use.
func (s *CartService) Load(ctx context.Context, userID string) []models.CartLineItem {
	data, err := s.repo.Get(ctx, cartKey(userID))
	if err != nil {
		log.Printf("[Cart] read failed for %s: %v", userID, err)
		return []models.CartLineItem{}
	}
	if len(data) == 0 {
		return []models.CartLineItem{}
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[Cart] malformed cart data for %s, resetting: %v", userID, err)
		s.persist(ctx, userID, []models.CartLineItem{})
		return []models.CartLineItem{}
	}

	items, changed := normalizeItems(items)
	if changed {
		s.persist(ctx, userID, items)
	}
	return items
}

// Add puts a product in the cart, or raises the quantity of the existing line
// item for the same product id. The product snapshot (name, price, stock) is
// refreshed from the given record on every add.
func (s *CartService) Add(ctx context.Context, userID string, product models.Product, quantity int) []models.CartLineItem {
	if quantity < 1 {
		quantity = 1
	}

	items := s.Load(ctx, userID)

	found := false
	for i := range items {
		if items[i].ProductID != product.ID {
			continue
		}
		found = true
		items[i].Name = product.Name
		items[i].PriceCoins = product.PriceCoins
		items[i].ProductType = product.ProductType
		items[i].QuantityAvailable = copyStock(product.QuantityAvailable)
		items[i].Quantity = clampQuantity(items[i].QuantityAvailable, items[i].Quantity+quantity)
		break
	}

	if !found {
		stock := copyStock(product.QuantityAvailable)
		items = append(items, models.CartLineItem{
			ProductID:         product.ID,
			Name:              product.Name,
			PriceCoins:        product.PriceCoins,
			Quantity:          clampQuantity(stock, quantity),
			ProductType:       product.ProductType,
			QuantityAvailable: stock,
			AddedAt:           time.Now(),
		})
	}

	s.persist(ctx, userID, items)
	return items
}

// SetQuantity clamps the requested quantity into [1, stock] when stock is
// known, and to >= 1 otherwise. Out-of-range requests are corrected silently.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, quantity int) ([]models.CartLineItem, error) {
	items := s.Load(ctx, userID)

	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		items[i].Quantity = clampQuantity(items[i].QuantityAvailable, quantity)
		s.persist(ctx, userID, items)
		return items, nil
	}

	return items, ErrItemNotFound
}

// Remove deletes the line item for the product id. Removing an absent id is
// a no-op.
func (s *CartService) Remove(ctx context.Context, userID, productID string) []models.CartLineItem {
	items := s.Load(ctx, userID)

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if len(kept) != len(items) {
		s.persist(ctx, userID, kept)
	}
	return kept
}

// Clear empties the cart. Called exactly once, after all line items of a
// checkout have been submitted successfully.
func (s *CartService) Clear(ctx context.Context, userID string) {
	if err := s.repo.Delete(ctx, cartKey(userID)); err != nil {
		log.Printf("[Cart] clear failed for %s: %v", userID, err)
	}
}

func (s *CartService) persist(ctx context.Context, userID string, items []models.CartLineItem) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("[Cart] encode failed for %s: %v", userID, err)
		return
	}
	if err := s.repo.Set(ctx, cartKey(userID), data); err != nil {
		log.Printf("[Cart] persist failed for %s: %v", userID, err)
	}
}

// CartTotal recomputes the running total from the line items. There is no
// cached total field anywhere, so the sum can never drift.
func CartTotal(items []models.CartLineItem) int {
	total := 0
	for _, item := range items {
		total += item.PriceCoins * item.Quantity
	}
	return total
}

// StockViolations returns the line items whose known stock is zero or below
// the current quantity. Read-only: violations block checkout but never mutate
// or delete the offending line.
func StockViolations(items []models.CartLineItem) []models.CartLineItem {
	violations := []models.CartLineItem{}
	for _, item := range items {
		if !item.StockKnown() {
			continue
		}
		if *item.QuantityAvailable == 0 || item.Quantity > *item.QuantityAvailable {
			violations = append(violations, item)
		}
	}
	return violations
}

// clampQuantity forces quantity into [1, stock]. With zero stock the floor
// still wins: the line stays at quantity 1 and surfaces as a visible
// violation instead of being deleted silently.
func clampQuantity(stock *int, quantity int) int {
	if quantity < 1 {
		quantity = 1
	}
	if stock != nil {
		ceiling := *stock
		if ceiling < 1 {
			ceiling = 1
		}
		if quantity > ceiling {
			quantity = ceiling
		}
	}
	return quantity
}

// normalizeItems repairs a loaded cart: drops entries without a product id,
// collapses duplicate product ids onto the first occurrence, floors prices
// and stock at zero and clamps every quantity. Reports whether anything had
// to change.
func normalizeItems(items []models.CartLineItem) ([]models.CartLineItem, bool) {
	changed := false
	seen := map[string]bool{}
	normalized := []models.CartLineItem{}

	for _, item := range items {
		if item.ProductID == "" || seen[item.ProductID] {
			changed = true
			continue
		}
		seen[item.ProductID] = true

		if item.PriceCoins < 0 {
			item.PriceCoins = 0
			changed = true
		}
		if item.QuantityAvailable != nil && *item.QuantityAvailable < 0 {
			zero := 0
			item.QuantityAvailable = &zero
			changed = true
		}
		if fixed := clampQuantity(item.QuantityAvailable, item.Quantity); fixed != item.Quantity {
			item.Quantity = fixed
			changed = true
		}

		normalized = append(normalized, item)
	}

	return normalized, changed
}

func copyStock(stock *int) *int {
	if stock == nil {
		return nil
	}
	copied := *stock
	return &copied
}
