package models

import "time"

// CartStorageKey prefixes the key-value entry holding one user's serialized cart.
const CartStorageKey = "aidla_cart_v1"

type CartLineItem struct {
	ProductID         string    `json:"product_id"`
	Name              string    `json:"name"`
	PriceCoins        int       `json:"price_coins"`
	Quantity          int       `json:"quantity"`
	ProductType       string    `json:"product_type"`
	QuantityAvailable *int      `json:"quantity_available,omitempty"`
	AddedAt           time.Time `json:"added_at"`
}

// StockKnown reports whether the line item carries a stock snapshot.
// A nil quantity_available means unconstrained (digital or unlimited items).
func (i CartLineItem) StockKnown() bool {
	return i.QuantityAvailable != nil
}
