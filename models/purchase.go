package models

import "time"

// Product is the snapshot of a platform product record taken when an item
// enters the cart. Price and stock are not re-validated client-side after this;
// the backend re-checks both at order approval time.
type Product struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	PriceCoins        int    `json:"price_coins"`
	ProductType       string `json:"product_type"`
	QuantityAvailable *int   `json:"quantity_available"`
	IsActive          bool   `json:"is_active"`
}

type OrderDetails struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// PurchaseRequest is the payload of one create-purchase-request remote call.
// One request is issued per cart line item at checkout.
type PurchaseRequest struct {
	ProductID    string       `json:"product_id"`
	Quantity     int          `json:"quantity"`
	OrderDetails OrderDetails `json:"order_details"`
}

// PurchaseReceipt carries the server-assigned fields returned by the platform.
// Everything beyond tx_no is opaque to this service.
type PurchaseReceipt struct {
	TxNo      string    `json:"tx_no"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PurchaseHistoryItem struct {
	TxNo            string    `json:"tx_no"`
	ProductName     string    `json:"product_name"`
	ProductType     string    `json:"product_type"`
	Quantity        int       `json:"quantity"`
	TotalPriceCoins int       `json:"total_price_coins"`
	Status          string    `json:"status"`
	IsLocked        bool      `json:"is_locked"`
	AdminNote       string    `json:"admin_note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
