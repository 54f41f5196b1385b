package models

type AddCartItemRequest struct {
	ProductID string `json:"product_id" form:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" form:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Notes    string `json:"notes" form:"notes"`
}

// CartItemView is one line item as rendered to the client, with the stepper
// flags the cart page needs to enable or disable its controls.
type CartItemView struct {
	CartLineItem
	CanIncrement bool `json:"can_increment"`
	CanDecrement bool `json:"can_decrement"`
	TooMany      bool `json:"too_many"`
}

type CartView struct {
	Items           []CartItemView `json:"items"`
	TotalCoins      int            `json:"total_coins"`
	StockViolations []string       `json:"stock_violations"`
	CheckoutBlocked bool           `json:"checkout_blocked"`
}

type CheckoutResult struct {
	Receipts    []PurchaseReceipt `json:"receipts"`
	Submitted   int               `json:"submitted"`
	CartCleared bool              `json:"cart_cleared"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Error   string `json:"error,omitempty"`
}

type MetaData struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

type PaginationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    MetaData    `json:"meta"`
}
