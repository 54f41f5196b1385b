package controllers

import (
	"context"
	"errors"

	"aidla/libs"
	"aidla/models"
	"aidla/services"

	"github.com/gin-gonic/gin"
)

// ProductFetcher is the slice of the backend platform the cart page needs:
// one product read per add, to snapshot name, price and remaining stock.
type ProductFetcher interface {
	GetProduct(ctx context.Context, token, productID string) (*models.Product, error)
}

type CartController struct {
	carts   *services.CartService
	backend ProductFetcher
}

func NewCartController(carts *services.CartService, backend ProductFetcher) *CartController {
	return &CartController{carts: carts, backend: backend}
}

func buildCartView(items []models.CartLineItem) models.CartView {
	violations := services.StockViolations(items)

	violating := map[string]bool{}
	violationIDs := []string{}
	for _, item := range violations {
		violating[item.ProductID] = true
		violationIDs = append(violationIDs, item.ProductID)
	}

	views := []models.CartItemView{}
	for _, item := range items {
		views = append(views, models.CartItemView{
			CartLineItem: item,
			CanDecrement: item.Quantity > 1,
			CanIncrement: !item.StockKnown() || item.Quantity < *item.QuantityAvailable,
			TooMany:      violating[item.ProductID],
		})
	}

	return models.CartView{
		Items:           views,
		TotalCoins:      services.CartTotal(items),
		StockViolations: violationIDs,
		CheckoutBlocked: len(items) == 0 || len(violationIDs) > 0,
	}
}

// GetCart godoc
// @Summary Get cart
// @Description Get the current user's cart with stepper flags and stock warnings
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	items := ctrl.carts.Load(c.Request.Context(), userID)

	c.JSON(200, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    buildCartView(items),
	})
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a product to the cart, or raise the quantity of the existing line item
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Item to add"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetString("user_id")
	token := c.GetString("session_token")

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "product_id is required"})
		return
	}

	product, err := ctrl.backend.GetProduct(c.Request.Context(), token, req.ProductID)
	if err != nil {
		var backendErr *libs.BackendError
		if errors.As(err, &backendErr) && backendErr.StatusCode == 404 {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(502, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !product.IsActive {
		c.JSON(400, gin.H{"success": false, "message": "Product is not available"})
		return
	}

	items := ctrl.carts.Add(c.Request.Context(), userID, *product, req.Quantity)

	c.JSON(201, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    buildCartView(items),
	})
}

// UpdateItem godoc
// @Summary Set line item quantity
// @Description Set the quantity of one line item; the value is clamped into the valid range
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path string true "Product ID"
// @Param request body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{product_id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("product_id")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "quantity is required"})
		return
	}

	items, err := ctrl.carts.SetQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if errors.Is(err, services.ErrItemNotFound) {
		c.JSON(404, gin.H{"success": false, "message": "Item not in cart"})
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Quantity updated",
		Data:    buildCartView(items),
	})
}

// RemoveItem godoc
// @Summary Remove line item
// @Description Remove one line item from the cart; removing an absent item is a no-op
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param product_id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{product_id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("product_id")

	items := ctrl.carts.Remove(c.Request.Context(), userID, productID)

	c.JSON(200, models.Response{
		Success: true,
		Message: "Item removed",
		Data:    buildCartView(items),
	})
}
