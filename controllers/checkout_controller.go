package controllers

import (
	"errors"

	"aidla/models"
	"aidla/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// Checkout godoc
// @Summary Submit checkout
// @Description Submit one purchase request per cart line item, sequentially and fail-fast
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Buyer contact and delivery details"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	token := c.GetString("session_token")

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	result, err := ctrl.checkout.Checkout(c.Request.Context(), userID, token, req)
	if err != nil {
		var validationErr *services.ValidationError
		var remoteErr *services.RemoteError

		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(400, models.ErrorResponse{Success: false, Message: "Cart is empty"})
		case errors.As(err, &validationErr):
			c.JSON(400, models.ErrorResponse{
				Success: false,
				Message: validationErr.Error(),
				Field:   validationErr.Field,
			})
		case errors.Is(err, services.ErrCheckoutInProgress):
			c.JSON(409, models.ErrorResponse{Success: false, Message: err.Error()})
		case errors.As(err, &remoteErr):
			// The platform's message goes out verbatim; the cart stays intact
			// and already-submitted lines are reported, not retracted.
			c.JSON(502, gin.H{
				"success":   false,
				"message":   remoteErr.Error(),
				"submitted": remoteErr.Submitted,
			})
		default:
			c.JSON(500, models.ErrorResponse{Success: false, Message: "Checkout failed", Error: err.Error()})
		}
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "Purchase requests created",
		Data:    result,
	})
}
