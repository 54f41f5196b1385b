package controllers

import (
	"context"
	"strconv"

	"aidla/models"

	"github.com/gin-gonic/gin"
)

// HistoryFetcher reads the caller's purchase requests from the backend
// platform. The rows are server-assigned and rendered as-is.
type HistoryFetcher interface {
	ListPurchaseHistory(ctx context.Context, token string, limit, offset int) ([]models.PurchaseHistoryItem, error)
}

type HistoryController struct {
	backend HistoryFetcher
}

func NewHistoryController(backend HistoryFetcher) *HistoryController {
	return &HistoryController{backend: backend}
}

// GetHistory godoc
// @Summary Get purchase history
// @Description Get the current user's purchase requests with status and admin notes
// @Tags History
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /history [get]
func (ctrl *HistoryController) GetHistory(c *gin.Context) {
	token := c.GetString("session_token")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	items, err := ctrl.backend.ListPurchaseHistory(c.Request.Context(), token, limit, offset)
	if err != nil {
		c.JSON(502, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(200, models.PaginationResponse{
		Success: true,
		Message: "Purchase history retrieved",
		Data:    items,
		Meta: models.MetaData{
			Page:    page,
			Limit:   limit,
			Count:   len(items),
			HasMore: len(items) == limit,
		},
	})
}
