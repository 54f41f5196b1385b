package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"aidla/models"
	"aidla/repositories"
	"aidla/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurchases struct {
	mu     sync.Mutex
	calls  int
	failAt int // 1-based call index that fails; 0 means never
}

func (f *fakePurchases) CreatePurchaseRequest(ctx context.Context, token string, req models.PurchaseRequest) (*models.PurchaseReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.failAt != 0 && f.calls >= f.failAt {
		return nil, errors.New("coin balance is insufficient")
	}
	return &models.PurchaseReceipt{TxNo: "tx-1", ProductID: req.ProductID, Quantity: req.Quantity, Status: "pending"}, nil
}

func newCheckoutTestRouter(backend *fakePurchases) (*gin.Engine, *services.CartService) {
	gin.SetMode(gin.TestMode)

	carts := services.NewCartService(repositories.NewMemoryCartRepository())
	checkout := services.NewCheckoutService(carts, backend)
	ctrl := NewCheckoutController(checkout)

	router := gin.New()
	router.Use(testIdentity("u1"))
	router.POST("/checkout", ctrl.Checkout)

	return router, carts
}

func TestCheckoutHandlerSuccess(t *testing.T) {
	backend := &fakePurchases{}
	router, carts := newCheckoutTestRouter(backend)
	ctx := context.Background()

	carts.Add(ctx, "u1", models.Product{ID: "p1", Name: "Miner Rig", PriceCoins: 100}, 1)
	carts.Add(ctx, "u1", models.Product{ID: "p2", Name: "Booster", PriceCoins: 50}, 2)

	rec := doJSON(router, http.MethodPost, "/checkout", models.CheckoutRequest{FullName: "Jin Park", Phone: "010-1234-5678"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool                  `json:"success"`
		Data    models.CheckoutResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, 2, envelope.Data.Submitted)
	assert.True(t, envelope.Data.CartCleared)
	assert.Empty(t, carts.Load(ctx, "u1"))
}

func TestCheckoutHandlerMissingField(t *testing.T) {
	backend := &fakePurchases{}
	router, carts := newCheckoutTestRouter(backend)

	carts.Add(context.Background(), "u1", models.Product{ID: "p1", PriceCoins: 100}, 1)

	rec := doJSON(router, http.MethodPost, "/checkout", models.CheckoutRequest{FullName: "", Phone: "010-1234-5678"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "full_name", body.Field)
	assert.Zero(t, backend.calls)
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	backend := &fakePurchases{}
	router, _ := newCheckoutTestRouter(backend)

	rec := doJSON(router, http.MethodPost, "/checkout", models.CheckoutRequest{FullName: "Jin Park", Phone: "010-1234-5678"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart is empty")
	assert.Zero(t, backend.calls)
}

func TestCheckoutHandlerRemoteFailure(t *testing.T) {
	backend := &fakePurchases{failAt: 2}
	router, carts := newCheckoutTestRouter(backend)
	ctx := context.Background()

	carts.Add(ctx, "u1", models.Product{ID: "p1", PriceCoins: 100}, 1)
	carts.Add(ctx, "u1", models.Product{ID: "p2", PriceCoins: 50}, 1)
	carts.Add(ctx, "u1", models.Product{ID: "p3", PriceCoins: 25}, 1)

	rec := doJSON(router, http.MethodPost, "/checkout", models.CheckoutRequest{FullName: "Jin Park", Phone: "010-1234-5678"})
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Submitted int    `json:"submitted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.False(t, body.Success)
	assert.Equal(t, "coin balance is insufficient", body.Message)
	assert.Equal(t, 1, body.Submitted)

	// Fail-fast: the third item was never attempted and the cart survives.
	assert.Equal(t, 2, backend.calls)
	assert.Len(t, carts.Load(ctx, "u1"), 3)
}

func TestCheckoutHandlerInvalidJSON(t *testing.T) {
	backend := &fakePurchases{}
	router, _ := newCheckoutTestRouter(backend)

	rec := doJSON(router, http.MethodPost, "/checkout", "not-an-object")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, backend.calls)
}
