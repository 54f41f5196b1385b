package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"aidla/config"
	"aidla/models"

	"github.com/google/uuid"
)

// BackendClient wraps the managed backend platform: product table reads and
// the remote procedures that carry all business logic (stock decrement,
// balance checks, purchase approval). This service never implements any of
// that logic itself.
type BackendClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// BackendError is a platform-side rejection. The platform's message string is
// surfaced to the user verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

func NewBackendClient() *BackendClient {
	return NewBackendClientWith(config.AppConfig.BackendURL, config.AppConfig.BackendAPIKey)
}

func NewBackendClientWith(baseURL, apiKey string) *BackendClient {
	// No request timeout: failures surface only through the platform's own
	// error responses, and submissions are never cancelled midway.
	return &BackendClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// GetProduct reads one product record for a cart snapshot.
func (c *BackendClient) GetProduct(ctx context.Context, token, productID string) (*models.Product, error) {
	var product models.Product
	path := "/tables/products/" + productID
	if err := c.do(ctx, http.MethodGet, path, token, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreatePurchaseRequest calls the create_purchase_request procedure for one
// line item. Success implies the platform reserved stock and recorded a
// pending request; failure carries the platform's rejection message.
func (c *BackendClient) CreatePurchaseRequest(ctx context.Context, token string, req models.PurchaseRequest) (*models.PurchaseReceipt, error) {
	var receipt models.PurchaseReceipt
	if err := c.do(ctx, http.MethodPost, "/rpc/create_purchase_request", token, req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListPurchaseHistory fetches the caller's purchase requests, newest first.
func (c *BackendClient) ListPurchaseHistory(ctx context.Context, token string, limit, offset int) ([]models.PurchaseHistoryItem, error) {
	payload := map[string]int{"limit": limit, "offset": offset}

	items := []models.PurchaseHistoryItem{}
	if err := c.do(ctx, http.MethodPost, "/rpc/list_purchase_history", token, payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *BackendClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Backend] %s %s -> %d", method, path, resp.StatusCode)
		return c.parseError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

func (c *BackendClient) parseError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}

	raw, err := io.ReadAll(resp.Body)
	if err == nil && json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		return &BackendError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	return &BackendError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("backend request failed with status %d", resp.StatusCode),
	}
}
