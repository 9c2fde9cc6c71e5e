package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopgate/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the portal backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL. A zero timeout
// falls back to 15 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

var _ Client = (*HTTPClient)(nil)

// statusResult is the envelope of mutating order endpoints:
// {success, message?, order?}.
type statusResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Order   json.RawMessage `json:"order,omitempty"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	var out struct {
		Token   string          `json:"token"`
		Account json.RawMessage `json:"account"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return "", nil, err
	}
	account, err := NormalizeProfile(out.Account)
	if err != nil {
		return "", nil, err
	}
	return out.Token, account, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, shopName string) error {
	body := map[string]string{"email": email, "password": password, "shop_name": shopName}
	return c.do(ctx, http.MethodPost, "/register", "", body, nil)
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*models.Account, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/profile", token, nil, &raw); err != nil {
		return nil, err
	}
	return NormalizeProfile(raw)
}

func (c *HTTPClient) SubmitOnboarding(ctx context.Context, token string, fields map[string]string) error {
	return c.do(ctx, http.MethodPost, "/onboarding", token, fields, nil)
}

func (c *HTTPClient) Orders(ctx context.Context, token string) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Order(ctx context.Context, token, orderID string) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus issues the status transition and returns the order
// delta the backend included, if any. A {success:false} envelope becomes
// an *APIError with the backend's message.
func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, token, storageID string, status models.OrderStatus) (*models.Order, error) {
	var out statusResult
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, "/orders/"+storageID+"/status", token, body, &out); err != nil {
		return nil, err
	}
	return unpackStatusResult(&out)
}

func (c *HTTPClient) VerifyPickup(ctx context.Context, token, orderID, otp string) (*models.Order, error) {
	var out statusResult
	body := map[string]string{"order_id": orderID, "otp": otp}
	if err := c.do(ctx, http.MethodPost, "/verify-pickup", token, body, &out); err != nil {
		return nil, err
	}
	return unpackStatusResult(&out)
}

func unpackStatusResult(res *statusResult) (*models.Order, error) {
	if !res.Success {
		return nil, &APIError{Message: res.Message}
	}
	if len(res.Order) == 0 {
		return nil, nil
	}
	var order models.Order
	if err := json.Unmarshal(res.Order, &order); err != nil {
		return nil, fmt.Errorf("decode order delta: %w", err)
	}
	return &order, nil
}

func (c *HTTPClient) Products(ctx context.Context, token string) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, token string, p *models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/products", token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, token string, p *models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+p.ID, token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, token, nil, nil)
}

func (c *HTTPClient) ImageUploadURL(ctx context.Context, token string) (string, string, error) {
	var out struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/images/upload-url", token, nil, &out); err != nil {
		return "", "", err
	}
	return out.Key, out.URL, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *HTTPClient) Close() error { return nil }

// do performs one JSON request. Transport failures map to ErrUnavailable,
// 401 to ErrUnauthorized, and other non-2xx responses to *APIError with
// whatever {message} the body carried.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
