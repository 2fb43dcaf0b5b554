// Package backend is the typed HTTP client for the marketplace backend
// API. The gateway owns no business logic or persistence: every data
// operation here is a thin call with the caller's bearer token attached.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client represents an HTTP client for the marketplace backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// APIError is a non-2xx response from the backend, with the backend's
// message when one was decodable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// envelope is the backend's standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do executes a backend request and returns the raw response body for
// 2xx responses. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body []byte) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(respBody, &env) == nil {
			apiErr.Message = env.Message
		}
		return nil, apiErr
	}

	return respBody, nil
}

// get issues a token-authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, token, nil)
}

// send issues a token-authenticated request with a JSON body.
func (c *Client) send(ctx context.Context, method, path, token string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, method, path, nil, token, body)
}

// LoginResult is the outcome of a credential exchange.
type LoginResult struct {
	Success     bool
	Message     string
	AccessToken string
}

// loginRequest is the login request body
type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

// loginData is the data portion of a successful login response
type loginData struct {
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for an access token. A backend rejection
// (401/400) is a failed LoginResult, not an error; errors are reserved
// for network failures and unexpected statuses.
func (c *Client) Login(ctx context.Context, loginID, password, accountType string) (*LoginResult, error) {
	reqBody, err := json.Marshal(loginRequest{
		LoginID:  loginID,
		Password: password,
		Type:     accountType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", reqBody)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return &LoginResult{Success: false, Message: apiErr.Message}, nil
		}
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := &LoginResult{
		Success: env.Success,
		Message: env.Message,
	}
	if env.Data != nil {
		var data loginData
		if err := json.Unmarshal(env.Data, &data); err == nil {
			result.AccessToken = data.AccessToken
		}
	}

	return result, nil
}

// Vendor represents the vendor details returned by the backend
type Vendor struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Categories []string `json:"categories"`
}

// VendorDetails fetches the authenticated vendor's profile
func (c *Client) VendorDetails(ctx context.Context, token string) (*Vendor, error) {
	respBody, err := c.get(ctx, "/vendor/me", nil, token)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var vendor Vendor
	if err := json.Unmarshal(env.Data, &vendor); err != nil {
		return nil, fmt.Errorf("failed to decode vendor details: %w", err)
	}

	return &vendor, nil
}

// VendorCategories fetches the vendor's enabled category set
func (c *Client) VendorCategories(ctx context.Context, token string) ([]string, error) {
	vendor, err := c.VendorDetails(ctx, token)
	if err != nil {
		return nil, err
	}
	if vendor.Categories == nil {
		return []string{}, nil
	}
	return vendor.Categories, nil
}

// ListProducts lists catalog products with search/pagination passthrough
func (c *Client) ListProducts(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/products", query, token)
}

// GetProduct fetches a single product
func (c *Client) GetProduct(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.get(ctx, "/products/"+url.PathEscape(id), nil, token)
}

// AdjustStock forwards a stock adjustment for a product
func (c *Client) AdjustStock(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, "/products/"+url.PathEscape(id)+"/stock", token, body)
}

// ListLensSolutions lists lens solution products
func (c *Client) ListLensSolutions(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/lens-solutions", query, token)
}

// ListAccessories lists accessory products
func (c *Client) ListAccessories(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/accessories", query, token)
}

// ListOrders lists the caller's orders
func (c *Client) ListOrders(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/orders", query, token)
}

// GetOrder fetches a single order
func (c *Client) GetOrder(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.get(ctx, "/orders/"+url.PathEscape(id), nil, token)
}

// UpdateOrderStatus forwards an order status transition
func (c *Client) UpdateOrderStatus(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", token, body)
}

// ListCoupons lists coupons
func (c *Client) ListCoupons(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/coupons", query, token)
}

// CreateCoupon forwards a coupon creation
func (c *Client) CreateCoupon(ctx context.Context, token string, body json.RawMessage) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, "/coupons", token, body)
}

// DeleteCoupon forwards a coupon deletion
func (c *Client) DeleteCoupon(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.send(ctx, http.MethodDelete, "/coupons/"+url.PathEscape(id), token, nil)
}

// UpdateVendorSettings forwards a vendor settings update
func (c *Client) UpdateVendorSettings(ctx context.Context, token string, body json.RawMessage) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPatch, "/vendor/settings", token, body)
}
