// Package api is the gateway to the remote commerce API: one operation per
// resource, each a single request/response cycle carrying JSON. Read paths
// degrade to empty result sets on failure; write paths return errors for the
// caller to surface.
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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/NathanielCodes365/GROCERYSTORE/internal/cart"
)

const defaultTimeout = 10 * time.Second

// Config carries the gateway's explicit configuration; there is no
// package-level base URL.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api".
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

func NewClient(cfg Config, log logrus.FieldLogger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token via POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "auth service unavailable")
	}
	defer resp.Body.Close()
	if !is2xx(resp.StatusCode) {
		return "", errors.Errorf("login failed (status %d)", resp.StatusCode)
	}
	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "failed to decode login response")
	}
	return result.Token, nil
}

// Register creates an account via POST /auth/register. A non-2xx response
// surfaces the server-supplied message verbatim when the body carries one.
func (c *Client) Register(ctx context.Context, reg RegisterRequest) error {
	body, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "auth service unavailable")
	}
	defer resp.Body.Close()
	if !is2xx(resp.StatusCode) {
		var errResp struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Message != "" {
			return errors.New(errResp.Message)
		}
		return errors.Errorf("registration failed (status %d)", resp.StatusCode)
	}
	return nil
}

// FetchProducts returns the full catalog from GET /products. Any failure is
// logged and degrades to an empty slice; the caller never sees an error.
func (c *Client) FetchProducts(ctx context.Context) []*Product {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		c.log.WithField("error", err).Error("failed to build products request")
		return []*Product{}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithField("error", err).Warn("error fetching products")
		return []*Product{}
	}
	defer resp.Body.Close()
	if !is2xx(resp.StatusCode) {
		c.log.WithField("status", resp.StatusCode).Warn("error fetching products")
		return []*Product{}
	}
	var products []*Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		c.log.WithField("error", err).Warn("error decoding products")
		return []*Product{}
	}
	if products == nil {
		products = []*Product{}
	}
	return products
}

// FetchOrders returns the user's order history from GET /orders with bearer
// auth. Failures degrade to an empty slice like FetchProducts.
func (c *Client) FetchOrders(ctx context.Context, token string) []*Order {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders", nil)
	if err != nil {
		c.log.WithField("error", err).Error("failed to build orders request")
		return []*Order{}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithField("error", err).Warn("error fetching orders")
		return []*Order{}
	}
	defer resp.Body.Close()
	if !is2xx(resp.StatusCode) {
		c.log.WithField("status", resp.StatusCode).Warn("error fetching orders")
		return []*Order{}
	}
	var orders []*Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		c.log.WithField("error", err).Warn("error decoding orders")
		return []*Order{}
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders
}

type placeOrderRequest struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
}

// PlaceOrder submits the cart and its computed total via POST /orders.
func (c *Client) PlaceOrder(ctx context.Context, token string, items []cart.Item, total float64) (*Order, error) {
	body, err := json.Marshal(placeOrderRequest{Items: items, Total: total})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "checkout failed")
	}
	defer resp.Body.Close()
	if !is2xx(resp.StatusCode) {
		return nil, errors.Errorf("checkout failed: status %d: %s", resp.StatusCode, bodySnippet(resp.Body))
	}
	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		// Some deployments return an empty body on success; the order
		// confirmation is then only visible on the orders page.
		return nil, nil
	}
	return &order, nil
}

// Reorder asks the server to repopulate the cart from a past order via
// POST /orders/{id}/reorder.
func (c *Client) Reorder(ctx context.Context, token, orderID string) error {
	url := fmt.Sprintf("%s/orders/%s/reorder", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to reorder")
	}
	defer resp.Body.Close()
	if !is2xx(resp.StatusCode) {
		return errors.Errorf("failed to reorder: status %d", resp.StatusCode)
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status <= 299
}

func bodySnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}
