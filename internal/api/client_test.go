package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NathanielCodes365/GROCERYSTORE/internal/cart"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(Config{BaseURL: ts.URL}, testLogger())
}

func TestLoginReturnsToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "nate@example.com", body.Email)
		assert.Equal(t, "hunter2", body.Password)
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer ts.Close()

	token, err := newTestClient(ts).Login(context.Background(), "nate@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLoginFailsOnNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Login(context.Background(), "nate@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
}

func TestRegisterSurfacesServerMessageVerbatim(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	}))
	defer ts.Close()

	err := newTestClient(ts).Register(context.Background(), RegisterRequest{Name: "Nate", Email: "nate@example.com", Password: "hunter2"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestRegisterFallsBackToFixedMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := newTestClient(ts).Register(context.Background(), RegisterRequest{Name: "Nate", Email: "nate@example.com", Password: "hunter2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration failed (status 500)")
}

func TestFetchProductsParsesCatalog(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		json.NewEncoder(w).Encode([]*Product{
			{ID: "p1", Name: "Apples", Price: 1.50, Category: "fruit"},
			{ID: "p2", Name: "Milk", Price: 2.00, Discount: 10, Category: "dairy"},
		})
	}))
	defer ts.Close()

	products := newTestClient(ts).FetchProducts(context.Background())
	require.Len(t, products, 2)
	assert.Equal(t, "Apples", products[0].Name)
	assert.InDelta(t, 2.00, products[1].Price, 1e-9)
}

func TestFetchProductsDegradesToEmptyOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	client := newTestClient(ts)

	assert.Empty(t, client.FetchProducts(context.Background()))

	// Unreachable backend degrades the same way.
	ts.Close()
	assert.Empty(t, client.FetchProducts(context.Background()))
}

func TestFetchOrdersAttachesBearerToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]*Order{
			{ID: "o1", Status: "Shipped", TotalAmount: 14.99},
		})
	}))
	defer ts.Close()

	orders := newTestClient(ts).FetchOrders(context.Background(), "tok-123")
	require.Len(t, orders, 1)
	assert.Equal(t, "Shipped", orders[0].Status)
}

func TestFetchOrdersDegradesToEmptyOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	assert.Empty(t, newTestClient(ts).FetchOrders(context.Background(), "tok-123"))
}

func TestPlaceOrderSubmitsItemsAndTotal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		var body struct {
			Items []cart.Item `json:"items"`
			Total float64     `json:"total"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []cart.Item{{ProductID: "p1", Quantity: 2}}, body.Items)
		assert.InDelta(t, 5.99, body.Total, 1e-9)
		json.NewEncoder(w).Encode(Order{ID: "o9", Status: "pending"})
	}))
	defer ts.Close()

	order, err := newTestClient(ts).PlaceOrder(context.Background(), "tok-123", []cart.Item{{ProductID: "p1", Quantity: 2}}, 5.99)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "o9", order.ID)
}

func TestPlaceOrderFailsOnNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "out of stock", http.StatusConflict)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).PlaceOrder(context.Background(), "tok-123", []cart.Item{{ProductID: "p1", Quantity: 1}}, 4.49)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 409")
	assert.Contains(t, err.Error(), "out of stock")
}

func TestReorderPostsToOrderEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/o7/reorder", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
	}))
	defer ts.Close()

	require.NoError(t, newTestClient(ts).Reorder(context.Background(), "tok-123", "o7"))
}

func TestReorderFailsOnNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	err := newTestClient(ts).Reorder(context.Background(), "tok-123", "gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reorder")
}

func TestOriginalPrice(t *testing.T) {
	p := &Product{Price: 8.00, Discount: 25}
	assert.InDelta(t, 10.00, p.OriginalPrice(), 1e-9)
}
