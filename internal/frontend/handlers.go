// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frontend

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/NathanielCodes365/GROCERYSTORE/internal/api"
	"github.com/NathanielCodes365/GROCERYSTORE/internal/cart"
	"github.com/NathanielCodes365/GROCERYSTORE/internal/session"
	"github.com/NathanielCodes365/GROCERYSTORE/internal/validator"
)

func (fe *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	log.Info("home")
	sess := fe.sess(r)

	products := fe.api.FetchProducts(r.Context())
	featured := products
	if len(featured) > 4 {
		featured = featured[:4]
	}

	fe.renderPage(w, r, sess, "home", "index", map[string]interface{}{
		"products": featured,
	})
}

func (fe *Server) shopHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	sess := fe.sess(r)
	query := r.URL.Query().Get("q")
	log.WithField("query", query).Debug("serving shop page")

	products := fe.api.FetchProducts(r.Context())
	if query != "" {
		products = filterProducts(products, query)
	}

	fe.renderPage(w, r, sess, "shop", "shop", map[string]interface{}{
		"products":      products,
		"query":         query,
		"result_count":  len(products),
		"alert_message": bannerMessage(r),
	})
}

// filterProducts is the storefront's search: a case-insensitive substring
// match over name and category against the full fetched set.
func filterProducts(products []*api.Product, query string) []*api.Product {
	q := strings.ToLower(query)
	out := make([]*api.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

func (fe *Server) offersHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	log.Debug("serving offers page")
	sess := fe.sess(r)

	products := fe.api.FetchProducts(r.Context())
	discounted := make([]*api.Product, 0, len(products))
	for _, p := range products {
		if p.Discount > 0 {
			discounted = append(discounted, p)
		}
	}

	fe.renderPage(w, r, sess, "offers", "offers", map[string]interface{}{
		"offers":        discounted,
		"alert_message": bannerMessage(r),
	})
}

type cartItemView struct {
	Item      *api.Product
	Quantity  int
	ItemTotal float64
	Dec       int
	Inc       int
}

func (fe *Server) viewCartHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	log.Debug("view user cart")
	sess := fe.sess(r)
	if _, ok := fe.requireAuth(w, sess); !ok {
		return
	}

	items := sess.Cart()
	if len(items) == 0 {
		fe.renderPage(w, r, sess, "cart", "cart", map[string]interface{}{
			"items":         []cartItemView{},
			"alert_message": bannerMessage(r),
		})
		return
	}

	// The cart holds only ids and quantities; prices come from the catalog
	// fetched for this render.
	products := fe.api.FetchProducts(r.Context())
	byID := make(map[string]*api.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	views := make([]cartItemView, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		views = append(views, cartItemView{
			Item:      p,
			Quantity:  it.Quantity,
			ItemTotal: p.Price * float64(it.Quantity),
			Dec:       it.Quantity - 1,
			Inc:       it.Quantity + 1,
		})
	}

	subtotal := cart.Subtotal(items, api.PriceIndex(products))
	fe.renderPage(w, r, sess, "cart", "cart", map[string]interface{}{
		"items":         views,
		"subtotal":      subtotal,
		"delivery_fee":  cart.DeliveryFee,
		"total":         subtotal + cart.DeliveryFee,
		"alert_message": bannerMessage(r),
	})
}

func (fe *Server) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	sess := fe.sess(r)
	if _, ok := sess.Token(); !ok {
		// No cart mutation happens for anonymous visitors.
		w.Header().Set("Location", "/login?login_required=true")
		w.WriteHeader(http.StatusFound)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || r.FormValue("quantity") == "" {
		quantity = 1
	}
	payload := validator.AddToCartPayload{
		ProductID: r.FormValue("product_id"),
		Quantity:  quantity,
	}
	if err := payload.Validate(); err != nil {
		renderHTTPError(log, r, w, errors.New(validator.Message(err)), http.StatusUnprocessableEntity)
		return
	}
	log.WithField("product", payload.ProductID).WithField("quantity", payload.Quantity).Debug("adding to cart")

	sess.SaveCart(cart.Add(sess.Cart(), payload.ProductID, payload.Quantity))

	target := "/shop?added=true"
	if strings.Contains(r.Referer(), "/offers") {
		target = "/offers?added=true"
	}
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}

func (fe *Server) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	sess := fe.sess(r)
	if _, ok := fe.requireAuth(w, sess); !ok {
		return
	}

	productID := r.FormValue("product_id")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || productID == "" {
		renderHTTPError(log, r, w, errors.New("invalid product_id or quantity"), http.StatusBadRequest)
		return
	}
	log.WithField("product_id", productID).WithField("quantity", quantity).Debug("updating cart item quantity")

	// Quantities below 1 leave the item as it was.
	sess.SaveCart(cart.SetQuantity(sess.Cart(), productID, quantity))
	w.Header().Set("Location", "/cart")
	w.WriteHeader(http.StatusFound)
}

func (fe *Server) removeFromCartHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	sess := fe.sess(r)
	if _, ok := fe.requireAuth(w, sess); !ok {
		return
	}

	productID := r.FormValue("product_id")
	log.WithField("product_id", productID).Debug("removing cart item")

	sess.SaveCart(cart.Remove(sess.Cart(), productID))
	w.Header().Set("Location", "/cart")
	w.WriteHeader(http.StatusFound)
}

func (fe *Server) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	log.Debug("placing order")
	sess := fe.sess(r)

	token, ok := sess.Token()
	if !ok {
		w.Header().Set("Location", "/login?login_required=true")
		w.WriteHeader(http.StatusFound)
		return
	}

	items := sess.Cart()
	if len(items) == 0 {
		// No request is issued for an empty cart.
		w.Header().Set("Location", "/cart?empty=true")
		w.WriteHeader(http.StatusFound)
		return
	}

	products := fe.api.FetchProducts(r.Context())
	total := cart.Total(items, api.PriceIndex(products))

	if _, err := fe.api.PlaceOrder(r.Context(), token, items, total); err != nil {
		// The cart is left untouched for a manual retry.
		renderHTTPError(log, r, w, errors.Wrap(err, "failed to complete the order"), http.StatusInternalServerError)
		return
	}

	sess.ClearCart()
	log.WithField("total", total).Info("order placed")
	w.Header().Set("Location", "/orders?placed=true")
	w.WriteHeader(http.StatusFound)
}

func (fe *Server) ordersHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	log.Debug("view order history")
	sess := fe.sess(r)
	token, ok := fe.requireAuth(w, sess)
	if !ok {
		return
	}

	orders := fe.api.FetchOrders(r.Context(), token)
	fe.renderPage(w, r, sess, "orders", "orders", map[string]interface{}{
		"orders":        orders,
		"alert_message": bannerMessage(r),
	})
}

func (fe *Server) reorderHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	sess := fe.sess(r)
	token, ok := fe.requireAuth(w, sess)
	if !ok {
		return
	}

	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		renderHTTPError(log, r, w, errors.New("order id not specified"), http.StatusBadRequest)
		return
	}
	log.WithField("order", orderID).Debug("reordering")

	if err := fe.api.Reorder(r.Context(), token, orderID); err != nil {
		renderHTTPError(log, r, w, err, http.StatusInternalServerError)
		return
	}

	// The server repopulates the cart; the cart page re-reads it.
	w.Header().Set("Location", "/cart?reordered=true")
	w.WriteHeader(http.StatusFound)
}

// requireAuth redirects to the login page when the session has no token.
func (fe *Server) requireAuth(w http.ResponseWriter, sess *session.Store) (string, bool) {
	token, ok := sess.Token()
	if !ok {
		w.Header().Set("Location", "/login")
		w.WriteHeader(http.StatusFound)
		return "", false
	}
	return token, true
}

// bannerMessage maps the post-redirect query flags onto the alert texts the
// storefront shows after a mutation.
func bannerMessage(r *http.Request) string {
	q := r.URL.Query()
	switch {
	case q.Get("added") == "true":
		return "Item added to cart!"
	case q.Get("reordered") == "true":
		return "Items added to cart!"
	case q.Get("placed") == "true":
		return "Order placed successfully!"
	case q.Get("empty") == "true":
		return "Your cart is empty"
	}
	return ""
}
