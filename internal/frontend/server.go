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

// Package frontend serves the storefront pages: it fetches data through the
// API gateway, reads and mutates the session-held cart, and renders HTML.
package frontend

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/NathanielCodes365/GROCERYSTORE/internal/api"
	"github.com/NathanielCodes365/GROCERYSTORE/internal/session"
)

const (
	cookieMaxAge = 60 * 60 * 48

	cookiePrefix    = "grocery_"
	cookieSessionID = cookiePrefix + "session-id"
)

// Server wires the page handlers to the API gateway and the session backend.
type Server struct {
	api      *api.Client
	sessions session.Backend
	log      *logrus.Logger
}

func New(client *api.Client, sessions session.Backend, log *logrus.Logger) *Server {
	return &Server{api: client, sessions: sessions, log: log}
}

// Routes builds the page router. Exactly one page handler matches each of the
// fixed paths; unmatched paths fall through to the router's 404.
func (fe *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", fe.homeHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/shop", fe.shopHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/offers", fe.offersHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/cart", fe.viewCartHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/orders", fe.ordersHandler).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc("/cart/add", fe.addToCartHandler).Methods(http.MethodPost)
	r.HandleFunc("/cart/update", fe.updateCartItemHandler).Methods(http.MethodPost)
	r.HandleFunc("/cart/remove", fe.removeFromCartHandler).Methods(http.MethodPost)
	r.HandleFunc("/cart/checkout", fe.checkoutHandler).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/reorder", fe.reorderHandler).Methods(http.MethodPost)

	r.HandleFunc("/login", fe.loginPageHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/login", fe.loginSubmitHandler).Methods(http.MethodPost)
	r.HandleFunc("/register", fe.registerPageHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/register", fe.registerSubmitHandler).Methods(http.MethodPost)
	r.HandleFunc("/logout", fe.logoutHandler).Methods(http.MethodGet)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static/"))))
	r.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "User-agent: *\nDisallow: /") })
	r.HandleFunc("/_healthz", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "ok") })
	return r
}

// Handler wraps the router with the middleware chain: request logging, then
// session-id assignment, then OTel tracing outermost.
func (fe *Server) Handler() http.Handler {
	var handler http.Handler = fe.Routes()
	handler = &logHandler{log: fe.log, next: handler}    // add logging
	handler = ensureSessionID(handler)                   // add session ID
	handler = otelhttp.NewHandler(handler, "frontend")   // add OTel tracing
	return handler
}

// sess binds a typed session store to the request's session id.
func (fe *Server) sess(r *http.Request) *session.Store {
	return session.NewStore(fe.sessions.ForSession(sessionID(r)), ctxLogger(r))
}
