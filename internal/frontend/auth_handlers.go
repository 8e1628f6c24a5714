// Copyright 2024 Google LLC
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

	"github.com/NathanielCodes365/GROCERYSTORE/internal/api"
	"github.com/NathanielCodes365/GROCERYSTORE/internal/validator"
)

// loginPageHandler renders the login page (GET /login).
func (fe *Server) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	sess := fe.sess(r)
	data := map[string]interface{}{}
	if r.URL.Query().Get("registered") == "true" {
		data["success_message"] = "Registration successful! Please log in."
	}
	if r.URL.Query().Get("login_required") == "true" {
		data["success_message"] = "Please login to add items to cart"
	}
	fe.renderPage(w, r, sess, "login", "login", data)
}

// loginSubmitHandler handles the login form submission (POST /login).
func (fe *Server) loginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	sess := fe.sess(r)
	email := r.FormValue("email")
	password := r.FormValue("password")

	payload := validator.LoginPayload{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		fe.renderPage(w, r, sess, "login", "login", map[string]interface{}{
			"login_error": validator.Message(err),
			"email":       email,
		})
		return
	}

	token, err := fe.api.Login(r.Context(), email, password)
	if err != nil {
		log.WithField("error", err).Warn("login failed")
		fe.renderPage(w, r, sess, "login", "login", map[string]interface{}{
			"login_error": err.Error(),
			"email":       email,
		})
		return
	}

	sess.SetToken(token)
	log.WithField("email", email).Info("user logged in successfully")
	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusFound)
}

// registerPageHandler renders the registration page (GET /register).
func (fe *Server) registerPageHandler(w http.ResponseWriter, r *http.Request) {
	fe.renderPage(w, r, fe.sess(r), "register", "register", map[string]interface{}{})
}

// registerSubmitHandler handles the registration form submission (POST /register).
func (fe *Server) registerSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := ctxLogger(r)
	sess := fe.sess(r)

	req := api.RegisterRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	payload := validator.RegisterPayload{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := payload.Validate(); err != nil {
		fe.renderPage(w, r, sess, "register", "register", map[string]interface{}{
			"register_error": validator.Message(err),
			"name":           req.Name,
			"email":          req.Email,
		})
		return
	}

	if err := fe.api.Register(r.Context(), req); err != nil {
		log.WithField("error", err).Warn("registration failed")
		fe.renderPage(w, r, sess, "register", "register", map[string]interface{}{
			"register_error": err.Error(),
			"name":           req.Name,
			"email":          req.Email,
		})
		return
	}

	log.WithField("email", req.Email).Info("user registered successfully")
	w.Header().Set("Location", "/login?registered=true")
	w.WriteHeader(http.StatusFound)
}

// logoutHandler drops the session token and returns to the home page
// (GET /logout). The cart key is left in place for the next login.
func (fe *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	ctxLogger(r).Debug("logging out")
	fe.sess(r).ClearToken()
	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusFound)
}
