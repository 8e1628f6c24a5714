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
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NathanielCodes365/GROCERYSTORE/internal/cart"
	"github.com/NathanielCodes365/GROCERYSTORE/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(template.FuncMap{
		"price":      func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"mul":        func(p float64, q int) float64 { return p * float64(q) },
		"lower":      strings.ToLower,
		"formatDate": formatOrderDate,
	}).ParseFS(templateFS, "templates/*.html"))

// formatOrderDate renders a server timestamp for display, echoing the raw
// value when it is not RFC 3339.
func formatOrderDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}

func renderHTTPError(log logrus.FieldLogger, r *http.Request, w http.ResponseWriter, err error, code int) {
	log.WithField("error", err).Error("request error")
	errMsg := fmt.Sprintf("%+v", err)

	w.WriteHeader(code)

	if templateErr := templates.ExecuteTemplate(w, "error", map[string]interface{}{
		"error":       errMsg,
		"status_code": code,
		"status":      http.StatusText(code),
		"currentYear": time.Now().Year(),
	}); templateErr != nil {
		log.Error(templateErr)
	}
}

// injectCommonTemplateData supplies the header and footer state every page
// needs: nav highlighting, the cart-count badge, and the session greeting.
func (fe *Server) injectCommonTemplateData(r *http.Request, sess *session.Store, page string, payload map[string]interface{}) map[string]interface{} {
	token, loggedIn := sess.Token()
	username := ""
	if loggedIn {
		username = session.DisplayName(token)
	}
	data := map[string]interface{}{
		"session_id":  sessionID(r),
		"request_id":  requestID(r),
		"page":        page,
		"logged_in":   loggedIn,
		"username":    username,
		"cart_count":  cart.Count(sess.Cart()),
		"currentYear": time.Now().Year(),
	}
	for k, v := range payload {
		data[k] = v
	}
	return data
}

func (fe *Server) renderPage(w http.ResponseWriter, r *http.Request, sess *session.Store, name, page string, payload map[string]interface{}) {
	if err := templates.ExecuteTemplate(w, name, fe.injectCommonTemplateData(r, sess, page, payload)); err != nil {
		ctxLogger(r).Error(err)
	}
}
