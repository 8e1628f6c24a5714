package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// DisplayName pulls the user's name out of the token's payload segment for
// the header greeting. The decode is deliberately unverified: no signature or
// expiry check happens client-side, so any well-formed payload is read.
func DisplayName(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// Tokens minted with padded encoding still decode.
		payload, err = base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			return ""
		}
	}
	var claims struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ""
	}
	return claims.Name
}
