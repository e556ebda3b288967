package session

import (
	"net/http"
	"time"
)

// CookieName is the cookie that carries the session token.
const CookieName = "sessionId"

// SetCookie writes the session cookie on a response.
func SetCookie(w http.ResponseWriter, token string, maxAge time.Duration, isProduction bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns the empty string when the cookie is absent.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
