package auth

import (
	"net/http"
	"time"

	"campusevents/internal/domain"
)

// TokenFromCookieHeader returns the value of the session cookie in a raw Cookie
// header such as "theme=dark; auth_token=abc". It reports false when absent or empty.
func TokenFromCookieHeader(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	req := http.Request{Header: http.Header{"Cookie": {header}}}
	c, err := req.Cookie(domain.SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// SessionCookie builds the HTTP-only cookie that carries token for maxAge.
func SessionCookie(token string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedSessionCookie expires the session cookie immediately.
func ClearedSessionCookie(secure bool) *http.Cookie {
	c := SessionCookie("", 0, secure)
	c.MaxAge = -1 // emitted as Max-Age=0
	return c
}
