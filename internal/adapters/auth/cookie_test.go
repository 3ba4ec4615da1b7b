package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromCookieHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"only cookie", "auth_token=abc", "abc", true},
		{"among others", "theme=dark; auth_token=eyJpZCI6MX0=; lang=ko", "eyJpZCI6MX0=", true},
		{"padding kept", "auth_token=YQ==", "YQ==", true},
		{"absent", "theme=dark", "", false},
		{"prefix of another name", "xauth_token=abc", "", false},
		{"empty value", "auth_token=", "", false},
		{"empty header", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TokenFromCookieHeader(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	http.SetCookie(rr, SessionCookie("tok", 7*24*time.Hour, true))
	header := rr.Header().Get("Set-Cookie")
	assert.Contains(t, header, "auth_token=tok")
	assert.Contains(t, header, "Max-Age=604800")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Lax")
	assert.Contains(t, header, "Path=/")

	rr = httptest.NewRecorder()
	http.SetCookie(rr, ClearedSessionCookie(false))
	header = rr.Header().Get("Set-Cookie")
	require.Contains(t, header, "auth_token=;")
	assert.Contains(t, header, "Max-Age=0")
	assert.NotContains(t, header, "Secure")
}
