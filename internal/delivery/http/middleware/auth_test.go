package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService resolves a fixed cookie header to a principal.
type fakeAuthService struct {
	domain.AuthService
	header    string
	principal *domain.Principal
}

func (f *fakeAuthService) PrincipalFromCookieHeader(header string) *domain.Principal {
	if header == f.header {
		return f.principal
	}
	return nil
}

var (
	admin   = &domain.Principal{ID: 1, Email: "admin@sunmoon.ac.kr", Role: domain.RoleAdmin, Name: "Admin User"}
	student = &domain.Principal{ID: 2, Email: "student@sunmoon.ac.kr", Role: domain.RoleUser, Name: "Student User"}
)

func TestSession(t *testing.T) {
	auth := &fakeAuthService{header: "auth_token=good", principal: student}

	tests := []struct {
		name   string
		cookie string
		want   *domain.Principal
	}{
		{"valid cookie", "auth_token=good", student},
		{"no cookie", "", nil},
		{"unknown token", "auth_token=bad", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.Principal
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got = PrincipalFromContext(r.Context())
			})
			req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			Session(auth, next).ServeHTTP(httptest.NewRecorder(), req)

			assert.True(t, nextCalled, "anonymous requests still reach the handler")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name         string
		principal    *domain.Principal
		wantStatus   int
		wantBodyCode string
		nextCalled   bool
	}{
		{"admin passes", admin, http.StatusOK, "", true},
		{"anonymous is unauthorized", nil, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, false},
		{"student is forbidden", student, http.StatusForbidden, helpers.ErrCodeForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodPost, "http://test/events", nil)
			if tt.principal != nil {
				req = req.WithContext(SetPrincipal(context.Background(), tt.principal))
			}
			rr := httptest.NewRecorder()

			RequireAdmin(next)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}
