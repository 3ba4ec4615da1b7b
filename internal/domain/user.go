package domain

import (
	"context"
	"errors"
)

// Sentinel errors for authentication.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	// ErrTokenTampered is returned by codecs that can detect a modified token.
	ErrTokenTampered = errors.New("token signature mismatch")
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "auth_token"

// Role is an application role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Credential is an entry of the static login list. Password is plaintext.
type Credential struct {
	ID       int64  `yaml:"id"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     Role   `yaml:"role"`
	Name     string `yaml:"name"`
}

// Principal returns the public view of the credential.
func (c Credential) Principal() *Principal {
	return &Principal{ID: c.ID, Email: c.Email, Role: c.Role, Name: c.Name}
}

// Principal is the authenticated identity carried by a session token.
// swagger:model Principal
type Principal struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// IsAdmin reports whether p is an authenticated administrator.
func IsAdmin(p *Principal) bool {
	return p != nil && p.Role == RoleAdmin
}

// IsLoggedIn reports whether p is an authenticated principal.
func IsLoggedIn(p *Principal) bool {
	return p != nil
}

// CredentialStore looks up static credentials. It is read-only at runtime.
type CredentialStore interface {
	Lookup(email, password string) (*Credential, bool)
}

// TokenCodec turns a principal into a session token and back.
// Decode returns ErrInvalidToken (or ErrTokenTampered) instead of panicking on bad input.
type TokenCodec interface {
	Encode(p *Principal) (string, error)
	Decode(token string) (*Principal, error)
}

// AuthService defines login and session token handling.
type AuthService interface {
	ValidateCredentials(ctx context.Context, email, password string) (*Principal, error)
	CreateToken(p *Principal) (string, error)
	DecodeToken(token string) (*Principal, error)
	PrincipalFromCookieHeader(header string) *Principal
}
