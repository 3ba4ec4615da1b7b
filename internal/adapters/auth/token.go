package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campusevents/internal/domain"
)

// Token formats accepted by NewTokenCodec.
const (
	FormatOpaque = "opaque"
	FormatJWT    = "jwt"
)

// NewTokenCodec builds the codec for format. The jwt format requires a secret.
func NewTokenCodec(format, secret string, ttl time.Duration) (domain.TokenCodec, error) {
	switch format {
	case "", FormatOpaque:
		return NewOpaqueCodec(), nil
	case FormatJWT:
		if secret == "" {
			return nil, fmt.Errorf("jwt token format requires a secret")
		}
		return NewJWTCodec(secret, ttl), nil
	default:
		return nil, fmt.Errorf("unknown token format %q", format)
	}
}

func checkPrincipal(p *domain.Principal) error {
	if p == nil || p.Email == "" || !p.Role.Valid() {
		return domain.ErrInvalidToken
	}
	return nil
}

type opaqueCodec struct{}

// NewOpaqueCodec returns a codec that base64-encodes the principal as JSON.
// The token is NOT signed: anyone holding one can forge another with a different role.
func NewOpaqueCodec() domain.TokenCodec {
	return opaqueCodec{}
}

func (opaqueCodec) Encode(p *domain.Principal) (string, error) {
	if err := checkPrincipal(p); err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (opaqueCodec) Decode(token string) (*domain.Principal, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	var p domain.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, domain.ErrInvalidToken
	}
	if err := checkPrincipal(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Name  string      `json:"name"`
}

type jwtCodec struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTCodec returns a codec that signs principals as HS256 JWTs valid for expiry.
// A token whose signature does not verify decodes to ErrTokenTampered.
func NewJWTCodec(secret string, expiry time.Duration) domain.TokenCodec {
	return &jwtCodec{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (c *jwtCodec) Encode(p *domain.Principal) (string, error) {
	if err := checkPrincipal(p); err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	now := c.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		},
		Email: p.Email,
		Role:  p.Role,
		Name:  p.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (c *jwtCodec) Decode(token string) (*domain.Principal, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, domain.ErrTokenTampered
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	p := &domain.Principal{ID: id, Email: claims.Email, Role: claims.Role, Name: claims.Name}
	if err := checkPrincipal(p); err != nil {
		return nil, err
	}
	return p, nil
}
