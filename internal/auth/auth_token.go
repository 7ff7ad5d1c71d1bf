package auth

import (
	"fmt"
	"time"

	autherrors "github.com/YugandharPise/SME-HR/internal/auth/errors"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

// TokenManager issues and verifies HS256 tokens. Tokens are stateless;
// there is no revocation list, so a token lives until it expires.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *TokenManager) Issue(u store.User) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role.String(),
		"iat":     issuedAt.Unix(),
		"exp":     expiresAt.Unix(),
	}
	if u.EmployeeID != nil {
		claims["employee_id"] = *u.EmployeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry, then decodes the identity.
// A role outside the closed set makes the token invalid.
func (m *TokenManager) Verify(tokenString string) (rbac.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return rbac.Identity{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return rbac.Identity{}, autherrors.ErrInvalidToken
	}

	userID, ok := numericClaim(claims, "user_id")
	if !ok || userID <= 0 {
		return rbac.Identity{}, autherrors.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role, ok := store.ParseRole(roleStr)
	if !ok {
		return rbac.Identity{}, autherrors.ErrInvalidToken
	}

	identity := rbac.Identity{UserID: userID, Role: role}
	if _, present := claims["employee_id"]; present {
		employeeID, ok := numericClaim(claims, "employee_id")
		if !ok {
			return rbac.Identity{}, autherrors.ErrInvalidToken
		}
		identity.EmployeeID = &employeeID
	}
	return identity, nil
}

// JSON numbers decode as float64 in MapClaims.
func numericClaim(claims jwt.MapClaims, key string) (int64, bool) {
	v, ok := claims[key].(float64)
	if !ok || v != float64(int64(v)) {
		return 0, false
	}
	return int64(v), true
}
