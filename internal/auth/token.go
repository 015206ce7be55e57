package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/todo-service/internal/domain"
)

// Verification failures the gate maps to distinct responses. Any other error
// returned by Verify is unexpected.
var (
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. The secret must not be empty.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Claims describes JWT payload. The subject holds the decimal user id.
// exp is rounded up to the next whole second; expNs carries the exact expiry
// in Unix nanoseconds and takes precedence when present.
type Claims struct {
	Email          string `json:"email"`
	UserRole       string `json:"userRole"`
	ExpiresAtNanos int64  `json:"expNs,omitempty"`
	jwt.RegisteredClaims
}

// TTL returns the lifetime applied to issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue builds and signs a JWT for the user, expiring at now + ttl.
func (tm *TokenManager) Issue(userID int64, email string, role domain.UserRole, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email:          email,
		UserRole:       string(role),
		ExpiresAtNanos: expiresAt.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify checks the signature, then that now is strictly before expiry at
// nanosecond precision, and returns the identity carried by the token. No
// leeway is applied.
func (tm *TokenManager) Verify(tokenStr string, now time.Time) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token claims", ErrMalformedToken)
	}
	if claims.ExpiresAtNanos != 0 && !now.Before(time.Unix(0, claims.ExpiresAtNanos)) {
		return Identity{}, fmt.Errorf("%w: expired at %s", ErrExpiredToken, time.Unix(0, claims.ExpiresAtNanos).UTC())
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("subject claim %q: %w", claims.Subject, err)
	}
	role, err := domain.ParseUserRole(claims.UserRole)
	if err != nil {
		return Identity{}, fmt.Errorf("role claim: %w", err)
	}

	return Identity{UserID: userID, Email: claims.Email, Role: role}, nil
}

func (tm *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return tm.secret, nil
}

// ceilSecond rounds t up to a whole second, the resolution of the exp claim.
func ceilSecond(t time.Time) time.Time {
	whole := t.Truncate(time.Second)
	if whole.Before(t) {
		return whole.Add(time.Second)
	}
	return whole
}
