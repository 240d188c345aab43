package utils // package utils provides helper functions for token issuing and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrTokenDecode is returned by the Extract* projections when a token
// cannot be parsed at all (malformed input, wrong algorithm, bad
// signature). Callers that only need a yes/no answer should use
// ValidateToken instead, which never returns an error.
var ErrTokenDecode = errors.New("token decode failed")

// NewToken builds and signs an HS256 JWT identifying a user. The subject
// claim carries the account email; uid and role ride alongside so the
// auth gate can attach them to the request without a user lookup.
func NewToken(secret, email string, userID uint64, role string, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  email,
		"uid":  userID,
		"role": role,
		"exp":  now.Add(time.Duration(ttlMin) * time.Minute).Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ValidateToken reports whether raw is a well-formed, unexpired token
// signed with secret whose subject matches expectedEmail. It fails
// closed: any parse or claim problem yields false, never an error.
func ValidateToken(secret, raw, expectedEmail string) bool {
	claims, err := parseClaims(secret, raw)
	if err != nil {
		return false
	}
	sub, ok := claims["sub"].(string)
	return ok && sub == expectedEmail
}

// ExtractEmail returns the subject claim of a token.
func ExtractEmail(secret, raw string) (string, error) {
	claims, err := parseClaims(secret, raw)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", ErrTokenDecode
	}
	return sub, nil
}

// ExtractUserID returns the uid claim of a token.
func ExtractUserID(secret, raw string) (uint64, error) {
	claims, err := parseClaims(secret, raw)
	if err != nil {
		return 0, err
	}
	// JSON numbers decode as float64.
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, ErrTokenDecode
	}
	return uint64(uid), nil
}

// ExtractRole returns the role claim of a token.
func ExtractRole(secret, raw string) (string, error) {
	claims, err := parseClaims(secret, raw)
	if err != nil {
		return "", err
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", ErrTokenDecode
	}
	return role, nil
}

// parseClaims parses and verifies raw, rejecting any signing method other
// than HMAC. Expiry is checked by the jwt library during Parse.
func parseClaims(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenDecode
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrTokenDecode
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenDecode
	}
	return claims, nil
}
