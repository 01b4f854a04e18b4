package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds carried in the "kind" claim.
const (
	KindUser         = "user"
	KindOrganization = "organization"
)

// AccessToken is a signed HS256 JWT and its expiry.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	ID    uint64
	Email string
	Kind  string
}

// NewAccessToken signs a token for the given principal. The claims are sub,
// email, kind, exp and iat.
func NewAccessToken(secret string, id uint64, email, kind string, ttl time.Duration) (AccessToken, error) {
	if secret == "" {
		return AccessToken{}, errors.New("jwt secret is empty")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(id, 10),
		"email": email,
		"kind":  kind,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret. Expired, malformed and
// wrongly signed tokens all yield ok == false.
func ParseAccessToken(secret, raw string) (Identity, bool) {
	if secret == "" || raw == "" {
		return Identity{}, false
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Identity{}, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, false
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return Identity{}, false
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, false
	}
	email, _ := claims["email"].(string)
	kind, _ := claims["kind"].(string)
	if kind != KindUser && kind != KindOrganization {
		return Identity{}, false
	}
	return Identity{ID: id, Email: email, Kind: kind}, true
}
