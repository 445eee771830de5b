package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the cost center a session token was issued to.
type Claims struct {
	CostCenter string `json:"cc"`
	jwt.RegisteredClaims
}

func (h *Handler) sessions() bool {
	return h.config != nil && h.config.Session.Secret != ""
}

func (h *Handler) issue(costCenter string) (string, error) {
	now := h.now().UTC()
	claims := Claims{
		CostCenter: costCenter,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   costCenter,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.config.Session.TTL.Duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(h.config.Session.Secret))
}

func (h *Handler) parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(h.config.Session.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(h.now))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// authorised reports whether the request carries a valid bearer token issued to the
// requested cost center.
func (h *Handler) authorised(header http.Header, costCenter string) bool {
	auth := strings.TrimSpace(header.Get("Authorization"))
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "Bearer ") {
		return false
	}

	claims, err := h.parse(strings.TrimSpace(auth[7:]))
	if err != nil {
		return false
	}

	return strings.EqualFold(claims.Subject, strings.TrimSpace(costCenter))
}
