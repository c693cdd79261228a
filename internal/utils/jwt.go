package utils // package utils issues and verifies the bearer tokens the API accepts

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/2ellamills/fitness-class/internal/model"
)

// ErrInvalidToken covers every way a bearer token can fail verification.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed HS256 JWT and the moment it stops being accepted.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken signs a token for an actor.  Claims: sub (actor id), email,
// role, exp and iat.  Tokens are normally minted by the identity provider;
// this exists for cmd/token and tests.
func NewAccessToken(secret string, actor model.Actor, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   actor.ID,
		"email": actor.Email,
		"role":  actor.Role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns the actor it
// names.  Only HMAC signatures are accepted and sub must be a non-empty
// string.  A missing role defaults to USER.
func ParseAccessToken(secret, raw string) (*model.Actor, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = model.RoleUser
	}
	return &model.Actor{ID: sub, Email: email, Role: role}, nil
}
