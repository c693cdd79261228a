package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/2ellamills/fitness-class/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	in := model.Actor{ID: "user-42", Email: "jo@example.com", Role: model.RoleAdmin}
	tok, err := NewAccessToken("secret", in, 15)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if d := time.Until(tok.Exp); d < 14*time.Minute || d > 15*time.Minute {
		t.Fatalf("exp in %s", d)
	}

	got, err := ParseAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *got != in {
		t.Fatalf("actor = %+v, want %+v", *got, in)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	good, _ := NewAccessToken("secret", model.Actor{ID: "u1"}, 5)
	expired, _ := NewAccessToken("secret", model.Actor{ID: "u1"}, -5)
	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "USER"}).SignedString([]byte("secret"))
	numericSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 7}).SignedString([]byte("secret"))
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"secret", expired.Token},
		"no subject":   {"secret", noSub},
		"numeric sub":  {"secret", numericSub},
		"alg none":     {"secret", none},
		"garbage":      {"secret", "not-a-jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseAccessToken(tc.secret, tc.raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v", err)
			}
		})
	}

	t.Run("default role", func(t *testing.T) {
		a, err := ParseAccessToken("secret", good.Token)
		if err != nil {
			t.Fatal(err)
		}
		if a.Role != model.RoleUser {
			t.Fatalf("role = %q", a.Role)
		}
	})
}
