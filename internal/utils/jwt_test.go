package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateToken_ExpiryAroundTTL(t *testing.T) {
	token, err := GenerateToken("testsecret", "admin", "admin", 24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("testsecret"), nil
	}); err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("в токене нет exp")
	}

	want := time.Now().Add(24 * time.Hour).Unix()
	if diff := int64(exp) - want; diff < -5 || diff > 5 {
		t.Fatalf("exp отличается от now+24h на %d секунд", diff)
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("testsecret", "admin", "admin", time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	claims, err := ParseToken("testsecret", token)
	if err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}
	if claims.Subject != "admin" || claims.Role != "admin" {
		t.Fatalf("клеймы не совпали: %+v", claims)
	}
}

func TestParseToken_MissingClaims(t *testing.T) {
	// токен без sub/role — формально валидный, но payload недопустим
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("testsecret"))
	if err != nil {
		t.Fatalf("ошибка подписи: %v", err)
	}

	if _, err := ParseToken("testsecret", token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("токен без клеймов должен отклоняться, получено %v", err)
	}
}
