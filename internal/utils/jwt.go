package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired — подпись верна, но срок действия вышел.
	ErrTokenExpired = errors.New("токен просрочен")
	// ErrTokenInvalid — подпись не сходится либо формат битый.
	ErrTokenInvalid = errors.New("невалидный токен")
)

// Claims — расшифрованное содержимое токена.
type Claims struct {
	Subject string
	Role    string
}

// GenerateToken создаёт подписанный HS256 токен с sub/role/exp/iat.
func GenerateToken(secret, subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(duration).Unix(),
		"iat":  time.Now().Unix(), // issued at — доп. уникальность
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия, возвращает клеймы.
// Просрочка и битая подпись — разные ошибки, наверх обе уходят как 401.
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	sub, ok1 := claims["sub"].(string)
	role, ok2 := claims["role"].(string)
	if !ok1 || !ok2 {
		return nil, ErrTokenInvalid
	}

	return &Claims{Subject: sub, Role: role}, nil
}
