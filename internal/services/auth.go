package services

import (
	"context"
	"errors"
	"time"

	"lumino/internal/logger"
	"lumino/internal/utils"

	"go.uber.org/zap"
)

// AuthService выпускает и проверяет админские токены. Секрет и TTL
// передаются при создании — никакого глобального состояния.
type AuthService struct {
	secret string
	ttl    time.Duration
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{secret: secret, ttl: ttl}
}

// IssueAdminToken выдаёт токен с ролью admin.
//
// ВНИМАНИЕ: проверка сводится к сравнению username с литералом "admin",
// пароля нет. Это заглушка для разработки, до продакшена здесь должна
// появиться настоящая проверка учётных данных.
func (s *AuthService) IssueAdminToken(ctx context.Context, username string) (string, error) {
	log := logger.WithCtx(ctx)

	if username != "admin" {
		log.Warn("Отказ в выдаче токена: неизвестный username", zap.String("username", username))
		return "", ErrForbidden
	}

	token, err := utils.GenerateToken(s.secret, username, "admin", s.ttl)
	if err != nil {
		log.Error("Ошибка подписи токена", zap.Error(err))
		return "", err
	}

	log.Info("Выдан админский токен", zap.String("sub", username), zap.Duration("ttl", s.ttl))
	return token, nil
}

// VerifyToken проверяет подпись и срок действия. Просрочку и битую подпись
// логируем по-разному, но для вызывающего обе — отказ аутентификации.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*utils.Claims, error) {
	log := logger.WithCtx(ctx)

	claims, err := utils.ParseToken(s.secret, tokenString)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			log.Warn("Токен просрочен")
		} else {
			log.Warn("Невалидный токен", zap.Error(err))
		}
		return nil, err
	}

	return claims, nil
}
