package handlers

import (
	"errors"
	"net/http"

	"lumino/internal/logger"
	"lumino/internal/models"
	"lumino/internal/services"
	helpers "lumino/internal/utils/helpres"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminToken godoc
// @Summary Получить админский токен
// @Description Dev-заглушка: выдаёт токен по username=admin без пароля.
// @Tags auth
// @Produce json
// @Param username query string true "Имя пользователя"
// @Success 200 {object} models.TokenResponse
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/admin/token [get]
func (h *AuthHandler) AdminToken(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	token, err := h.authService.IssueAdminToken(r.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			helpers.Error(w, http.StatusForbidden, "Недопустимый username")
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка выдачи токена", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка выдачи токена")
		return
	}

	helpers.JSON(w, http.StatusOK, models.TokenResponse{Token: token})
}
