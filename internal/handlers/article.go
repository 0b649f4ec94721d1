package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lumino/internal/logger"
	"lumino/internal/models"
	"lumino/internal/repository"
	"lumino/internal/services"
	helpers "lumino/internal/utils/helpres"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// GetFeatured godoc
// @Summary Получить избранную статью
// @Tags articles
// @Produce json
// @Success 200 {object} models.Article
// @Router /api/articles/featured [get]
func (h *ArticleHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetFeatured(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения избранной статьи", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения избранной статьи")
		return
	}
	if a == nil {
		// избранной статьи может не быть — это не ошибка
		helpers.JSON(w, http.StatusOK, map[string]string{"message": "Избранных статей нет"})
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// GetLatest godoc
// @Summary Получить последние статьи
// @Tags articles
// @Produce json
// @Param limit query int false "Максимум статей (дефолт 10)"
// @Success 200 {array} models.Article
// @Router /api/articles/latest [get]
func (h *ArticleHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	list, err := h.svc.GetLatest(r.Context(), limit)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения последних статей", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статей")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// List godoc
// @Summary Получить статьи с фильтрами
// @Tags articles
// @Produce json
// @Param category query string false "Категория"
// @Param status query string false "Статус"
// @Param limit query int false "Лимит (дефолт 20)"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.Article
// @Router /api/articles [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	f := models.ListFilter{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
		Limit:    queryInt(r, "limit", 20),
		Offset:   queryInt(r, "offset", 0),
	}

	list, err := h.svc.List(r.Context(), f)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения списка статей", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статей")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// GetBySlug godoc
// @Summary Получить статью по slug
// @Tags articles
// @Produce json
// @Param slug path string true "Slug статьи"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "Не найдено"
// @Router /api/articles/{slug} [get]
func (h *ArticleHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	a, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			helpers.Error(w, http.StatusNotFound, "Статья не найдена")
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка получения статьи по slug", zap.String("slug", slug), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статьи")
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// Create godoc
// @Summary Создать статью (только admin)
// @Tags admin-articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.ArticleRequest true "Данные статьи"
// @Success 201 {object} models.Article
// @Failure 400 {string} string "Ошибка запроса"
// @Failure 409 {string} string "Slug уже занят"
// @Router /api/admin/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при создании статьи", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "Ошибка создания статьи")
		return
	}

	helpers.JSON(w, http.StatusCreated, created)
}

// Update godoc
// @Summary Обновить статью (только admin)
// @Tags admin-articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID статьи"
// @Param input body models.ArticleRequest true "Новое содержимое"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "Не найдено"
// @Router /api/admin/articles/{id} [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при обновлении статьи", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err, "Ошибка обновления статьи")
		return
	}

	helpers.JSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Удалить статью (только admin)
// @Tags admin-articles
// @Security ApiKeyAuth
// @Param id path int true "ID статьи"
// @Success 204 "Удалено"
// @Failure 404 {string} string "Не найдено"
// @Router /api/admin/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Ошибка удаления статьи")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError переводит ошибки сервисного слоя в статус-коды.
func (h *ArticleHandler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Статья не найдена")
	case errors.Is(err, repository.ErrSlugTaken):
		helpers.Error(w, http.StatusConflict, "Статья с таким slug уже существует")
	default:
		logger.WithCtx(r.Context()).Error(fallback, zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, fallback)
	}
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
