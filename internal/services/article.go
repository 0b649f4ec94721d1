package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"lumino/internal/logger"
	"lumino/internal/models"
	"lumino/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultLatestLimit = 10
	defaultListLimit   = 20
	defaultStatus      = "draft"
)

type ArticleService interface {
	GetFeatured(ctx context.Context) (*models.Article, error)
	GetLatest(ctx context.Context, limit int) ([]*models.Article, error)
	List(ctx context.Context, f models.ListFilter) ([]*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleService struct {
	repo repository.ArticleRepo
}

func NewArticleService(repo repository.ArticleRepo) ArticleService {
	return &articleService{repo: repo}
}

func (s *articleService) GetFeatured(ctx context.Context) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение избранной статьи")

	a, err := s.repo.GetFeatured(ctx)
	if err != nil {
		log.Error("Ошибка получения избранной статьи (repo)", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) GetLatest(ctx context.Context, limit int) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)

	if limit < 0 {
		limit = defaultLatestLimit
	}
	log.Debug("Получение последних статей", zap.Int("limit", limit))

	list, err := s.repo.GetLatest(ctx, limit)
	if err != nil {
		log.Error("Ошибка получения последних статей (repo)", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *articleService) List(ctx context.Context, f models.ListFilter) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)

	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	log.Debug("Получение списка статей",
		zap.String("category", f.Category),
		zap.String("status", f.Status),
		zap.Int("limit", f.Limit),
		zap.Int("offset", f.Offset),
	)

	list, err := s.repo.List(ctx, f)
	if err != nil {
		log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("Список статей получен", zap.Int("count", len(list)))
	return list, nil
}

func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение статьи по slug", zap.String("slug", slug))

	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Warn("Статья не найдена (repo)", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Bool("is_featured", req.IsFeatured),
	)

	a, err := buildArticle(req)
	if err != nil {
		log.Warn("Валидация не пройдена", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана",
		zap.Int64("id", created.ID),
		zap.String("slug", created.Slug),
		zap.Bool("is_featured", created.IsFeatured),
	)
	return created, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление статьи", zap.Int64("id", id), zap.String("title", strings.TrimSpace(req.Title)))

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		log.Error("Ошибка проверки существования статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if !exists {
		log.Warn("Статья для обновления не найдена", zap.Int64("id", id))
		return nil, repository.ErrNotFound
	}

	a, err := buildArticle(req)
	if err != nil {
		log.Warn("Валидация не пройдена", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	a.ID = id

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		log.Error("Ошибка обновления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Статья обновлена", zap.Int64("id", id), zap.Bool("is_featured", updated.IsFeatured))
	return updated, nil
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление статьи", zap.Int64("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Статья для удаления не найдена", zap.Int64("id", id))
		} else {
			log.Error("Ошибка удаления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	log.Info("Статья удалена", zap.Int64("id", id))
	return nil
}

// buildArticle валидирует запрос и собирает сущность с дефолтами.
func buildArticle(req models.ArticleRequest) (*models.Article, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	category := strings.TrimSpace(req.Category)

	if title == "" {
		return nil, fmt.Errorf("%w: заголовок обязателен", ErrValidation)
	}
	if utf8.RuneCountInString(title) > 255 {
		return nil, fmt.Errorf("%w: заголовок длиннее 255 символов", ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: контент обязателен", ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: категория обязательна", ErrValidation)
	}
	if utf8.RuneCountInString(category) > 50 {
		return nil, fmt.Errorf("%w: категория длиннее 50 символов", ErrValidation)
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = DeriveSlug(title)
	}
	if utf8.RuneCountInString(slug) > 255 {
		return nil, fmt.Errorf("%w: slug длиннее 255 символов", ErrValidation)
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = defaultStatus
	}

	return &models.Article{
		Title:        title,
		Slug:         slug,
		Content:      content,
		Category:     category,
		IsFeatured:   req.IsFeatured,
		Status:       status,
		ThumbnailURL: req.ThumbnailURL,
	}, nil
}

// DeriveSlug строит slug из заголовка: пробелы в дефисы, всё в нижний регистр.
func DeriveSlug(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}
