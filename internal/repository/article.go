package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lumino/internal/models"
)

var (
	// ErrNotFound — строки с таким id/slug нет.
	ErrNotFound = errors.New("статья не найдена")
	// ErrSlugTaken — нарушение уникальности slug (SQLSTATE 23505).
	ErrSlugTaken = errors.New("статья с таким slug уже существует")
)

const articleColumns = `id, title, slug, content, category, created_at, updated_at, is_featured, status, thumbnail_url`

type ArticleRepo interface {
	GetFeatured(ctx context.Context) (*models.Article, error)
	GetLatest(ctx context.Context, limit int) ([]*models.Article, error)
	List(ctx context.Context, f models.ListFilter) ([]*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	Update(ctx context.Context, a *models.Article) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

func (r *articleRepo) GetFeatured(ctx context.Context) (*models.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles WHERE is_featured = TRUE LIMIT 1`

	a, err := scanArticle(r.db.QueryRow(ctx, q))
	if errors.Is(err, pgx.ErrNoRows) {
		// отсутствие избранной статьи — не ошибка
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *articleRepo) GetLatest(ctx context.Context, limit int) ([]*models.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *articleRepo) List(ctx context.Context, f models.ListFilter) ([]*models.Article, error) {
	sql := `SELECT ` + articleColumns + ` FROM articles`

	where := []string{}
	args := []interface{}{}
	i := 1

	if f.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", i))
		args = append(args, f.Category)
		i++
	}
	if f.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", i))
		args = append(args, f.Status)
		i++
	}

	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1`

	a, err := scanArticle(r.db.QueryRow(ctx, q, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	a, err := scanArticle(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Create вставляет статью. Если статья избранная, сначала снимает флаг со всех
// остальных — оба запроса идут в одной транзакции, чтобы инвариант
// «не больше одной избранной» не ломался при конкурентных запросах.
func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if a.IsFeatured {
		if _, err := tx.Exec(ctx, `UPDATE articles SET is_featured = FALSE WHERE is_featured = TRUE`); err != nil {
			return nil, err
		}
	}

	q := `
		INSERT INTO articles (title, slug, content, category, is_featured, status, thumbnail_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + articleColumns

	out, err := scanArticle(tx.QueryRow(ctx, q,
		a.Title, a.Slug, a.Content, a.Category, a.IsFeatured, a.Status, a.ThumbnailURL,
	))
	if err != nil {
		return nil, translateConstraint(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// Update перезаписывает все изменяемые поля; created_at не трогаем.
// Снятие флага с остальных статей — в той же транзакции, что и сам апдейт.
func (r *articleRepo) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if a.IsFeatured {
		if _, err := tx.Exec(ctx, `UPDATE articles SET is_featured = FALSE WHERE is_featured = TRUE AND id <> $1`, a.ID); err != nil {
			return nil, err
		}
	}

	q := `
		UPDATE articles
		SET title=$1, slug=$2, content=$3, category=$4, is_featured=$5, status=$6, thumbnail_url=$7, updated_at=NOW()
		WHERE id=$8
		RETURNING ` + articleColumns

	out, err := scanArticle(tx.QueryRow(ctx, q,
		a.Title, a.Slug, a.Content, a.Category, a.IsFeatured, a.Status, a.ThumbnailURL, a.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateConstraint(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlugTaken
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var a models.Article
	if err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Category,
		&a.CreatedAt, &a.UpdatedAt, &a.IsFeatured, &a.Status, &a.ThumbnailURL,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanArticles(rows pgx.Rows) ([]*models.Article, error) {
	list := []*models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
