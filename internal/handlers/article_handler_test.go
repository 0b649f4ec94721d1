package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumino/internal/handlers"
	"lumino/internal/logger"
	"lumino/internal/models"
	"lumino/internal/repository"
	"lumino/internal/routes"
	"lumino/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

// Мок-сервис статей поверх карты в памяти
type mockArticleService struct {
	articles map[int64]*models.Article
	nextID   int64
	created  int
}

func newMockArticleService() *mockArticleService {
	return &mockArticleService{articles: make(map[int64]*models.Article), nextID: 1}
}

func (m *mockArticleService) GetFeatured(_ context.Context) (*models.Article, error) {
	for _, a := range m.articles {
		if a.IsFeatured {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockArticleService) GetLatest(_ context.Context, limit int) ([]*models.Article, error) {
	out := []*models.Article{}
	for _, a := range m.articles {
		if len(out) == limit {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockArticleService) List(_ context.Context, _ models.ListFilter) ([]*models.Article, error) {
	out := []*models.Article{}
	for _, a := range m.articles {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockArticleService) GetBySlug(_ context.Context, slug string) (*models.Article, error) {
	for _, a := range m.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockArticleService) Create(_ context.Context, req models.ArticleRequest) (*models.Article, error) {
	if req.Title == "" || req.Content == "" || req.Category == "" {
		return nil, services.ErrValidation
	}
	slug := req.Slug
	if slug == "" {
		slug = services.DeriveSlug(req.Title)
	}
	a := &models.Article{
		ID: m.nextID, Title: req.Title, Slug: slug, Content: req.Content,
		Category: req.Category, IsFeatured: req.IsFeatured, Status: "draft",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.nextID++
	m.articles[a.ID] = a
	m.created++
	return a, nil
}

func (m *mockArticleService) Update(_ context.Context, id int64, req models.ArticleRequest) (*models.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.Title = req.Title
	a.Content = req.Content
	a.Category = req.Category
	a.UpdatedAt = time.Now()
	return a, nil
}

func (m *mockArticleService) Delete(_ context.Context, id int64) error {
	if _, ok := m.articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func setupRouter(svc services.ArticleService) (*mux.Router, *services.AuthService) {
	authService := services.NewAuthService("testsecret", time.Hour)
	authHandler := handlers.NewAuthHandler(authService)
	articleH := handlers.NewArticleHandler(svc)

	router := mux.NewRouter()
	routes.InitRoutes(router, authService, authHandler, articleH)
	return router, authService
}

func adminToken(t *testing.T, auth *services.AuthService) string {
	t.Helper()
	token, err := auth.IssueAdminToken(context.Background(), "admin")
	if err != nil {
		t.Fatalf("ошибка выдачи токена: %v", err)
	}
	return token
}

func TestGetBySlug_Scenario(t *testing.T) {
	svc := newMockArticleService()
	router, auth := setupRouter(svc)

	body, _ := json.Marshal(models.ArticleRequest{
		Title: "Hello World", Content: "текст", Category: "news",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/articles", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t, auth))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d (%s)", rec.Code, rec.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/articles/hello-world", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, get)

	if getRec.Code != http.StatusOK {
		t.Fatalf("статья должна находиться по производному slug, получен %d", getRec.Code)
	}

	var resp struct {
		Data models.Article `json:"data"`
	}
	if err := json.Unmarshal(getRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if resp.Data.Slug != "hello-world" {
		t.Fatalf("ожидался slug hello-world, получен %q", resp.Data.Slug)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	router, _ := setupRouter(newMockArticleService())

	req := httptest.NewRequest(http.MethodGet, "/api/articles/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался 404, получен %d", rec.Code)
	}
}

func TestGetFeatured_NoneIsOK(t *testing.T) {
	router, _ := setupRouter(newMockArticleService())

	req := httptest.NewRequest(http.MethodGet, "/api/articles/featured", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("отсутствие избранной статьи — не ошибка, получен %d", rec.Code)
	}
}

func TestCreate_WithoutAuth(t *testing.T) {
	svc := newMockArticleService()
	router, _ := setupRouter(svc)

	body, _ := json.Marshal(models.ArticleRequest{
		Title: "Без токена", Content: "текст", Category: "news",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/articles", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("без Authorization ожидался 401, получен %d", rec.Code)
	}
	if svc.created != 0 {
		t.Fatal("запрос без токена не должен создавать статью")
	}
}

func TestCreate_MalformedJSON(t *testing.T) {
	svc := newMockArticleService()
	router, auth := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/articles", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Authorization", "Bearer "+adminToken(t, auth))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("битый JSON должен давать 400, получен %d", rec.Code)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newMockArticleService()
	router, auth := setupRouter(svc)

	body, _ := json.Marshal(models.ArticleRequest{
		Title: "Новая", Content: "текст", Category: "news",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/admin/articles/999", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t, auth))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("обновление несуществующей статьи должно давать 404, получен %d", rec.Code)
	}
	if len(svc.articles) != 0 {
		t.Fatal("PUT по несуществующему id не должен создавать строку")
	}
}

func TestDelete_Flow(t *testing.T) {
	svc := newMockArticleService()
	router, auth := setupRouter(svc)
	token := adminToken(t, auth)

	body, _ := json.Marshal(models.ArticleRequest{
		Title: "Удаляемая", Content: "текст", Category: "news",
	})
	create := httptest.NewRequest(http.MethodPost, "/api/admin/articles", bytes.NewReader(body))
	create.Header.Set("Authorization", "Bearer "+token)
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, create)

	del := httptest.NewRequest(http.MethodDelete, "/api/admin/articles/1", nil)
	del.Header.Set("Authorization", "Bearer "+token)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, del)

	if delRec.Code != http.StatusNoContent {
		t.Fatalf("ожидался 204, получен %d", delRec.Code)
	}

	again := httptest.NewRequest(http.MethodDelete, "/api/admin/articles/1", nil)
	again.Header.Set("Authorization", "Bearer "+token)
	againRec := httptest.NewRecorder()
	router.ServeHTTP(againRec, again)

	if againRec.Code != http.StatusNotFound {
		t.Fatalf("повторное удаление должно давать 404, получен %d", againRec.Code)
	}
}

func TestAdminToken_Issuance(t *testing.T) {
	router, _ := setupRouter(newMockArticleService())

	bad := httptest.NewRequest(http.MethodGet, "/api/admin/token?username=bob", nil)
	badRec := httptest.NewRecorder()
	router.ServeHTTP(badRec, bad)
	if badRec.Code != http.StatusForbidden {
		t.Fatalf("username=bob должен давать 403, получен %d", badRec.Code)
	}

	good := httptest.NewRequest(http.MethodGet, "/api/admin/token?username=admin", nil)
	goodRec := httptest.NewRecorder()
	router.ServeHTTP(goodRec, good)
	if goodRec.Code != http.StatusOK {
		t.Fatalf("username=admin должен давать 200, получен %d", goodRec.Code)
	}

	var resp struct {
		Data models.TokenResponse `json:"data"`
	}
	if err := json.Unmarshal(goodRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("в ответе нет токена")
	}
}
