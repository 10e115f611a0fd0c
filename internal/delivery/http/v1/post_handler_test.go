package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tescilofisi-backend/internal/delivery/http/middleware"
	v1 "tescilofisi-backend/internal/delivery/http/v1"
	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/internal/viewtracker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPostUC struct {
	mock.Mock
}

func (m *MockPostUC) CreatePost(ctx context.Context, post *domain.BlogPost, asDraft bool) error {
	return m.Called(ctx, post, asDraft).Error(0)
}

func (m *MockPostUC) GetPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}

func (m *MockPostUC) GetPublishedPost(ctx context.Context, slug string) (*domain.BlogPost, []domain.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var related []domain.BlogPost
	if args.Get(1) != nil {
		related = args.Get(1).([]domain.BlogPost)
	}
	return args.Get(0).(*domain.BlogPost), related, args.Error(2)
}

func (m *MockPostUC) ListPosts(ctx context.Context, term, status, category string) ([]domain.BlogPost, error) {
	args := m.Called(ctx, term, status, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockPostUC) ListPublishedPosts(ctx context.Context) ([]domain.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockPostUC) UpdatePost(ctx context.Context, post *domain.BlogPost, asDraft bool) error {
	return m.Called(ctx, post, asDraft).Error(0)
}

func (m *MockPostUC) TogglePublished(ctx context.Context, id string, publish bool) (*domain.BlogPost, error) {
	args := m.Called(ctx, id, publish)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}

func (m *MockPostUC) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostUC) TrackView(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func postTestRouter(uc domain.PostUsecase) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	tracker := viewtracker.NewWithDelay(uc, viewtracker.NewSessionMarkers(), 0)
	group := r.Group("/v1")
	v1.NewPostHandler(group, group.Group(""), uc, tracker, noLimit)
	return r
}

func TestTrackViewEndpoint(t *testing.T) {
	t.Run("Missing postId returns 400", func(t *testing.T) {
		router := postTestRouter(new(MockPostUC))
		w := postJSON(router, "/v1/track-view", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unpublished post returns 404", func(t *testing.T) {
		mockUC := new(MockPostUC)
		mockUC.On("TrackView", mock.Anything, "draft-id").Return(int64(0), domain.ErrNotFound)

		w := postJSON(postTestRouter(mockUC), "/v1/track-view", map[string]string{"postId": "draft-id"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Successful view returns the new count and dedups repeats", func(t *testing.T) {
		mockUC := new(MockPostUC)
		mockUC.On("TrackView", mock.Anything, "p1").Return(int64(5), nil).Once()
		router := postTestRouter(mockUC)

		w := postJSON(router, "/v1/track-view", map[string]string{"postId": "p1"})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				ViewCount int64 `json:"viewCount"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(5), resp.Data.ViewCount)

		// Same visitor again: marker dedups, usecase not called a second time.
		w = postJSON(router, "/v1/track-view", map[string]string{"postId": "p1"})
		assert.Equal(t, http.StatusOK, w.Code)
		mockUC.AssertNumberOfCalls(t, "TrackView", 1)
	})
}

func TestGetBySlugEndpoint(t *testing.T) {
	t.Run("Unknown slug returns 404", func(t *testing.T) {
		mockUC := new(MockPostUC)
		mockUC.On("GetPublishedPost", mock.Anything, "yok").Return(nil, nil, domain.ErrNotFound)

		req := httptest.NewRequest("GET", "/v1/posts/yok", nil)
		w := httptest.NewRecorder()
		postTestRouter(mockUC).ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Published post comes back with related posts", func(t *testing.T) {
		mockUC := new(MockPostUC)
		article := &domain.BlogPost{ID: "p1", Slug: "marka-tescili-rehberi", Published: true}
		related := []domain.BlogPost{{ID: "p2"}, {ID: "p3"}}
		mockUC.On("GetPublishedPost", mock.Anything, "marka-tescili-rehberi").Return(article, related, nil)

		req := httptest.NewRequest("GET", "/v1/posts/marka-tescili-rehberi", nil)
		w := httptest.NewRecorder()
		postTestRouter(mockUC).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				Post    domain.BlogPost   `json:"post"`
				Related []domain.BlogPost `json:"related"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "p1", resp.Data.Post.ID)
		assert.Len(t, resp.Data.Related, 2)
	})
}

func TestCreatePostEndpoint(t *testing.T) {
	t.Run("Malformed slug in payload returns field error", func(t *testing.T) {
		mockUC := new(MockPostUC)
		router := postTestRouter(mockUC)

		w := postJSON(router, "/v1/admin/posts", map[string]any{
			"title":    "Yeni Yazı",
			"slug":     "Büyük Harfli Slug",
			"category": "Genel",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUC.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Draft save passes draft intent to the usecase", func(t *testing.T) {
		mockUC := new(MockPostUC)
		mockUC.On("CreatePost", mock.Anything, mock.AnythingOfType("*domain.BlogPost"), true).Return(nil)
		router := postTestRouter(mockUC)

		w := postJSON(router, "/v1/admin/posts", map[string]any{
			"title":     "Taslak Yazı",
			"category":  "Genel",
			"published": false,
			"tags":      "marka, tescil",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		mockUC.AssertCalled(t, "CreatePost", mock.Anything, mock.MatchedBy(func(p *domain.BlogPost) bool {
			return len(p.Tags) == 2 && p.Tags[0] == "marka"
		}), true)
	})
}

func TestTogglePublishEndpoint(t *testing.T) {
	mockUC := new(MockPostUC)
	mockUC.On("TogglePublished", mock.Anything, "p1", true).
		Return(&domain.BlogPost{ID: "p1", Published: true}, nil)
	router := postTestRouter(mockUC)

	body, _ := json.Marshal(map[string]any{"published": true})
	req := httptest.NewRequest("PATCH", "/v1/admin/posts/p1/publish", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertCalled(t, "TogglePublished", mock.Anything, "p1", true)
}
