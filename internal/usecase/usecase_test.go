package usecase_test

import (
	"context"
	"testing"
	"time"

	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, post *domain.BlogPost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepo) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}

func (m *MockPostRepo) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}

func (m *MockPostRepo) Fetch(ctx context.Context) ([]domain.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockPostRepo) FetchPublished(ctx context.Context) ([]domain.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockPostRepo) FetchRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.BlogPost, error) {
	args := m.Called(ctx, category, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockPostRepo) Update(ctx context.Context, post *domain.BlogPost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepo) SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time, updatedAt time.Time) error {
	return m.Called(ctx, id, published, publishedAt, updatedAt).Error(0)
}

func (m *MockPostRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepo) IncrementViewCount(ctx context.Context, id string, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, id, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockContactRepo) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *MockContactRepo) Fetch(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *MockContactRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	return m.Called(ctx, id, status, updatedAt).Error(0)
}

var fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newPostUC(repo *MockPostRepo) domain.PostUsecase {
	return usecase.NewPostUsecaseWithClock(repo, func() time.Time { return fixedNow })
}

func TestCreatePostSlugDerivation(t *testing.T) {
	mockRepo := new(MockPostRepo)
	uc := newPostUC(mockRepo)

	t.Run("Should derive slug from Turkish title when empty", func(t *testing.T) {
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil).Once()

		post := &domain.BlogPost{Title: "Test Başlığı", Category: "Genel"}
		err := uc.CreatePost(context.Background(), post, true)
		assert.NoError(t, err)
		assert.Equal(t, "test-basligi", post.Slug)
	})

	t.Run("Should keep a manually edited slug verbatim", func(t *testing.T) {
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil).Once()

		post := &domain.BlogPost{Title: "Test Başlığı", Slug: "ozel-slug", Category: "Genel"}
		err := uc.CreatePost(context.Background(), post, true)
		assert.NoError(t, err)
		assert.Equal(t, "ozel-slug", post.Slug)
	})

	t.Run("Should reject malformed slug", func(t *testing.T) {
		post := &domain.BlogPost{Title: "Başlık", Slug: "Büyük Harf!", Category: "Genel"}
		err := uc.CreatePost(context.Background(), post, true)
		assert.Error(t, err)
	})

	t.Run("Should reject unknown category", func(t *testing.T) {
		post := &domain.BlogPost{Title: "Başlık", Category: "Yemek Tarifleri"}
		err := uc.CreatePost(context.Background(), post, true)
		assert.Error(t, err)
	})
}

func TestCreatePostPublishSemantics(t *testing.T) {
	t.Run("Draft intent forces unpublished, no publish time", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil)

		post := &domain.BlogPost{Title: "Taslak", Category: "Genel", Published: true}
		err := uc.CreatePost(context.Background(), post, true)
		assert.NoError(t, err)
		assert.False(t, post.Published)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("Publish intent stamps published_at", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil)

		post := &domain.BlogPost{Title: "Yayın", Category: "Genel", Published: true}
		err := uc.CreatePost(context.Background(), post, false)
		assert.NoError(t, err)
		assert.True(t, post.Published)
		if assert.NotNil(t, post.PublishedAt) {
			assert.Equal(t, fixedNow, *post.PublishedAt)
		}
	})

	t.Run("Empty author falls back to default", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil)

		post := &domain.BlogPost{Title: "Yazı", Category: "Genel"}
		err := uc.CreatePost(context.Background(), post, true)
		assert.NoError(t, err)
		assert.Equal(t, usecase.DefaultAuthor, post.Author)
	})

	t.Run("Slug conflict maps to a conflict error", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(domain.ErrSlugTaken)

		post := &domain.BlogPost{Title: "Yazı", Category: "Genel"}
		err := uc.CreatePost(context.Background(), post, true)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "slug zaten kullanılıyor")
	})
}

func TestUpdatePostPreservesPublishTime(t *testing.T) {
	originalPublish := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	created := time.Date(2024, 12, 20, 8, 0, 0, 0, time.UTC)

	t.Run("Editing a live post keeps the original publish time", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)

		prior := &domain.BlogPost{
			ID: "p1", Title: "Eski", Category: "Genel",
			Published: true, PublishedAt: &originalPublish,
			CreatedAt: created, ViewCount: 42,
		}
		mockRepo.On("GetByID", mock.Anything, "p1").Return(prior, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil)

		post := &domain.BlogPost{ID: "p1", Title: "Yeni Başlık", Slug: "eski-slug", Category: "Genel", Published: true}
		err := uc.UpdatePost(context.Background(), post, false)
		assert.NoError(t, err)
		if assert.NotNil(t, post.PublishedAt) {
			assert.Equal(t, originalPublish, *post.PublishedAt)
		}
		assert.Equal(t, created, post.CreatedAt)
		assert.Equal(t, int64(42), post.ViewCount)
		assert.Equal(t, fixedNow, post.UpdatedAt)
	})

	t.Run("Publishing a draft stamps a fresh publish time", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)

		prior := &domain.BlogPost{ID: "p2", Title: "Taslak", Category: "Genel", Published: false, CreatedAt: created}
		mockRepo.On("GetByID", mock.Anything, "p2").Return(prior, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil)

		post := &domain.BlogPost{ID: "p2", Title: "Taslak", Slug: "taslak", Category: "Genel", Published: true}
		err := uc.UpdatePost(context.Background(), post, false)
		assert.NoError(t, err)
		if assert.NotNil(t, post.PublishedAt) {
			assert.Equal(t, fixedNow, *post.PublishedAt)
		}
	})

	t.Run("Unpublishing clears the publish time", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)

		prior := &domain.BlogPost{
			ID: "p3", Title: "Yayında", Category: "Genel",
			Published: true, PublishedAt: &originalPublish, CreatedAt: created,
		}
		mockRepo.On("GetByID", mock.Anything, "p3").Return(prior, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.BlogPost")).Return(nil)

		post := &domain.BlogPost{ID: "p3", Title: "Yayında", Slug: "yayinda", Category: "Genel"}
		err := uc.UpdatePost(context.Background(), post, true)
		assert.NoError(t, err)
		assert.False(t, post.Published)
		assert.Nil(t, post.PublishedAt)
	})
}

func TestGetPublishedPost(t *testing.T) {
	t.Run("Related fetch failure does not break the article", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)

		article := &domain.BlogPost{ID: "p1", Slug: "makale", Category: "Strateji", Published: true}
		mockRepo.On("GetPublishedBySlug", mock.Anything, "makale").Return(article, nil)
		mockRepo.On("FetchRelated", mock.Anything, "Strateji", "p1", 3).Return(nil, assert.AnError)

		post, related, err := uc.GetPublishedPost(context.Background(), "makale")
		assert.NoError(t, err)
		assert.Equal(t, article, post)
		assert.Empty(t, related)
	})

	t.Run("Unknown slug returns not found", func(t *testing.T) {
		mockRepo := new(MockPostRepo)
		uc := newPostUC(mockRepo)
		mockRepo.On("GetPublishedBySlug", mock.Anything, "yok").Return(nil, domain.ErrNotFound)

		_, _, err := uc.GetPublishedPost(context.Background(), "yok")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTrackView(t *testing.T) {
	mockRepo := new(MockPostRepo)
	uc := newPostUC(mockRepo)

	t.Run("Returns the incremented count", func(t *testing.T) {
		mockRepo.On("IncrementViewCount", mock.Anything, "p1", fixedNow).Return(int64(8), nil).Once()

		count, err := uc.TrackView(context.Background(), "p1")
		assert.NoError(t, err)
		assert.Equal(t, int64(8), count)
	})

	t.Run("Draft posts do not count views", func(t *testing.T) {
		mockRepo.On("IncrementViewCount", mock.Anything, "draft", fixedNow).Return(int64(0), domain.ErrNotFound).Once()

		_, err := uc.TrackView(context.Background(), "draft")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestContactSubmit(t *testing.T) {
	mockRepo := new(MockContactRepo)
	uc := usecase.NewContactUsecase(mockRepo)

	t.Run("Should trim fields and start as new", func(t *testing.T) {
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactMessage")).Return(nil).Run(func(args mock.Arguments) {
			msg := args.Get(1).(*domain.ContactMessage)
			assert.Equal(t, "Ayşe Yılmaz", msg.Name)
			assert.Equal(t, domain.ContactStatusNew, msg.Status)
		})

		_, err := uc.SubmitContact(context.Background(), &domain.ContactSubmission{
			Name:    "  Ayşe Yılmaz  ",
			Email:   "ayse@example.com",
			Phone:   "05321234567",
			Service: "marka-tescili",
			Message: "Marka tescili hakkında bilgi almak istiyorum.",
		})
		assert.NoError(t, err)
	})
}

func TestContactReadTransition(t *testing.T) {
	t.Run("First admin view moves new to read", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(mockRepo)

		stored := &domain.ContactMessage{ID: "c1", Status: domain.ContactStatusNew}
		mockRepo.On("GetByID", mock.Anything, "c1").Return(stored, nil)
		mockRepo.On("UpdateStatus", mock.Anything, "c1", domain.ContactStatusRead, mock.AnythingOfType("time.Time")).Return(nil)

		msg, err := uc.GetContact(context.Background(), "c1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ContactStatusRead, msg.Status)
		mockRepo.AssertCalled(t, "UpdateStatus", mock.Anything, "c1", domain.ContactStatusRead, mock.AnythingOfType("time.Time"))
	})

	t.Run("Already read messages are left alone", func(t *testing.T) {
		mockRepo := new(MockContactRepo)
		uc := usecase.NewContactUsecase(mockRepo)

		stored := &domain.ContactMessage{ID: "c2", Status: domain.ContactStatusReplied}
		mockRepo.On("GetByID", mock.Anything, "c2").Return(stored, nil)

		msg, err := uc.GetContact(context.Background(), "c2")
		assert.NoError(t, err)
		assert.Equal(t, domain.ContactStatusReplied, msg.Status)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContactUpdateStatus(t *testing.T) {
	mockRepo := new(MockContactRepo)
	uc := usecase.NewContactUsecase(mockRepo)

	t.Run("Should reject unknown status", func(t *testing.T) {
		_, err := uc.UpdateStatus(context.Background(), "c1", "archived")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Geçersiz durum")
	})

	t.Run("Should persist a valid status", func(t *testing.T) {
		mockRepo.On("UpdateStatus", mock.Anything, "c1", domain.ContactStatusClosed, mock.AnythingOfType("time.Time")).Return(nil)
		mockRepo.On("GetByID", mock.Anything, "c1").Return(&domain.ContactMessage{ID: "c1", Status: domain.ContactStatusClosed}, nil)

		msg, err := uc.UpdateStatus(context.Background(), "c1", domain.ContactStatusClosed)
		assert.NoError(t, err)
		assert.Equal(t, domain.ContactStatusClosed, msg.Status)
	})
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"marka", "tescil"}, usecase.ParseTags("marka, tescil"))
	assert.Equal(t, []string{"tek"}, usecase.ParseTags(" tek ,, "))
	assert.Empty(t, usecase.ParseTags(""))
}
