package v1

import (
	"errors"
	"net/http"

	"tescilofisi-backend/internal/delivery/http/response"
	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/internal/usecase"
	"tescilofisi-backend/internal/viewtracker"
	"tescilofisi-backend/pkg/apperror"
	"tescilofisi-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PostHandler struct {
	postUC  domain.PostUsecase
	tracker *viewtracker.Tracker
}

// NewPostHandler registers the public blog routes and the admin post CRUD.
func NewPostHandler(public *gin.RouterGroup, protected *gin.RouterGroup, postUC domain.PostUsecase, tracker *viewtracker.Tracker, trackLimiter gin.HandlerFunc) {
	handler := &PostHandler{
		postUC:  postUC,
		tracker: tracker,
	}

	// Public Routes - NO authentication required
	public.GET("/posts", handler.ListPublished)
	public.GET("/posts/:slug", handler.GetBySlug)
	public.GET("/categories", handler.ListCategories)
	public.POST("/track-view", trackLimiter, handler.TrackView)

	// Admin Routes
	admin := protected.Group("/admin/posts")
	{
		admin.GET("", handler.List)
		admin.POST("", handler.Create)
		admin.GET("/:id", handler.Get)
		admin.PUT("/:id", handler.Update)
		admin.PATCH("/:id/publish", handler.TogglePublish)
		admin.DELETE("/:id", handler.Delete)
	}
}

// PostPayload is the editor save payload, shared by create and update.
type PostPayload struct {
	Title          string `json:"title" binding:"required,max=200"`
	Slug           string `json:"slug" binding:"omitempty,slug"`
	Excerpt        string `json:"excerpt" binding:"max=500"`
	Content        string `json:"content"`
	Author         string `json:"author" binding:"max=100"`
	Category       string `json:"category" binding:"required,category"`
	Tags           string `json:"tags"`
	FeaturedImage  string `json:"featured_image" binding:"omitempty,url"`
	Published      bool   `json:"published"`
	SEOTitle       string `json:"seo_title" binding:"max=70"`
	SEODescription string `json:"seo_description" binding:"max=160"`
}

func (p *PostPayload) toPost() *domain.BlogPost {
	post := &domain.BlogPost{
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Author:    p.Author,
		Category:  p.Category,
		Tags:      usecase.ParseTags(p.Tags),
		Published: p.Published,
	}
	if p.FeaturedImage != "" {
		post.FeaturedImage = &p.FeaturedImage
	}
	if p.SEOTitle != "" {
		post.SEOTitle = &p.SEOTitle
	}
	if p.SEODescription != "" {
		post.SEODescription = &p.SEODescription
	}
	return post
}

// bindPayload decodes and validates the payload, converting validator errors
// into field-keyed Turkish messages.
func bindPayload(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.Error(apperror.Validation("Lütfen form alanlarını kontrol edin", validation.FormatValidationErrors(err)))
		} else {
			c.Error(apperror.BadRequest("Geçersiz istek gövdesi"))
		}
		return false
	}
	return true
}

// ListPublished godoc
// @Summary      List published blog posts
// @Description  Public blog index, newest first. Optional category filter.
// @Tags         blog
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  response.Response
// @Router       /posts [get]
func (h *PostHandler) ListPublished(c *gin.Context) {
	posts, err := h.postUC.ListPublishedPosts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	if category := c.Query("category"); category != "" {
		posts = usecase.FilterPosts(posts, "", usecase.FilterAll, category)
	}

	response.Success(c, http.StatusOK, "Yazılar getirildi", posts)
}

// GetBySlug godoc
// @Summary      Get a published post by slug
// @Description  Returns the article plus up to three related posts from the same category.
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /posts/{slug} [get]
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, related, err := h.postUC.GetPublishedPost(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		c.Error(apperror.NotFound("Yazı bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Yazı getirildi", gin.H{
		"post":    post,
		"related": related,
	})
}

// ListCategories returns the fixed category list the editor and the public
// site share.
func (h *PostHandler) ListCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, "Kategoriler getirildi", domain.Categories)
}

type TrackViewRequest struct {
	PostID string `json:"postId" binding:"required"`
}

// TrackView godoc
// @Summary      Record a post view
// @Description  Increments the view counter of a published post. Deduplicated per visitor session.
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        request  body      TrackViewRequest  true  "Post id"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /track-view [post]
func (h *PostHandler) TrackView(c *gin.Context) {
	var req TrackViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("postId zorunludur"))
		return
	}

	count, err := h.tracker.Track(c.Request.Context(), c.ClientIP(), req.PostID)
	if errors.Is(err, domain.ErrNotFound) {
		// Unknown or unpublished post: drafts never accumulate views.
		c.Error(apperror.NotFound("Yazı bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Görüntülenme kaydedildi", gin.H{"viewCount": count})
}

// List godoc
// @Summary      List all posts (admin)
// @Description  Drafts included. Supports search term, status and category filters.
// @Tags         admin
// @Produce      json
// @Param        q         query     string  false  "Search in title and category"
// @Param        status    query     string  false  "all | published | draft"
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  response.Response
// @Router       /admin/posts [get]
func (h *PostHandler) List(c *gin.Context) {
	term := c.Query("q")
	status := c.DefaultQuery("status", usecase.FilterAll)
	category := c.DefaultQuery("category", usecase.FilterAll)

	posts, err := h.postUC.ListPosts(c.Request.Context(), term, status, category)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Yazılar getirildi", posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postUC.GetPost(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.Error(apperror.NotFound("Yazı bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Yazı getirildi", post)
}

// Create godoc
// @Summary      Create a post
// @Description  Creates a blog post. published=false saves a draft, published=true publishes immediately.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        post  body      PostPayload  true  "Post content"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /admin/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req PostPayload
	if !bindPayload(c, &req) {
		return
	}

	post := req.toPost()
	if err := h.postUC.CreatePost(c.Request.Context(), post, !req.Published); err != nil {
		c.Error(err)
		return
	}

	message := "Yazı taslak olarak kaydedildi"
	if post.Published {
		message = "Yazı yayınlandı"
	}
	response.Success(c, http.StatusCreated, message, post)
}

// Update godoc
// @Summary      Update a post
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Post id"
// @Param        post  body      PostPayload  true  "Post content"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	var req PostPayload
	if !bindPayload(c, &req) {
		return
	}

	post := req.toPost()
	post.ID = c.Param("id")

	err := h.postUC.UpdatePost(c.Request.Context(), post, !req.Published)
	if errors.Is(err, domain.ErrNotFound) {
		c.Error(apperror.NotFound("Yazı bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Yazı güncellendi", post)
}

type TogglePublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// TogglePublish flips a post between draft and published without touching its
// content.
func (h *PostHandler) TogglePublish(c *gin.Context) {
	var req TogglePublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("published alanı zorunludur"))
		return
	}

	post, err := h.postUC.TogglePublished(c.Request.Context(), c.Param("id"), *req.Published)
	if errors.Is(err, domain.ErrNotFound) {
		c.Error(apperror.NotFound("Yazı bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	message := "Yazı yayından kaldırıldı"
	if post.Published {
		message = "Yazı yayınlandı"
	}
	response.Success(c, http.StatusOK, message, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	err := h.postUC.DeletePost(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.Error(apperror.NotFound("Yazı bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Yazı silindi", nil)
}
