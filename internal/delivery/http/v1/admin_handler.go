package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"
	"strings"
	"time"

	"tescilofisi-backend/config"
	"tescilofisi-backend/internal/delivery/http/response"
	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/pkg/apperror"
	"tescilofisi-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"
)

type AdminHandler struct {
	statsUC domain.StatsUsecase
	config  *config.Config
}

// NewAdminHandler registers the dashboard and media upload routes.
func NewAdminHandler(protected *gin.RouterGroup, statsUC domain.StatsUsecase, cfg *config.Config) {
	handler := &AdminHandler{
		statsUC: statsUC,
		config:  cfg,
	}

	admin := protected.Group("/admin")
	{
		admin.GET("/stats", handler.Stats)
		admin.POST("/upload", handler.UploadImage)
	}
}

// Stats godoc
// @Summary      Dashboard statistics
// @Description  Post, view and contact totals plus the five most recent posts.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsUC.GetDashboardStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "İstatistikler getirildi", stats)
}

// UploadImage godoc
// @Summary      Upload a featured image
// @Description  Accepts an image, compresses it to max 1200px JPEG and stores it in Supabase Storage. Pass old_url to delete the image being replaced.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Image to upload"
// @Param        old_url  query     string  false  "Previous image URL to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /admin/upload [post]
func (h *AdminHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Dosya yüklenmedi"))
		return
	}

	supabaseURL := strings.TrimSuffix(h.config.SupabaseUrl, "/")
	supabaseKey := h.config.SupabaseKey
	bucket := h.config.StorageBucket
	if supabaseURL == "" || supabaseKey == "" {
		c.Error(apperror.New(http.StatusInternalServerError, "Depolama yapılandırılmamış", nil))
		return
	}

	// Delete old file if old_url is provided.
	// URL format: https://xxx.supabase.co/storage/v1/object/public/BUCKET/FILENAME
	if oldURL := c.Query("old_url"); oldURL != "" {
		if parts := strings.Split(oldURL, "/storage/v1/object/public/"); len(parts) == 2 {
			if pathParts := strings.SplitN(parts[1], "/", 2); len(pathParts) == 2 {
				deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, pathParts[0], pathParts[1])

				deleteReq, _ := http.NewRequest("DELETE", deleteURL, nil)
				deleteReq.Header.Set("Authorization", "Bearer "+supabaseKey)

				client := &http.Client{Timeout: 10 * time.Second}
				if deleteResp, deleteErr := client.Do(deleteReq); deleteErr == nil {
					deleteResp.Body.Close()
					logger.Log.Info("deleted replaced image", "file", pathParts[1])
				}
			}
		}
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	// Detect content type from file bytes (more reliable than the header)
	contentType := http.DetectContentType(fileBytes)
	if !strings.HasPrefix(contentType, "image/") {
		c.Error(apperror.BadRequest("Yalnızca görsel dosyaları yüklenebilir"))
		return
	}

	finalBytes, compressErr := compressImage(fileBytes, 1200, 80)
	if compressErr != nil {
		logger.Log.Warn("image compression failed, using original", "error", compressErr)
		finalBytes = fileBytes
	}
	finalFilename := fmt.Sprintf("%d_%s.jpg", time.Now().UnixNano(), sanitizeFilename(file.Filename))

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, finalFilename)

	req, err := http.NewRequestWithContext(c.Request.Context(), "POST", uploadURL, bytes.NewReader(finalBytes))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", "image/jpeg") // Compressed images are always JPEG
	req.Header.Set("x-upsert", "true")           // Overwrite if exists

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Görsel yüklenemedi", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Log.Error("storage upload failed", "status", resp.StatusCode, "body", string(respBody))
		c.Error(apperror.New(http.StatusInternalServerError, "Görsel yüklenemedi", nil))
		return
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", supabaseURL, bucket, finalFilename)

	response.Success(c, http.StatusOK, "Görsel yüklendi", gin.H{"url": publicURL})
}

// compressImage resizes an image to the given max dimension, keeping aspect
// ratio, and re-encodes it as JPEG.
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		}
	} else {
		if height > maxDimension {
			newHeight = maxDimension
			newWidth = int(float64(width) * float64(maxDimension) / float64(height))
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeFilename strips non-ASCII characters; Supabase Storage requires
// ASCII-only object names.
func sanitizeFilename(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		filename = filename[:idx]
	}
	filename = strings.ReplaceAll(filename, " ", "_")

	var result strings.Builder
	for _, r := range filename {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}

	if result.Len() == 0 {
		return "gorsel"
	}
	return result.String()
}
