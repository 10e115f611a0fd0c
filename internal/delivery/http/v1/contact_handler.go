package v1

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tescilofisi-backend/internal/delivery/http/response"
	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/internal/usecase"
	"tescilofisi-backend/pkg/apperror"
	"tescilofisi-backend/pkg/logger"
	"tescilofisi-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the public contact form and the admin inbox.
func NewContactHandler(public *gin.RouterGroup, protected *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	// Public Routes - NO authentication required
	public.POST("/contact", limiter, handler.SubmitContact)
	public.GET("/services", handler.ListServices)

	// Admin Routes
	admin := protected.Group("/admin/contacts")
	{
		admin.GET("", handler.List)
		admin.GET("/export.csv", handler.ExportCSV)
		admin.GET("/:id", handler.Get)
		admin.PATCH("/:id/status", handler.UpdateStatus)
	}
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.Error(apperror.Validation("Lütfen form alanlarını kontrol edin", validation.FormatValidationErrors(err)))
		} else {
			c.Error(apperror.BadRequest("Geçersiz istek gövdesi"))
		}
		return
	}

	msg, err := h.contactUC.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	logger.Log.Info("contact form received", "id", msg.ID, "service", msg.Service)
	response.Success(c, http.StatusCreated, "Mesajınız başarıyla gönderildi. En kısa sürede size dönüş yapacağız.", gin.H{"id": msg.ID})
}

// ListServices returns the consultancy services the contact form offers.
func (h *ContactHandler) ListServices(c *gin.Context) {
	response.Success(c, http.StatusOK, "Hizmetler getirildi", domain.Services)
}

// List godoc
// @Summary      List contact messages (admin)
// @Description  Newest first. Supports search term, status and service filters; always returns unfiltered status counts for the inbox badges.
// @Tags         admin
// @Produce      json
// @Param        q        query     string  false  "Search in name, email and message"
// @Param        status   query     string  false  "all | new | read | replied | closed"
// @Param        service  query     string  false  "Service filter"
// @Success      200      {object}  response.Response
// @Router       /admin/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	term := c.Query("q")
	status := c.DefaultQuery("status", usecase.FilterAll)
	service := c.DefaultQuery("service", usecase.FilterAll)

	all, err := h.contactUC.ListContacts(c.Request.Context(), "", usecase.FilterAll, usecase.FilterAll)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Mesajlar getirildi", gin.H{
		"messages": usecase.FilterContacts(all, term, status, service),
		"counts":   usecase.CountContacts(all),
		"services": usecase.DistinctServices(all),
	})
}

func (h *ContactHandler) Get(c *gin.Context) {
	msg, err := h.contactUC.GetContact(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.Error(apperror.NotFound("Mesaj bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Mesaj getirildi", msg)
}

type UpdateContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus godoc
// @Summary      Update a contact message status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Message id"
// @Param        request  body      UpdateContactStatusRequest  true  "New status"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /admin/contacts/{id}/status [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("status alanı zorunludur"))
		return
	}

	msg, err := h.contactUC.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, domain.ErrNotFound) {
		c.Error(apperror.NotFound("Mesaj bulunamadı"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Durum güncellendi", msg)
}

// csvHeader matches the columns the admin panel shows.
var csvHeader = []string{"Ad Soyad", "E-posta", "Telefon", "Hizmet", "Mesaj", "Durum", "Tarih"}

// ExportCSV godoc
// @Summary      Export contact messages as CSV
// @Description  Excel-compatible: UTF-8 BOM, CRLF line endings. Respects the same filters as the list endpoint.
// @Tags         admin
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /admin/contacts/export.csv [get]
func (h *ContactHandler) ExportCSV(c *gin.Context) {
	term := c.Query("q")
	status := c.DefaultQuery("status", usecase.FilterAll)
	service := c.DefaultQuery("service", usecase.FilterAll)

	msgs, err := h.contactUC.ListContacts(c.Request.Context(), term, status, service)
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("iletisim-mesajlari-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	// UTF-8 BOM so Excel renders Turkish characters correctly.
	if _, err := c.Writer.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return
	}

	w := csv.NewWriter(c.Writer)
	w.UseCRLF = true

	_ = w.Write(csvHeader)
	for _, msg := range msgs {
		_ = w.Write([]string{
			sanitizeCSVField(msg.Name),
			sanitizeCSVField(msg.Email),
			sanitizeCSVField(msg.Phone),
			sanitizeCSVField(msg.Service),
			sanitizeCSVField(msg.Message),
			msg.Status,
			msg.CreatedAt.Format("02.01.2006 15:04"),
		})
	}
	w.Flush()
}

// sanitizeCSVField neutralizes spreadsheet formula injection: a leading =, +,
// - or @ would otherwise execute when the export is opened in Excel.
func sanitizeCSVField(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return strings.ReplaceAll(s, "\x00", "")
}
