package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-keyed validation failure, returned to clients
// inside the error payload of a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldNames maps struct field names back to the JSON keys the client sent.
var fieldNames = map[string]string{
	"Name":           "name",
	"Email":          "email",
	"Phone":          "phone",
	"Service":        "service",
	"Message":        "message",
	"Title":          "title",
	"Slug":           "slug",
	"Excerpt":        "excerpt",
	"Content":        "content",
	"Author":         "author",
	"Category":       "category",
	"Tags":           "tags",
	"FeaturedImage":  "featured_image",
	"SEOTitle":       "seo_title",
	"SEODescription": "seo_description",
	"Password":       "password",
	"Status":         "status",
	"PostID":         "postId",
}

// fieldLabels maps struct field names to user-facing Turkish labels.
var fieldLabels = map[string]string{
	"Name":     "Ad Soyad",
	"Email":    "E-posta",
	"Phone":    "Telefon",
	"Service":  "Hizmet Türü",
	"Message":  "Mesaj",
	"Title":    "Başlık",
	"Slug":     "URL Slug",
	"Category": "Kategori",
	"Content":  "İçerik",
	"Password": "Şifre",
	"Status":   "Durum",
	"PostID":   "Yazı ID",
}

// FormatValidationErrors converts validator.ValidationErrors into a
// field-keyed list of Turkish messages. Anything else collapses into a single
// generic entry.
func FormatValidationErrors(err error) []FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "Form verilerinde hata var."}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, FieldError{
			Field:   jsonName(e.Field()),
			Message: formatSingleError(e),
		})
	}
	return out
}

func formatSingleError(e validator.FieldError) string {
	label := fieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s zorunludur", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s en az %s karakter olmalıdır", label, param)
		}
		return fmt.Sprintf("%s en az %s olmalıdır", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s en fazla %s karakter olabilir", label, param)
		}
		return fmt.Sprintf("%s en fazla %s olabilir", label, param)
	case "email":
		return "Geçerli bir e-posta adresi giriniz"
	case "url":
		return fmt.Sprintf("%s geçerli bir URL olmalıdır", label)
	case "oneof":
		return fmt.Sprintf("%s şunlardan biri olmalıdır: %s", label, strings.Join(strings.Split(param, " "), ", "))
	case "slug":
		return "URL slug yalnızca küçük harf, rakam ve tire içerebilir"
	case "category":
		return "Geçersiz kategori"
	default:
		return fmt.Sprintf("%s alanı geçersiz (%s)", label, e.Tag())
	}
}

func jsonName(field string) string {
	if name, ok := fieldNames[field]; ok {
		return name
	}
	return strings.ToLower(field)
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}
