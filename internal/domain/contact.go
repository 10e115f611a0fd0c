package domain

import (
	"context"
	"time"
)

// Contact message statuses. A message starts as "new"; any status is reachable
// from any other, always admin-driven, except new->read which happens on first
// admin view.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
	ContactStatusClosed  = "closed"
)

// ContactStatuses lists the valid status values.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusRead,
	ContactStatusReplied,
	ContactStatusClosed,
}

// ValidContactStatus reports whether s is a known status.
func ValidContactStatus(s string) bool {
	for _, st := range ContactStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Services offered on the public contact form.
var Services = []string{
	"marka-tescili",
	"patent-basvurusu",
	"tasarim-tescili",
	"fikri-mulkiyet",
	"genel-danismanlik",
	"diger",
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactSubmission is the public contact form payload.
type ContactSubmission struct {
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required,min=10"`
	Service string `json:"service" binding:"required,min=1"`
	Message string `json:"message" binding:"required,min=10"`
}

type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	GetByID(ctx context.Context, id string) (*ContactMessage, error)
	Fetch(ctx context.Context) ([]ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}

type ContactUsecase interface {
	SubmitContact(ctx context.Context, sub *ContactSubmission) (*ContactMessage, error)
	ListContacts(ctx context.Context, term, status, service string) ([]ContactMessage, error)
	// GetContact marks a "new" message as "read" on first admin view.
	GetContact(ctx context.Context, id string) (*ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) (*ContactMessage, error)
}
