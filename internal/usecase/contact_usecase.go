package usecase

import (
	"context"
	"strings"
	"time"

	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/pkg/apperror"
)

type contactUsecase struct {
	contactRepo domain.ContactRepository
	now         func() time.Time
}

func NewContactUsecase(contactRepo domain.ContactRepository) domain.ContactUsecase {
	return &contactUsecase{contactRepo: contactRepo, now: time.Now}
}

func (u *contactUsecase) SubmitContact(ctx context.Context, sub *domain.ContactSubmission) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Phone:   strings.TrimSpace(sub.Phone),
		Service: sub.Service,
		Message: strings.TrimSpace(sub.Message),
		Status:  domain.ContactStatusNew,
	}

	if err := u.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (u *contactUsecase) ListContacts(ctx context.Context, term, status, service string) ([]domain.ContactMessage, error) {
	msgs, err := u.contactRepo.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return FilterContacts(msgs, term, status, service), nil
}

// GetContact returns a single message. A message still in "new" moves to
// "read" on this first admin view; the returned copy reflects the transition.
func (u *contactUsecase) GetContact(ctx context.Context, id string) (*domain.ContactMessage, error) {
	msg, err := u.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if msg.Status == domain.ContactStatusNew {
		now := u.now()
		if err := u.contactRepo.UpdateStatus(ctx, id, domain.ContactStatusRead, now); err != nil {
			// The view itself succeeded; surfacing a read-marker failure
			// would only hide the message from the admin.
			return msg, nil
		}
		msg.Status = domain.ContactStatusRead
		msg.UpdatedAt = now
	}
	return msg, nil
}

func (u *contactUsecase) UpdateStatus(ctx context.Context, id, status string) (*domain.ContactMessage, error) {
	if !domain.ValidContactStatus(status) {
		return nil, apperror.BadRequest("Geçersiz durum değeri")
	}

	if err := u.contactRepo.UpdateStatus(ctx, id, status, u.now()); err != nil {
		return nil, err
	}
	return u.contactRepo.GetByID(ctx, id)
}
