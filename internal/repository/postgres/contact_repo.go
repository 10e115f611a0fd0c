package postgres

import (
	"context"
	"errors"
	"time"

	"tescilofisi-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `INSERT INTO contact_forms (name, email, phone, service, message, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		msg.Name, msg.Email, msg.Phone, msg.Service, msg.Message, msg.Status,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	query := `SELECT id, name, email, phone, service, message, status, created_at, updated_at
	          FROM contact_forms WHERE id = $1`
	var msg domain.ContactMessage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Phone, &msg.Service, &msg.Message,
		&msg.Status, &msg.CreatedAt, &msg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactRepo) Fetch(ctx context.Context) ([]domain.ContactMessage, error) {
	query := `SELECT id, name, email, phone, service, message, status, created_at, updated_at
	          FROM contact_forms ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ContactMessage
	for rows.Next() {
		var msg domain.ContactMessage
		if err := rows.Scan(
			&msg.ID, &msg.Name, &msg.Email, &msg.Phone, &msg.Service, &msg.Message,
			&msg.Status, &msg.CreatedAt, &msg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (r *contactRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	query := `UPDATE contact_forms SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
