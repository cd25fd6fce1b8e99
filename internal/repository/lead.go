package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"labequip/storefront/internal/domain"
)

type LeadRepository interface {
	SaveLead(ctx context.Context, lead *domain.Lead) error
	MarkDelivered(ctx context.Context, id string, attempts int) error
	MarkFailed(ctx context.Context, id string, attempts int, lastError string) error
}

type leadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) LeadRepository {
	return &leadRepository{
		db: db,
	}
}

func (r *leadRepository) SaveLead(ctx context.Context, lead *domain.Lead) error {
	query := `
	INSERT INTO leads (id, status, email, data, submitted_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, lead.ID, string(domain.LeadStatusPending), lead.Email, lead, lead.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}

	return nil
}

func (r *leadRepository) MarkDelivered(ctx context.Context, id string, attempts int) error {
	query := `
	UPDATE leads
	SET status = $2, attempts = $3, last_error = NULL, updated_at = now()
	WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, string(domain.LeadStatusDelivered), attempts)
	if err != nil {
		return fmt.Errorf("failed to mark lead %s delivered: %w", id, err)
	}

	return nil
}

func (r *leadRepository) MarkFailed(ctx context.Context, id string, attempts int, lastError string) error {
	query := `
	UPDATE leads
	SET status = $2, attempts = $3, last_error = $4, updated_at = now()
	WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, string(domain.LeadStatusFailed), attempts, lastError)
	if err != nil {
		return fmt.Errorf("failed to mark lead %s failed: %w", id, err)
	}

	return nil
}
