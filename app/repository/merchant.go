package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
)

var ErrMerchantNotFound = errors.New("merchant not found")

type MerchantRepository struct {
	db DBTX
}

func NewMerchantRepository(db DBTX) *MerchantRepository {
	return &MerchantRepository{db: db}
}

func (r *MerchantRepository) FindByID(ctx context.Context, id uint64) (*entity.Merchant, error) {
	query := `
		SELECT id, email, subscription_plan, created_at, updated_at
		FROM merchants
		WHERE id = ?
	`

	item := &entity.Merchant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Email,
		&item.SubscriptionPlan,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *MerchantRepository) UpdatePlan(ctx context.Context, id uint64, planID string, updatedAt time.Time) error {
	query := `
		UPDATE merchants
		SET subscription_plan = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, planID, updatedAt, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMerchantNotFound
	}

	return nil
}

func (r *MerchantRepository) CountStores(ctx context.Context, merchantID uint64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM stores WHERE merchant_id = ? AND deleted_at IS NULL`, merchantID)
}

func (r *MerchantRepository) CountProducts(ctx context.Context, merchantID uint64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE merchant_id = ? AND deleted_at IS NULL`, merchantID)
}

func (r *MerchantRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
