package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
)

var (
	ErrSettlementNotFound      = errors.New("settlement not found")
	ErrSettlementAlreadyExists = errors.New("settlement already exists")
)

const settlementColumns = `
	id, order_id, merchant_id, plan_id, amount, fee_percent, fee, payout,
	currency, gateway, status, transaction_id, attempts, next_attempt_at,
	created_at, updated_at
`

// SettlementFilter narrows List. Zero values mean "no filter".
type SettlementFilter struct {
	MerchantID uint64
	HasStatus  bool
	Status     int32
	From       *time.Time
	To         *time.Time
}

type SettlementRepository struct {
	db DBTX
}

func NewSettlementRepository(db DBTX) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) Create(ctx context.Context, settlement *entity.Settlement) error {
	query := `
		INSERT INTO settlements (
			order_id, merchant_id, plan_id, amount, fee_percent, fee, payout,
			currency, gateway, status, transaction_id, attempts, next_attempt_at,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		settlement.OrderID,
		settlement.MerchantID,
		settlement.PlanID,
		settlement.Amount,
		settlement.FeePercent,
		settlement.Fee,
		settlement.Payout,
		settlement.Currency,
		settlement.Gateway,
		settlement.Status,
		nullableStringValue(settlement.TransactionID),
		settlement.Attempts,
		nullableTimeValue(settlement.NextAttemptAt),
		settlement.CreatedAt,
		settlement.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrSettlementAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	settlement.ID = uint64(id)
	return nil
}

// Update persists the mutable payout state. Amounts and fees are fixed at creation.
func (r *SettlementRepository) Update(ctx context.Context, settlement *entity.Settlement) error {
	query := `
		UPDATE settlements
		SET status = ?, gateway = ?, transaction_id = ?, attempts = ?, next_attempt_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		settlement.Status,
		settlement.Gateway,
		nullableStringValue(settlement.TransactionID),
		settlement.Attempts,
		nullableTimeValue(settlement.NextAttemptAt),
		settlement.UpdatedAt,
		settlement.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSettlementNotFound
	}

	return nil
}

func (r *SettlementRepository) FindByID(ctx context.Context, id uint64) (*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id = ?`
	return r.findOne(ctx, query, id)
}

func (r *SettlementRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE order_id = ? LIMIT 1`
	return r.findOne(ctx, query, orderID)
}

func (r *SettlementRepository) List(ctx context.Context, filter SettlementFilter) ([]*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements`

	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	if filter.MerchantID != 0 {
		conditions = append(conditions, "merchant_id = ?")
		args = append(args, filter.MerchantID)
	}
	if filter.HasStatus {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.From != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, "created_at < ?")
		args = append(args, *filter.To)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC"

	return r.listByQuery(ctx, query, args...)
}

func (r *SettlementRepository) ListDueRetry(ctx context.Context, now time.Time, maxAttempts int32) ([]*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + `
		FROM settlements
		WHERE status = ?
		  AND next_attempt_at IS NOT NULL
		  AND next_attempt_at <= ?
		  AND attempts < ?
		ORDER BY id ASC
	`

	return r.listByQuery(ctx, query, entity.SettlementStatusFailed, now, maxAttempts)
}

// ListStalled returns pending payouts not touched since pendingCutoff and processing rows
// not touched since processingCutoff. A processing row that old belongs to a run that never
// saved the gateway result.
func (r *SettlementRepository) ListStalled(ctx context.Context, pendingCutoff, processingCutoff time.Time) ([]*entity.Settlement, error) {
	query := `SELECT ` + settlementColumns + `
		FROM settlements
		WHERE (status = ? AND updated_at < ?)
		   OR (status = ? AND updated_at < ?)
		ORDER BY id ASC
	`

	return r.listByQuery(ctx, query,
		entity.SettlementStatusPendingPayout, pendingCutoff,
		entity.SettlementStatusProcessing, processingCutoff,
	)
}

func (r *SettlementRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Settlement, error) {
	item := &entity.Settlement{}
	if err := scanSettlement(r.db.QueryRowContext(ctx, query, args...), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *SettlementRepository) listByQuery(ctx context.Context, query string, args ...interface{}) ([]*entity.Settlement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Settlement, 0)
	for rows.Next() {
		item := &entity.Settlement{}
		if err := scanSettlement(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanSettlement(scanner rowScanner, item *entity.Settlement) error {
	var transactionID sql.NullString
	var nextAttemptAt sql.NullTime

	err := scanner.Scan(
		&item.ID,
		&item.OrderID,
		&item.MerchantID,
		&item.PlanID,
		&item.Amount,
		&item.FeePercent,
		&item.Fee,
		&item.Payout,
		&item.Currency,
		&item.Gateway,
		&item.Status,
		&transactionID,
		&item.Attempts,
		&nextAttemptAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	item.TransactionID = nil
	if transactionID.Valid {
		item.TransactionID = &transactionID.String
	}
	item.NextAttemptAt = nil
	if nextAttemptAt.Valid {
		item.NextAttemptAt = &nextAttemptAt.Time
	}

	return nil
}
