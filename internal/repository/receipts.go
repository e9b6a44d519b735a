package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SebJones333/Receipt-Scanner/internal/entity"
)

// ReceiptRepository persists verified receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, rec *entity.Receipt) (*entity.Receipt, error)
	List(ctx context.Context, fromDate, toDate *time.Time) ([]*entity.Receipt, error)
}

type receiptRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReceiptRepository(pool *pgxpool.Pool, logger *slog.Logger) ReceiptRepository {
	return &receiptRepository{pool: pool, logger: logger}
}

func (r *receiptRepository) Create(ctx context.Context, rec *entity.Receipt) (*entity.Receipt, error) {
	now := time.Now().UTC()
	rec.ID = uuid.New()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	const q = `
		INSERT INTO receipts (id, store, tx_date, total, total_source, job_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, q,
		rec.ID, rec.Store, rec.TxDate, rec.Total.StringFixed(2), rec.TotalSource, rec.JobID,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create receipt", "store", rec.Store, "error", err)
		return nil, err
	}
	return rec, nil
}

func (r *receiptRepository) List(ctx context.Context, fromDate, toDate *time.Time) ([]*entity.Receipt, error) {
	q := `
		SELECT id, store, tx_date, total::text, total_source, job_id, created_at, updated_at
		FROM receipts WHERE 1=1`
	args := []any{}
	if fromDate != nil {
		args = append(args, *fromDate)
		q += ` AND tx_date >= $1`
	}
	if toDate != nil {
		args = append(args, *toDate)
		if len(args) == 1 {
			q += ` AND tx_date <= $1`
		} else {
			q += ` AND tx_date <= $2`
		}
	}
	q += ` ORDER BY tx_date, created_at`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to list receipts", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var (
		rec   entity.Receipt
		total string
	)
	if err := row.Scan(&rec.ID, &rec.Store, &rec.TxDate, &total, &rec.TotalSource, &rec.JobID,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	rec.Total = d
	return &rec, nil
}
