package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/api-sage/statutory-interest-service/src/internal/domain"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
)

type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Init(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS rate_steps (
	date_from  DATE PRIMARY KEY,
	key_rate   NUMERIC(8, 4) NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create rate_steps table: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) Load(ctx context.Context) ([]domain.RateStep, error) {
	const query = `
SELECT date_from, key_rate
FROM rate_steps
ORDER BY date_from ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("schedule repository load failed", err, nil)
		return nil, fmt.Errorf("load rate steps: %w", err)
	}
	defer rows.Close()

	steps := make([]domain.RateStep, 0)
	for rows.Next() {
		var dateFrom time.Time
		var keyRate decimal.Decimal
		if err := rows.Scan(&dateFrom, &keyRate); err != nil {
			logger.Error("schedule repository scan step failed", err, nil)
			return nil, fmt.Errorf("scan rate step: %w", err)
		}
		steps = append(steps, domain.RateStep{
			DateFrom: civil.DateOf(dateFrom),
			KeyRate:  keyRate,
		})
	}

	if err := rows.Err(); err != nil {
		logger.Error("schedule repository iterate steps failed", err, nil)
		return nil, fmt.Errorf("iterate rate steps: %w", err)
	}

	logger.Info("schedule repository load success", logger.Fields{"steps": len(steps)})
	return steps, nil
}

// Replace swaps the persisted snapshot for the given steps in one
// transaction, mirroring the in-memory cache semantics.
func (r *ScheduleRepository) Replace(ctx context.Context, steps []domain.RateStep) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rate_steps`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear rate steps: %w", err)
	}

	const insert = `
INSERT INTO rate_steps (date_from, key_rate, updated_at)
VALUES ($1, $2, now())`

	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, insert, step.DateFrom.String(), step.KeyRate); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert rate step %s: %w", step.DateFrom, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}

	logger.Info("schedule repository replace success", logger.Fields{"steps": len(steps)})
	return nil
}
