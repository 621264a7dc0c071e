package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxManager runs a unit of work inside one serializable transaction.
type TxManager interface {
	// WithinTx commits when fn returns nil and rolls back otherwise. Calls
	// nested inside an open transaction join it.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// Conn returns the transaction bound to ctx, or fallback when there is none.
func Conn(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}

type txManager struct {
	db         PgxIface
	maxRetries int
	backoff    time.Duration
	log        *zap.Logger
}

func NewTxManager(db PgxIface, maxRetries int, log *zap.Logger) TxManager {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &txManager{
		db:         db,
		maxRetries: maxRetries,
		backoff:    20 * time.Millisecond,
		log:        log.With(zap.String("component", "tx")),
	}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	for attempt := 0; ; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil || !IsRetryable(err) || attempt >= m.maxRetries {
			return err
		}

		metrics.ObserveTxRetry()
		m.log.Warn("Retrying transaction after conflict",
			zap.Int("attempt", attempt+1),
			zap.String("sqlstate", ErrorCode(err)),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.backoff * time.Duration(attempt+1)):
		}
	}
}

func (m *txManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			m.rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			m.rollback(ctx, tx)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// rollback ignores cancellation of the request context.
func (m *txManager) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		m.log.Error("Failed to rollback transaction", zap.Error(err))
	}
}
