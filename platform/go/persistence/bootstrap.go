package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	sqlassets "github.com/lettify/lettify/database"
)

// Bootstrap applies the core DDL in a single transaction. SQL is embedded at
// build time so binaries stay self-contained; every statement is idempotent,
// so the helper is safe to run on every process start.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("bootstrap schema: pool is required")
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("bootstrap schema: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, sqlassets.CoreSQL); err != nil {
		return fmt.Errorf("bootstrap schema: apply core ddl: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("bootstrap schema: commit: %w", err)
	}

	return nil
}
