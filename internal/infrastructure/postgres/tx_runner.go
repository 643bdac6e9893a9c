package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/admisiones-pro/internal/application/auth"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
)

// Ensure TxRunner implements auth.TxRunner y usecase.TxRunner.
var (
	_ auth.TxRunner    = (*TxRunner)(nil)
	_ usecase.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los pasos
// del callback comprometen juntos o se revierte todo el grupo; no hay retry
// automático, el fallo sube al caller.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Cubre los flujos que crean company + user + agent en
// un solo grupo atómico (registro de agencia, alta de subordinados).
func (r *TxRunner) Run(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	agentRepo repository.AgentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	companyRepo := NewCompanyRepository(tx)
	userRepo := NewUserRepository(tx)
	agentRepo := NewAgentRepository(tx)

	if err := fn(companyRepo, userRepo, agentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
