package kv

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"connectong/internal/domain"
	"connectong/internal/infra"
	"connectong/internal/sqlinline"
)

// Postgres keeps values in the portal_kv table.
type Postgres struct {
	sql infra.SQLExecutor
}

func NewPostgres(sql infra.SQLExecutor) *Postgres {
	return &Postgres{sql: sql}
}

// EnsureSchema creates the portal_kv table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.sql.Exec(ctx, sqlinline.QEnsurePortalKV)
	return err
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := p.sql.QueryRow(ctx, sqlinline.QGetPortalKV, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.sql.Exec(ctx, sqlinline.QUpsertPortalKV, key, string(value))
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.sql.Exec(ctx, sqlinline.QDeletePortalKV, key)
	return err
}

var _ domain.KV = (*Postgres)(nil)
