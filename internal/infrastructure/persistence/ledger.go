package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/repository/common"
)

// Verify interface compliance
var _ repository.Ledger = (*Ledger)(nil)

// Ledger - хранилище сделок в PostgreSQL.
type Ledger struct {
	db *sqlx.DB
}

func NewLedger(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

// repos работает поверх *sqlx.DB или *sqlx.Tx.
type repos struct {
	q sqlx.ExtContext
}

func (r repos) Posts() repository.PostRepository       { return &postRepository{q: r.q} }
func (r repos) Requests() repository.RequestRepository { return &requestRepository{q: r.q} }
func (r repos) Disputes() repository.DisputeRepository { return &disputeRepository{q: r.q} }
func (r repos) Ratings() repository.RatingRepository   { return &ratingRepository{q: r.q} }
func (r repos) Audit() repository.AuditRepository      { return &auditRepository{q: r.q} }
func (r repos) Profiles() repository.ProfileRepository { return &profileRepository{q: r.q} }

func (l *Ledger) Posts() repository.PostRepository       { return repos{q: l.db}.Posts() }
func (l *Ledger) Requests() repository.RequestRepository { return repos{q: l.db}.Requests() }
func (l *Ledger) Disputes() repository.DisputeRepository { return repos{q: l.db}.Disputes() }
func (l *Ledger) Ratings() repository.RatingRepository   { return repos{q: l.db}.Ratings() }
func (l *Ledger) Audit() repository.AuditRepository      { return repos{q: l.db}.Audit() }
func (l *Ledger) Profiles() repository.ProfileRepository { return repos{q: l.db}.Profiles() }

// WithinTx выполняет fn в одной транзакции READ COMMITTED. Гонки между
// транзакциями разрешают условные UPDATE по version и capacity_remaining.
func (l *Ledger) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return common.WithTransaction(ctx, l.db, func(tx *sqlx.Tx) error {
		return fn(ctx, repos{q: tx})
	})
}

func (l *Ledger) Ping(ctx context.Context) error {
	if err := l.db.PingContext(ctx); err != nil {
		return common.Classify(err, "ping")
	}
	return nil
}
