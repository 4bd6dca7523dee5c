package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

// Verify interface compliance
var _ repository.Ledger = (*Ledger)(nil)

type state struct {
	posts    map[uuid.UUID]entity.Post
	requests map[uuid.UUID]entity.Request
	disputes map[uuid.UUID]entity.Dispute
	ratings  map[uuid.UUID]entity.Rating
	audit    []entity.AuditEntry
	profiles map[uuid.UUID]entity.ProfileStats
}

func newState() *state {
	return &state{
		posts:    make(map[uuid.UUID]entity.Post),
		requests: make(map[uuid.UUID]entity.Request),
		disputes: make(map[uuid.UUID]entity.Dispute),
		ratings:  make(map[uuid.UUID]entity.Rating),
		profiles: make(map[uuid.UUID]entity.ProfileStats),
	}
}

func (s *state) clone() *state {
	c := &state{
		posts:    make(map[uuid.UUID]entity.Post, len(s.posts)),
		requests: make(map[uuid.UUID]entity.Request, len(s.requests)),
		disputes: make(map[uuid.UUID]entity.Dispute, len(s.disputes)),
		ratings:  make(map[uuid.UUID]entity.Rating, len(s.ratings)),
		audit:    make([]entity.AuditEntry, len(s.audit)),
		profiles: make(map[uuid.UUID]entity.ProfileStats, len(s.profiles)),
	}
	for k, v := range s.posts {
		c.posts[k] = v
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	for k, v := range s.disputes {
		c.disputes[k] = v
	}
	for k, v := range s.ratings {
		c.ratings[k] = v
	}
	copy(c.audit, s.audit)
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	return c
}

// Ledger хранит сделки в памяти. Транзакция работает с копией состояния под
// общим мьютексом и подменяет состояние при успехе.
type Ledger struct {
	mu sync.Mutex
	st *state
}

func NewLedger() *Ledger {
	return &Ledger{st: newState()}
}

// view даёт репозиториям доступ к состоянию: вне транзакции через мьютекс
// ledger, внутри транзакции напрямую к черновику.
type view struct {
	ledger *Ledger
	draft  *state
}

func (v view) with(fn func(st *state) error) error {
	if v.ledger != nil {
		v.ledger.mu.Lock()
		defer v.ledger.mu.Unlock()
		return fn(v.ledger.st)
	}
	return fn(v.draft)
}

type repos struct {
	v view
}

func (r repos) Posts() repository.PostRepository       { return postRepo{r.v} }
func (r repos) Requests() repository.RequestRepository { return requestRepo{r.v} }
func (r repos) Disputes() repository.DisputeRepository { return disputeRepo{r.v} }
func (r repos) Ratings() repository.RatingRepository   { return ratingRepo{r.v} }
func (r repos) Audit() repository.AuditRepository      { return auditRepo{r.v} }
func (r repos) Profiles() repository.ProfileRepository { return profileRepo{r.v} }

func (l *Ledger) outside() repos {
	return repos{v: view{ledger: l}}
}

func (l *Ledger) Posts() repository.PostRepository       { return l.outside().Posts() }
func (l *Ledger) Requests() repository.RequestRepository { return l.outside().Requests() }
func (l *Ledger) Disputes() repository.DisputeRepository { return l.outside().Disputes() }
func (l *Ledger) Ratings() repository.RatingRepository   { return l.outside().Ratings() }
func (l *Ledger) Audit() repository.AuditRepository      { return l.outside().Audit() }
func (l *Ledger) Profiles() repository.ProfileRepository { return l.outside().Profiles() }

// WithinTx выполняет fn над черновиком состояния. Репозитории ledger вызывать
// внутри fn нельзя: мьютекс уже захвачен.
func (l *Ledger) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeTransient, apperror.ErrStorageTimeout.Message)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	draft := l.st.clone()
	if err := fn(ctx, repos{v: view{draft: draft}}); err != nil {
		return err
	}
	l.st = draft
	return nil
}

func (l *Ledger) Ping(ctx context.Context) error {
	return ctx.Err()
}
