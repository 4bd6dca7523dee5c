package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

type postRepo struct{ v view }

func (r postRepo) Create(ctx context.Context, post *entity.Post) error {
	return r.v.with(func(st *state) error {
		st.posts[post.ID] = *post
		return nil
	})
}

func (r postRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var out *entity.Post
	err := r.v.with(func(st *state) error {
		p, ok := st.posts[id]
		if !ok {
			return apperror.ErrPostNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r postRepo) ListOpen(ctx context.Context, limit, offset int) ([]*entity.Post, int, error) {
	var out []*entity.Post
	var total int
	err := r.v.with(func(st *state) error {
		for _, p := range st.posts {
			if p.Status == valueobject.PostStatusOpen {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total = len(out)
	return page(out, limit, offset), total, err
}

func (r postRepo) ReserveSlot(ctx context.Context, id uuid.UUID, now time.Time) (*entity.Post, error) {
	var out *entity.Post
	err := r.v.with(func(st *state) error {
		p, ok := st.posts[id]
		if !ok {
			return apperror.ErrPostNotFound
		}
		if err := p.Reserve(now); err != nil {
			return err
		}
		st.posts[id] = p
		out = &p
		return nil
	})
	return out, err
}

func (r postRepo) ReleaseSlot(ctx context.Context, id uuid.UUID, now time.Time) (*entity.Post, error) {
	var out *entity.Post
	err := r.v.with(func(st *state) error {
		p, ok := st.posts[id]
		if !ok {
			return apperror.ErrPostNotFound
		}
		if err := p.Release(now); err != nil {
			return err
		}
		st.posts[id] = p
		out = &p
		return nil
	})
	return out, err
}

type requestRepo struct{ v view }

func (r requestRepo) Create(ctx context.Context, req *entity.Request) error {
	return r.v.with(func(st *state) error {
		st.requests[req.ID] = *req
		return nil
	})
}

func (r requestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	var out *entity.Request
	err := r.v.with(func(st *state) error {
		req, ok := st.requests[id]
		if !ok {
			return apperror.ErrRequestNotFound
		}
		out = &req
		return nil
	})
	return out, err
}

func (r requestRepo) UpdateIfVersion(ctx context.Context, req *entity.Request, expectedVersion int) error {
	return r.v.with(func(st *state) error {
		current, ok := st.requests[req.ID]
		if !ok {
			return apperror.ErrRequestNotFound
		}
		if current.Version != expectedVersion {
			return apperror.ErrVersionConflict
		}
		st.requests[req.ID] = *req
		return nil
	})
}

func (r requestRepo) ListByParty(ctx context.Context, filter repository.RequestFilter) ([]*entity.Request, error) {
	var out []*entity.Request
	err := r.v.with(func(st *state) error {
		for _, req := range st.requests {
			if !matchesParty(&req, filter) {
				continue
			}
			if filter.Status != "" && req.Status != filter.Status {
				continue
			}
			req := req
			out = append(out, &req)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Limit, filter.Offset), err
}

func matchesParty(req *entity.Request, filter repository.RequestFilter) bool {
	switch filter.Party {
	case valueobject.PartyBuyer:
		return req.BuyerID == filter.UserID
	case valueobject.PartySeller:
		return req.SellerID == filter.UserID
	}
	return req.IsParty(filter.UserID)
}

type disputeRepo struct{ v view }

func (r disputeRepo) Create(ctx context.Context, d *entity.Dispute) error {
	return r.v.with(func(st *state) error {
		for _, existing := range st.disputes {
			if existing.RequestID == d.RequestID {
				return apperror.ErrDisputeExists
			}
		}
		st.disputes[d.ID] = *d
		return nil
	})
}

func (r disputeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error) {
	var out *entity.Dispute
	err := r.v.with(func(st *state) error {
		d, ok := st.disputes[id]
		if !ok {
			return apperror.ErrDisputeNotFound
		}
		out = &d
		return nil
	})
	return out, err
}

func (r disputeRepo) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Dispute, error) {
	var out *entity.Dispute
	err := r.v.with(func(st *state) error {
		for _, d := range st.disputes {
			if d.RequestID == requestID {
				d := d
				out = &d
				return nil
			}
		}
		return apperror.ErrDisputeNotFound
	})
	return out, err
}

func (r disputeRepo) ResolveIfOpen(ctx context.Context, d *entity.Dispute) error {
	return r.v.with(func(st *state) error {
		current, ok := st.disputes[d.ID]
		if !ok {
			return apperror.ErrDisputeNotFound
		}
		if current.Status != valueobject.DisputeStatusOpen {
			return apperror.New(apperror.ErrCodeInvalidState, "спор уже закрыт")
		}
		st.disputes[d.ID] = *d
		return nil
	})
}

type ratingRepo struct{ v view }

func (r ratingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	return r.v.with(func(st *state) error {
		for _, existing := range st.ratings {
			if existing.RequestID == rating.RequestID && existing.RaterID == rating.RaterID {
				return apperror.ErrAlreadyRated
			}
		}
		st.ratings[rating.ID] = *rating
		return nil
	})
}

func (r ratingRepo) FindByRequestAndRater(ctx context.Context, requestID, raterID uuid.UUID) (*entity.Rating, error) {
	var out *entity.Rating
	err := r.v.with(func(st *state) error {
		for _, rt := range st.ratings {
			if rt.RequestID == requestID && rt.RaterID == raterID {
				rt := rt
				out = &rt
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r ratingRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Rating, error) {
	var out []*entity.Rating
	err := r.v.with(func(st *state) error {
		for _, rt := range st.ratings {
			if rt.RequestID == requestID {
				rt := rt
				out = append(out, &rt)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r ratingRepo) AverageForUser(ctx context.Context, userID uuid.UUID) (float64, int, error) {
	var sum, count int
	err := r.v.with(func(st *state) error {
		for _, rt := range st.ratings {
			if rt.RateeID == userID {
				sum += rt.Stars
				count++
			}
		}
		return nil
	})
	if count == 0 {
		return 0, 0, err
	}
	return float64(sum) / float64(count), count, err
}

type auditRepo struct{ v view }

func (r auditRepo) Append(ctx context.Context, entry *entity.AuditEntry) error {
	return r.v.with(func(st *state) error {
		st.audit = append(st.audit, *entry)
		return nil
	})
}

func (r auditRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	err := r.v.with(func(st *state) error {
		for _, e := range st.audit {
			if e.RequestID == requestID {
				e := e
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

type profileRepo struct{ v view }

func (r profileRepo) Get(ctx context.Context, userID uuid.UUID) (*entity.ProfileStats, error) {
	var out entity.ProfileStats
	err := r.v.with(func(st *state) error {
		if p, ok := st.profiles[userID]; ok {
			out = p
			return nil
		}
		out = entity.ProfileStats{UserID: userID}
		return nil
	})
	return &out, err
}

func (r profileRepo) IncrementCompleted(ctx context.Context, now time.Time, userIDs ...uuid.UUID) error {
	return r.v.with(func(st *state) error {
		for _, id := range userIDs {
			p := st.profiles[id]
			p.UserID = id
			p.CompletedCount++
			p.UpdatedAt = now
			st.profiles[id] = p
		}
		return nil
	})
}

func (r profileRepo) SetRating(ctx context.Context, userID uuid.UUID, avg float64, count int, now time.Time) error {
	return r.v.with(func(st *state) error {
		p := st.profiles[userID]
		p.UserID = userID
		p.RatingAvg = avg
		p.RatingCount = count
		p.UpdatedAt = now
		st.profiles[userID] = p
		return nil
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
