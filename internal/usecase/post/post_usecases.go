package post

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

type CreatePostInput struct {
	Caller        valueobject.Caller
	CapacityTotal int    `json:"capacity_total" validate:"min=1"`
	Location      string `json:"location" validate:"required,max=120"`
	Notes         string `json:"notes" validate:"max=1000"`
}

type CreatePostUseCase struct {
	deps usecase.Deps
}

func NewCreatePostUseCase(deps usecase.Deps) *CreatePostUseCase {
	return &CreatePostUseCase{deps: deps}
}

func (uc *CreatePostUseCase) Execute(ctx context.Context, input CreatePostInput) (*entity.Post, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	post, err := entity.NewPost(input.Caller.ID, input.CapacityTotal, input.Location, input.Notes, uc.deps.Clock())
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	if err := uc.deps.Ledger.Posts().Create(ctx, post); err != nil {
		return nil, err
	}

	logger.Log.WithField("post_id", post.ID.String()).
		WithField("seller_id", post.SellerID.String()).
		Info("пост создан")

	return post, nil
}

type GetPostUseCase struct {
	deps usecase.Deps
}

func NewGetPostUseCase(deps usecase.Deps) *GetPostUseCase {
	return &GetPostUseCase{deps: deps}
}

func (uc *GetPostUseCase) Execute(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	return uc.deps.Ledger.Posts().FindByID(ctx, postID)
}

type ListOpenPostsUseCase struct {
	deps usecase.Deps
}

func NewListOpenPostsUseCase(deps usecase.Deps) *ListOpenPostsUseCase {
	return &ListOpenPostsUseCase{deps: deps}
}

func (uc *ListOpenPostsUseCase) Execute(ctx context.Context, limit, offset int) ([]*entity.Post, int, error) {
	limit, offset = validation.Page(limit, offset)

	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	return uc.deps.Ledger.Posts().ListOpen(ctx, limit, offset)
}
