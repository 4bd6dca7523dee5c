package post_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/post"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/usecasetest"
)

func TestCreatePost(t *testing.T) {
	f := usecasetest.New(t)
	uc := post.NewCreatePostUseCase(f.Deps)

	p, err := uc.Execute(context.Background(), post.CreatePostInput{
		Caller:        f.Seller,
		CapacityTotal: 3,
		Location:      "  West Campus Cafe ",
		Notes:         "after 6pm",
	})
	require.NoError(t, err)
	assert.Equal(t, f.Seller.ID, p.SellerID)
	assert.Equal(t, valueobject.PostStatusOpen, p.Status)
	assert.Equal(t, 3, p.CapacityRemaining)
	assert.Equal(t, "West Campus Cafe", p.Location)

	stored := f.ReloadPost(p.ID)
	assert.Equal(t, p.CapacityTotal, stored.CapacityTotal)
}

func TestCreatePost_Validation(t *testing.T) {
	f := usecasetest.New(t)
	uc := post.NewCreatePostUseCase(f.Deps)

	cases := []post.CreatePostInput{
		{Caller: f.Seller, CapacityTotal: 0, Location: "Hall"},
		{Caller: f.Seller, CapacityTotal: -3, Location: "Hall"},
		{Caller: f.Seller, CapacityTotal: 1, Location: ""},
		{Caller: f.Seller, CapacityTotal: 1, Location: "   "},
	}
	for _, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, apperror.IsValidation(err), "input %+v", in)
	}
}

func TestCreatePost_NoUpperCapacityBound(t *testing.T) {
	f := usecasetest.New(t)
	uc := post.NewCreatePostUseCase(f.Deps)

	for _, capacity := range []int{1, 21, 500} {
		p, err := uc.Execute(context.Background(), post.CreatePostInput{
			Caller:        f.Seller,
			CapacityTotal: capacity,
			Location:      "Commons",
		})
		require.NoError(t, err, "capacity %d", capacity)
		assert.Equal(t, capacity, p.CapacityRemaining)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	f := usecasetest.New(t)

	_, err := post.NewGetPostUseCase(f.Deps).Execute(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestListOpenPosts_SkipsFullPosts(t *testing.T) {
	f := usecasetest.New(t)
	ctx := context.Background()

	open := f.Post(2)
	full := f.Post(1)
	f.Request(full)

	posts, total, err := post.NewListOpenPostsUseCase(f.Deps).Execute(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, open.ID, posts[0].ID)
}
