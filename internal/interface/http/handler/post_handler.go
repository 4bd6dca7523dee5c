package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/dto"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/post"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

type PostHandler struct {
	createPostUC *post.CreatePostUseCase
	getPostUC    *post.GetPostUseCase
	listOpenUC   *post.ListOpenPostsUseCase
}

func NewPostHandler(
	createPostUC *post.CreatePostUseCase,
	getPostUC *post.GetPostUseCase,
	listOpenUC *post.ListOpenPostsUseCase,
) *PostHandler {
	return &PostHandler{
		createPostUC: createPostUC,
		getPostUC:    getPostUC,
		listOpenUC:   listOpenUC,
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	p, err := h.createPostUC.Execute(c.Request.Context(), post.CreatePostInput{
		Caller:        caller,
		CapacityTotal: req.CapacityTotal,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToPostResponse(p))
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := uuidParam(c, "id", "некорректный ID поста")
	if !ok {
		return
	}

	p, err := h.getPostUC.Execute(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPostResponse(p))
}

func (h *PostHandler) ListOpenPosts(c *gin.Context) {
	limit, offset := validation.Page(
		parseIntQuery(c, "limit", validation.DefaultPageLimit),
		parseIntQuery(c, "offset", 0),
	)

	posts, total, err := h.listOpenUC.Execute(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToPostListResponse(posts), total, limit, offset)
}
