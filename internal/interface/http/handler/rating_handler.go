package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/dto"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/rating"
)

type RatingHandler struct {
	submitUC *rating.SubmitRatingUseCase
	statsUC  *rating.GetProfileStatsUseCase
	listUC   *rating.ListRequestRatingsUseCase
}

func NewRatingHandler(submitUC *rating.SubmitRatingUseCase, statsUC *rating.GetProfileStatsUseCase, listUC *rating.ListRequestRatingsUseCase) *RatingHandler {
	return &RatingHandler{submitUC: submitUC, statsUC: statsUC, listUC: listUC}
}

func (h *RatingHandler) SubmitRating(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	r, err := h.submitUC.Execute(c.Request.Context(), rating.SubmitRatingInput{
		Caller:    caller,
		RequestID: requestID,
		Stars:     req.Stars,
		Comment:   req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToRatingResponse(r))
}

func (h *RatingHandler) GetProfileStats(c *gin.Context) {
	userID, ok := uuidParam(c, "id", "некорректный ID пользователя")
	if !ok {
		return
	}

	stats, err := h.statsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileStatsResponse(stats))
}

func (h *RatingHandler) ListRequestRatings(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	ratings, err := h.listUC.Execute(c.Request.Context(), caller, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, dto.ToRatingResponse(r))
	}
	response.Success(c, out)
}
