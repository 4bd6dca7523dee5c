package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/dto"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/request"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

type RequestHandler struct {
	createUC      *request.CreateRequestUseCase
	transitionsUC *request.TransitionUseCase
	getUC         *request.GetRequestUseCase
	listMineUC    *request.ListMyRequestsUseCase
	listAuditUC   *request.ListAuditUseCase
}

func NewRequestHandler(
	createUC *request.CreateRequestUseCase,
	transitionsUC *request.TransitionUseCase,
	getUC *request.GetRequestUseCase,
	listMineUC *request.ListMyRequestsUseCase,
	listAuditUC *request.ListAuditUseCase,
) *RequestHandler {
	return &RequestHandler{
		createUC:      createUC,
		transitionsUC: transitionsUC,
		getUC:         getUC,
		listMineUC:    listMineUC,
		listAuditUC:   listAuditUC,
	}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	postID, ok := uuidParam(c, "id", "некорректный ID поста")
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), request.CreateRequestInput{
		Caller:       caller,
		PostID:       postID,
		ItemsText:    req.ItemsText,
		Instructions: req.Instructions,
		EstTotal:     req.EstTotal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToRequestResponse(created))
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	req, err := h.getUC.Execute(c.Request.Context(), caller, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(req))
}

func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	limit, offset := validation.Page(
		parseIntQuery(c, "limit", validation.DefaultPageLimit),
		parseIntQuery(c, "offset", 0),
	)

	items, err := h.listMineUC.Execute(c.Request.Context(), request.ListMyRequestsInput{
		Caller: caller,
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestListResponse(items))
}

func (h *RequestHandler) ListAudit(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	entries, err := h.listAuditUC.Execute(c.Request.Context(), caller, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAuditResponse(entries))
}

func (h *RequestHandler) Accept(c *gin.Context) {
	h.transition(c, func(c *gin.Context, in request.TransitionInput) (request.TransitionInput, bool) {
		in.Action = valueobject.ActionAccept
		return in, true
	})
}

func (h *RequestHandler) Decline(c *gin.Context) {
	h.transition(c, func(c *gin.Context, in request.TransitionInput) (request.TransitionInput, bool) {
		in.Action = valueobject.ActionDecline
		return in, true
	})
}

func (h *RequestHandler) MarkOrdered(c *gin.Context) {
	h.transition(c, func(c *gin.Context, in request.TransitionInput) (request.TransitionInput, bool) {
		var req dto.MarkOrderedRequest
		if !bindOptionalJSON(c, &req) {
			return in, false
		}
		in.Action = valueobject.ActionMarkOrdered
		in.ProofPath = req.ProofPath
		in.OrderIDText = req.OrderIDText
		return in, true
	})
}

func (h *RequestHandler) MarkPickedUp(c *gin.Context) {
	h.transition(c, func(c *gin.Context, in request.TransitionInput) (request.TransitionInput, bool) {
		in.Action = valueobject.ActionMarkPickedUp
		return in, true
	})
}

func (h *RequestHandler) MarkCompleted(c *gin.Context) {
	h.transition(c, func(c *gin.Context, in request.TransitionInput) (request.TransitionInput, bool) {
		in.Action = valueobject.ActionMarkCompleted
		return in, true
	})
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	h.transition(c, func(c *gin.Context, in request.TransitionInput) (request.TransitionInput, bool) {
		var req dto.CancelRequest
		if !bindOptionalJSON(c, &req) {
			return in, false
		}
		in.Action = valueobject.ActionCancel
		in.Reason = req.Reason
		return in, true
	})
}

// transition - общий путь для действий над заявкой: вызывающий, id, тело, ответ.
func (h *RequestHandler) transition(c *gin.Context, build func(*gin.Context, request.TransitionInput) (request.TransitionInput, bool)) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	in, ok := build(c, request.TransitionInput{Caller: caller, RequestID: requestID})
	if !ok {
		return
	}

	updated, err := h.transitionsUC.Execute(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(updated))
}
