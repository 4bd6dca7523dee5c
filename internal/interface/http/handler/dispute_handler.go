package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/dto"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/dispute"
)

type DisputeHandler struct {
	openUC      *dispute.OpenDisputeUseCase
	resolveUC   *dispute.ResolveDisputeUseCase
	getUC       *dispute.GetDisputeUseCase
	byRequestUC *dispute.GetRequestDisputeUseCase
}

func NewDisputeHandler(
	openUC *dispute.OpenDisputeUseCase,
	resolveUC *dispute.ResolveDisputeUseCase,
	getUC *dispute.GetDisputeUseCase,
	byRequestUC *dispute.GetRequestDisputeUseCase,
) *DisputeHandler {
	return &DisputeHandler{openUC: openUC, resolveUC: resolveUC, getUC: getUC, byRequestUC: byRequestUC}
}

func (h *DisputeHandler) OpenDispute(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	var req dto.OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	d, err := h.openUC.Execute(c.Request.Context(), dispute.OpenDisputeInput{
		Caller:      caller,
		RequestID:   requestID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToDisputeResponse(d))
}

func (h *DisputeHandler) ResolveDispute(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	disputeID, ok := uuidParam(c, "id", "некорректный ID спора")
	if !ok {
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	d, err := h.resolveUC.Execute(c.Request.Context(), dispute.ResolveDisputeInput{
		Caller:     caller,
		DisputeID:  disputeID,
		Resolution: req.Resolution,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDisputeResponse(d))
}

func (h *DisputeHandler) GetDispute(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	disputeID, ok := uuidParam(c, "id", "некорректный ID спора")
	if !ok {
		return
	}

	d, err := h.getUC.Execute(c.Request.Context(), caller, disputeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDisputeResponse(d))
}

func (h *DisputeHandler) GetRequestDispute(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id", "некорректный ID заявки")
	if !ok {
		return
	}

	d, err := h.byRequestUC.Execute(c.Request.Context(), caller, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToDisputeResponse(d))
}
