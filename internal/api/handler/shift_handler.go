package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/service"
	"shiftdesk/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// Create 店长直接录入班次
// POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	operatorID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.CreateShift(c.Request.Context(), &req, operatorID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, result)
}

// Delete 店长移除班次
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) Delete(c *gin.Context) {
	err := h.shiftSvc.DeleteShift(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrShiftNotFound) {
			response.NotFound(c, 13001, "班次不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// List 按日期范围查询全员班次
// GET /api/v1/shifts?from=2026-09-01&to=2026-09-07
func (h *ShiftHandler) List(c *gin.Context) {
	var req dto.ShiftRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.ListByRange(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine 查询本人班次
// GET /api/v1/shifts/my?from=2026-09-01&to=2026-09-07
func (h *ShiftHandler) ListMine(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.ShiftRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.ListMine(c.Request.Context(), employeeID, req.From, req.To)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMyFuture 查询本人今天起的全部班次
// GET /api/v1/shifts/my/future
func (h *ShiftHandler) ListMyFuture(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.ListMyFuture(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	var conflict *service.ShiftConflictError
	switch {
	case errors.As(err, &conflict):
		response.Conflict(c, 13002, conflict.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidClock),
		errors.Is(err, service.ErrInvalidTimeWindow):
		response.BadRequest(c, 13003, err.Error())
	case errors.Is(err, service.ErrEmployeeMissing):
		response.NotFound(c, 12001, "员工不存在")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13001, "班次不存在")
	default:
		response.InternalError(c)
	}
}
