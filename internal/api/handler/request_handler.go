package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/model"
	"shiftdesk/internal/service"
	pkgerrors "shiftdesk/pkg/errors"
	"shiftdesk/pkg/response"
)

// RequestHandler 申请模块 HTTP 处理器
// 换班 / 增班 / 销班三类申请共用同一组审批端点逻辑
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler 创建 RequestHandler
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// ── 换班转让 ──

// CreateExchange 发起换班转让
// POST /api/v1/requests/exchanges
func (h *RequestHandler) CreateExchange(c *gin.Context) {
	requesterID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.CreateExchange(c.Request.Context(), requesterID, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ApproveExchange 批准换班
// POST /api/v1/requests/exchanges/:id/approve
func (h *RequestHandler) ApproveExchange(c *gin.Context) {
	h.decide(c, model.RequestKindExchange, true)
}

// RejectExchange 驳回换班
// POST /api/v1/requests/exchanges/:id/reject
func (h *RequestHandler) RejectExchange(c *gin.Context) {
	h.decide(c, model.RequestKindExchange, false)
}

// CancelExchange 发起人撤回换班申请
// POST /api/v1/requests/exchanges/:id/cancel
func (h *RequestHandler) CancelExchange(c *gin.Context) {
	actorID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	if err := h.requestSvc.CancelExchange(c.Request.Context(), c.Param("id"), actorID); err != nil {
		h.handleRequestError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 增班 ──

// CreateAddition 店长发起增班邀约
// POST /api/v1/requests/additions
func (h *RequestHandler) CreateAddition(c *gin.Context) {
	requesterID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateAdditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.CreateAddition(c.Request.Context(), requesterID, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ApproveAddition 目标员工接受增班
// POST /api/v1/requests/additions/:id/approve
func (h *RequestHandler) ApproveAddition(c *gin.Context) {
	h.decide(c, model.RequestKindAddition, true)
}

// RejectAddition 目标员工拒绝增班
// POST /api/v1/requests/additions/:id/reject
func (h *RequestHandler) RejectAddition(c *gin.Context) {
	h.decide(c, model.RequestKindAddition, false)
}

// ── 销班 ──

// CreateDeletion 员工发起销班申请
// POST /api/v1/requests/deletions
func (h *RequestHandler) CreateDeletion(c *gin.Context) {
	requesterID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var req dto.CreateDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.CreateDeletion(c.Request.Context(), requesterID, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ApproveDeletion 店长批准销班
// POST /api/v1/requests/deletions/:id/approve
func (h *RequestHandler) ApproveDeletion(c *gin.Context) {
	h.decide(c, model.RequestKindDeletion, true)
}

// RejectDeletion 店长驳回销班
// POST /api/v1/requests/deletions/:id/reject
func (h *RequestHandler) RejectDeletion(c *gin.Context) {
	h.decide(c, model.RequestKindDeletion, false)
}

// ListPendingDeletions 待审批的销班申请（店长）
// GET /api/v1/requests/deletions/pending
func (h *RequestHandler) ListPendingDeletions(c *gin.Context) {
	result, err := h.requestSvc.ListPendingDeletions(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ── 查询 ──

// ListPendingForMe 待我处理的申请
// GET /api/v1/requests/pending/me
func (h *RequestHandler) ListPendingForMe(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.ListPendingForMe(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListMine 我发起的申请
// GET /api/v1/requests/mine
func (h *RequestHandler) ListMine(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.ListMine(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ── 内部辅助 ──

func (h *RequestHandler) decide(c *gin.Context, kind model.RequestKind, approve bool) {
	actorID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	var err error
	if approve {
		err = h.requestSvc.Approve(c.Request.Context(), kind, c.Param("id"), actorID)
	} else {
		err = h.requestSvc.Reject(c.Request.Context(), kind, c.Param("id"), actorID)
	}
	if err != nil {
		h.handleRequestError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *RequestHandler) handleRequestError(c *gin.Context, err error) {
	var unavailable *service.TargetUnavailableError
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 14001, "申请不存在或已被处理")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 14002, "无权操作该申请")
	case errors.Is(err, service.ErrNotShiftHolder):
		response.Forbidden(c, 14003, "只能对自己的班次发起申请")
	case errors.Is(err, service.ErrEmptyApproverList):
		response.BadRequest(c, 14004, "候选接班人列表不能为空")
	case errors.Is(err, service.ErrNoEligibleApprovers):
		response.BadRequest(c, 14005, "所有候选接班人在该时段均有班次冲突")
	case errors.Is(err, service.ErrShiftAlreadyDeleted):
		response.Conflict(c, 14006, "该班次已不存在，申请已自动驳回")
	case errors.Is(err, service.ErrDeletionAlreadyRequested):
		response.Conflict(c, 14007, "该班次已有待处理的销班申请")
	case errors.As(err, &unavailable):
		response.Conflict(c, 14008, unavailable.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14009, "申请已被其他操作修改，请刷新后重试")
	case errors.Is(err, service.ErrReasonRequired):
		response.BadRequest(c, 14010, "销班原因不能为空")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13001, "班次不存在")
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidClock),
		errors.Is(err, service.ErrInvalidTimeWindow):
		response.BadRequest(c, 13003, err.Error())
	case errors.Is(err, service.ErrEmployeeMissing):
		response.NotFound(c, 12001, "员工不存在")
	default:
		response.InternalError(c)
	}
}
