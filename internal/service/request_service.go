package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/model"
	"shiftdesk/internal/repository"
)

// ── 申请模块业务错误 ──

var (
	ErrRequestNotFound          = errors.New("申请不存在或已被处理")
	ErrNoPermission             = errors.New("无权操作该申请")
	ErrNotShiftHolder           = errors.New("只能对自己的班次发起申请")
	ErrEmptyApproverList        = errors.New("候选接班人列表不能为空")
	ErrNoEligibleApprovers      = errors.New("所有候选接班人在该时段均有班次冲突")
	ErrShiftAlreadyDeleted      = errors.New("该班次已不存在，申请已自动驳回")
	ErrDeletionAlreadyRequested = errors.New("该班次已有待处理的销班申请")
	ErrReasonRequired           = errors.New("销班原因不能为空")
	ErrUnknownRequestKind       = errors.New("未知的申请类型")
)

// TargetUnavailableError 增班目标员工在该时段已有班次
type TargetUnavailableError struct {
	EmployeeName string
}

func (e *TargetUnavailableError) Error() string {
	return fmt.Sprintf("%s 在该时段已有班次，无法增班", e.EmployeeName)
}

const requestTimeLayout = "2006-01-02 15:04:05"

// RequestService 申请协调器业务接口
//
// 三类申请共用同一套终态迁移规则：
//   - pending 是唯一可迁移状态，终态（approved/rejected/cancelled）不可再变
//   - 批准换班时同班次的其余 pending 申请级联驳回，至多一人接班成功
//   - 审批路径全程持行锁 + 乐观锁，并发批准只会有一个成功
type RequestService interface {
	// CreateExchange 发起换班转让：对每个无冲突候选人各生成一行申请
	CreateExchange(ctx context.Context, requesterID string, req *dto.CreateExchangeRequest) (*dto.ExchangeCreateResponse, error)
	// CreateAddition 店长发起增班邀约，需目标员工确认
	CreateAddition(ctx context.Context, requesterID string, req *dto.CreateAdditionRequest) (*dto.AdditionRequestResponse, error)
	// CreateDeletion 员工申请免除自己的班次，由店长审批
	CreateDeletion(ctx context.Context, requesterID string, req *dto.CreateDeletionRequest) (*dto.DeletionRequestResponse, error)

	// Approve 批准申请（kind 决定走哪条审批路径）
	Approve(ctx context.Context, kind model.RequestKind, requestID, actorID string) error
	// Reject 驳回申请
	Reject(ctx context.Context, kind model.RequestKind, requestID, actorID string) error
	// CancelExchange 发起人撤回单条换班申请（不影响同班次其他候选行）
	CancelExchange(ctx context.Context, requestID, actorID string) error

	// ListPendingForMe 待我处理的申请（我是接班人或增班目标）
	ListPendingForMe(ctx context.Context, employeeID string) (*dto.PendingRequestsResponse, error)
	// ListMine 我发起的全部申请
	ListMine(ctx context.Context, employeeID string) (*dto.MyRequestsResponse, error)
	// ListPendingDeletions 全部待审批的销班申请（店长视角）
	ListPendingDeletions(ctx context.Context) ([]dto.DeletionRequestResponse, error)
}

type requestService struct {
	repo     *repository.Repository
	shifts   ShiftService
	notifier NotificationService
	logger   *zap.Logger
}

// NewRequestService 创建 RequestService 实例
func NewRequestService(repo *repository.Repository, shifts ShiftService, notifier NotificationService, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, shifts: shifts, notifier: notifier, logger: logger}
}

// ═══════════════════════════════════════════════════════════════
// 发起申请
// ═══════════════════════════════════════════════════════════════

func (s *requestService) CreateExchange(ctx context.Context, requesterID string, req *dto.CreateExchangeRequest) (*dto.ExchangeCreateResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	if shift.EmployeeID != requesterID {
		return nil, ErrNotShiftHolder
	}

	// 去重并剔除发起人自己
	candidates := make([]string, 0, len(req.ApproverIDs))
	seen := make(map[string]struct{}, len(req.ApproverIDs))
	for _, id := range req.ApproverIDs {
		if id == requesterID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyApproverList
	}

	available, dropped, err := s.shifts.FindConflicts(ctx, candidates, shift.WorkDate, shift.StartTime, shift.EndTime)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, ErrNoEligibleApprovers
	}

	now := time.Now()
	requests := make([]model.ShiftExchangeRequest, 0, len(available))
	for _, approverID := range available {
		requests = append(requests, model.ShiftExchangeRequest{
			RequesterID: requesterID,
			ApproverID:  approverID,
			ShiftID:     shift.ShiftID,
			Status:      model.RequestStatusPending,
			RequestedAt: now,
		})
	}
	if err := s.repo.ExchangeRequest.BatchCreate(ctx, requests); err != nil {
		s.logger.Error("创建换班申请失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("发起换班转让",
		zap.String("shift_id", shift.ShiftID),
		zap.String("requester_id", requesterID),
		zap.Int("fanout", len(requests)),
		zap.Int("dropped", len(dropped)))

	requesterName := ""
	if requester, err := s.repo.Employee.GetByID(ctx, requesterID); err == nil {
		requesterName = requester.Name
	}
	relatedType := model.RelatedTypeExchangeRequest
	for i := range requests {
		r := &requests[i]
		s.notifier.Push(ctx, r.ApproverID, NotificationTypeExchangeCreated,
			"收到换班邀请",
			fmt.Sprintf("%s 希望将 %s %s–%s 的班次转给你",
				requesterName, shift.WorkDate.Format("2006-01-02"), shift.StartTime, shift.EndTime),
			&relatedType, &r.RequestID)
	}

	resp := &dto.ExchangeCreateResponse{
		Requests: make([]dto.ExchangeRequestResponse, 0, len(requests)),
		Dropped:  dropped,
	}
	for i := range requests {
		resp.Requests = append(resp.Requests, toExchangeResponse(&requests[i]))
	}
	return resp, nil
}

func (s *requestService) CreateAddition(ctx context.Context, requesterID string, req *dto.CreateAdditionRequest) (*dto.AdditionRequestResponse, error) {
	date, err := parseDate(req.ShiftDate)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	target, err := s.repo.Employee.GetByID(ctx, req.TargetEmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeMissing
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	// 目标员工该时段已有班次则拒绝发起（首尾相接不算冲突）
	existing, err := s.repo.Shift.ListByEmployeeAndDate(ctx, req.TargetEmployeeID, date)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	if conflictingShift(existing, req.StartTime, req.EndTime) != nil {
		return nil, &TargetUnavailableError{EmployeeName: target.Name}
	}

	request := &model.ShiftAdditionRequest{
		RequesterID:      requesterID,
		TargetEmployeeID: req.TargetEmployeeID,
		ShiftDate:        date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           model.RequestStatusPending,
		RequestedAt:      time.Now(),
	}
	if err := s.repo.AdditionRequest.Create(ctx, request); err != nil {
		s.logger.Error("创建增班申请失败", zap.Error(err))
		return nil, err
	}

	relatedType := model.RelatedTypeAdditionRequest
	s.notifier.Push(ctx, req.TargetEmployeeID, NotificationTypeAdditionCreated,
		"收到增班邀请",
		fmt.Sprintf("店长邀请你在 %s %s–%s 增加一个班次，请确认",
			req.ShiftDate, req.StartTime, req.EndTime),
		&relatedType, &request.RequestID)

	resp := toAdditionResponse(request)
	return &resp, nil
}

func (s *requestService) CreateDeletion(ctx context.Context, requesterID string, req *dto.CreateDeletionRequest) (*dto.DeletionRequestResponse, error) {
	// binding:"required" 拦不住纯空白字符串
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	if shift.EmployeeID != requesterID {
		return nil, ErrNotShiftHolder
	}

	exists, err := s.repo.DeletionRequest.ExistsPendingByShift(ctx, req.ShiftID)
	if err != nil {
		s.logger.Error("查询销班申请失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDeletionAlreadyRequested
	}

	request := &model.ShiftDeletionRequest{
		RequesterID: requesterID,
		ShiftID:     req.ShiftID,
		Reason:      reason,
		Status:      model.RequestStatusPending,
	}
	// 同班次并发发起时由部分唯一索引兜底
	if err := s.repo.DeletionRequest.Create(ctx, request); err != nil {
		s.logger.Error("创建销班申请失败", zap.Error(err))
		return nil, err
	}

	request.Shift = shift
	resp := toDeletionResponse(request)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════════
// 审批：批准 / 驳回 / 撤回
// ═══════════════════════════════════════════════════════════════

func (s *requestService) Approve(ctx context.Context, kind model.RequestKind, requestID, actorID string) error {
	switch kind {
	case model.RequestKindExchange:
		return s.approveExchange(ctx, requestID, actorID)
	case model.RequestKindAddition:
		return s.approveAddition(ctx, requestID, actorID)
	case model.RequestKindDeletion:
		return s.approveDeletion(ctx, requestID, actorID)
	default:
		return ErrUnknownRequestKind
	}
}

func (s *requestService) Reject(ctx context.Context, kind model.RequestKind, requestID, actorID string) error {
	switch kind {
	case model.RequestKindExchange:
		return s.rejectExchange(ctx, requestID, actorID)
	case model.RequestKindAddition:
		return s.rejectAddition(ctx, requestID, actorID)
	case model.RequestKindDeletion:
		return s.rejectDeletion(ctx, requestID, actorID)
	default:
		return ErrUnknownRequestKind
	}
}

// approveExchange 批准换班转让
//
// 全流程在单事务内完成：
//  1. 行锁加载申请，校验 pending 且接班人是本人
//  2. 行锁加载班次——锁住班次行即锁住了同班次的所有并发审批
//  3. 班次已不存在 → 申请就地驳回并提交（向调用方返回 ErrShiftAlreadyDeleted）
//  4. 删除原班次，将其时段并入接班人的排班（与相邻/重叠班次取并集）
//  5. 本申请置 approved，同班次其余 pending 申请级联驳回
func (s *requestService) approveExchange(ctx context.Context, requestID, actorID string) error {
	var (
		request        *model.ShiftExchangeRequest
		shiftGone      bool
		shiftDate      time.Time
		shiftWindow    [2]string
		requesterID    string
		siblingsKilled int64
	)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		request, err = tx.ExchangeRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestNotFound
		}
		if request.ApproverID != actorID {
			return ErrNoPermission
		}
		requesterID = request.RequesterID

		now := time.Now()
		shift, err := tx.Shift.GetByIDForUpdate(ctx, request.ShiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 班次已被销班或店长删除：申请自动驳回，该驳回随事务提交
				shiftGone = true
				return tx.ExchangeRequest.Decide(ctx, request, model.RequestStatusRejected, now)
			}
			return err
		}
		shiftDate = shift.WorkDate
		shiftWindow = [2]string{shift.StartTime, shift.EndTime}

		if err := tx.Shift.Delete(ctx, shift.ShiftID); err != nil {
			return err
		}
		if _, err := commitInterval(ctx, tx, actorID, shift.WorkDate, shift.StartTime, shift.EndTime,
			provenance{isModified: true, originalEmployeeID: &request.RequesterID}); err != nil {
			return err
		}
		if err := tx.ExchangeRequest.Decide(ctx, request, model.RequestStatusApproved, now); err != nil {
			return err
		}
		siblingsKilled, err = tx.ExchangeRequest.RejectPendingSiblings(ctx, request.ShiftID, request.RequestID, now)
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("批准换班失败", zap.String("request_id", requestID), zap.Error(err))
		}
		return err
	}

	relatedType := model.RelatedTypeExchangeRequest
	if shiftGone {
		s.notifier.Push(ctx, requesterID, NotificationTypeExchangeRejected,
			"换班申请已自动驳回", "原班次已不存在，换班申请已自动驳回",
			&relatedType, &requestID)
		return ErrShiftAlreadyDeleted
	}

	s.logger.Info("换班转让完成",
		zap.String("request_id", requestID),
		zap.String("from", requesterID),
		zap.String("to", actorID),
		zap.Int64("siblings_rejected", siblingsKilled))

	approverName := ""
	if approver, err := s.repo.Employee.GetByID(ctx, actorID); err == nil {
		approverName = approver.Name
	}
	s.notifier.Push(ctx, requesterID, NotificationTypeExchangeApproved,
		"换班申请已通过",
		fmt.Sprintf("%s 已接下你 %s %s–%s 的班次",
			approverName, shiftDate.Format("2006-01-02"), shiftWindow[0], shiftWindow[1]),
		&relatedType, &requestID)
	return nil
}

func (s *requestService) rejectExchange(ctx context.Context, requestID, actorID string) error {
	var requesterID string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		request, err := tx.ExchangeRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestNotFound
		}
		if request.ApproverID != actorID {
			return ErrNoPermission
		}
		requesterID = request.RequesterID
		return tx.ExchangeRequest.Decide(ctx, request, model.RequestStatusRejected, time.Now())
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("驳回换班失败", zap.String("request_id", requestID), zap.Error(err))
		}
		return err
	}

	relatedType := model.RelatedTypeExchangeRequest
	s.notifier.Push(ctx, requesterID, NotificationTypeExchangeRejected,
		"换班申请被拒绝", "对方拒绝了你的换班邀请",
		&relatedType, &requestID)
	return nil
}

func (s *requestService) CancelExchange(ctx context.Context, requestID, actorID string) error {
	var approverID string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		request, err := tx.ExchangeRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestNotFound
		}
		if request.RequesterID != actorID {
			return ErrNoPermission
		}
		approverID = request.ApproverID
		return tx.ExchangeRequest.Decide(ctx, request, model.RequestStatusCancelled, time.Now())
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("撤回换班申请失败", zap.String("request_id", requestID), zap.Error(err))
		}
		return err
	}

	relatedType := model.RelatedTypeExchangeRequest
	s.notifier.Push(ctx, approverID, NotificationTypeExchangeRejected,
		"换班邀请已撤回", "对方撤回了发给你的换班邀请",
		&relatedType, &requestID)
	return nil
}

// approveAddition 目标员工确认增班
// 批准时直接将申请区间并入其排班：发起后新产生的相邻班次会被吞并成一条
func (s *requestService) approveAddition(ctx context.Context, requestID, actorID string) error {
	var (
		request     *model.ShiftAdditionRequest
		requesterID string
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		request, err = tx.AdditionRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestNotFound
		}
		if request.TargetEmployeeID != actorID {
			return ErrNoPermission
		}
		requesterID = request.RequesterID

		// 增班产生的班次记录来源：店长（发起人）主动加出来的时段
		if _, err := commitInterval(ctx, tx, actorID, request.ShiftDate, request.StartTime, request.EndTime,
			provenance{isModified: true, originalEmployeeID: &request.RequesterID}); err != nil {
			return err
		}
		return tx.AdditionRequest.Decide(ctx, request, model.RequestStatusApproved, time.Now())
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("批准增班失败", zap.String("request_id", requestID), zap.Error(err))
		}
		return err
	}

	relatedType := model.RelatedTypeAdditionRequest
	s.notifier.Push(ctx, requesterID, NotificationTypeAdditionApproved,
		"增班邀请已接受",
		fmt.Sprintf("对方已接受 %s %s–%s 的增班",
			request.ShiftDate.Format("2006-01-02"), request.StartTime, request.EndTime),
		&relatedType, &requestID)
	return nil
}

func (s *requestService) rejectAddition(ctx context.Context, requestID, actorID string) error {
	var requesterID string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		request, err := tx.AdditionRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestNotFound
		}
		if request.TargetEmployeeID != actorID {
			return ErrNoPermission
		}
		requesterID = request.RequesterID
		return tx.AdditionRequest.Decide(ctx, request, model.RequestStatusRejected, time.Now())
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("驳回增班失败", zap.String("request_id", requestID), zap.Error(err))
		}
		return err
	}

	relatedType := model.RelatedTypeAdditionRequest
	s.notifier.Push(ctx, requesterID, NotificationTypeAdditionRejected,
		"增班邀请被拒绝", "对方拒绝了增班邀请",
		&relatedType, &requestID)
	return nil
}

// approveDeletion 店长批准销班
// 删除班次的同时级联驳回该班次上所有 pending 的换班申请
func (s *requestService) approveDeletion(ctx context.Context, requestID, actorID string) error {
	var (
		request     *model.ShiftDeletionRequest
		shiftGone   bool
		requesterID string
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		request, err = tx.DeletionRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestNotFound
		}
		requesterID = request.RequesterID

		now := time.Now()
		shift, err := tx.Shift.GetByIDForUpdate(ctx, request.ShiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				shiftGone = true
				return tx.DeletionRequest.Decide(ctx, request, model.RequestStatusRejected, now)
			}
			return err
		}

		if err := tx.Shift.Delete(ctx, shift.ShiftID); err != nil {
			return err
		}
		// 班次消失后留在其上的换班申请已无意义，一并驳回
		// excludeID 传本申请 ID 即可：销班申请 ID 不会出现在换班表里
		if _, err := tx.ExchangeRequest.RejectPendingSiblings(ctx, shift.ShiftID, request.RequestID, now); err != nil {
			return err
		}
		return tx.DeletionRequest.Decide(ctx, request, model.RequestStatusApproved, now)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("批准销班失败", zap.String("request_id", requestID), zap.Error(err))
		}
		return err
	}

	relatedType := model.RelatedTypeDeletionRequest
	if shiftGone {
		return ErrShiftAlreadyDeleted
	}

	s.logger.Info("销班完成",
		zap.String("request_id", requestID),
		zap.String("requester_id", requesterID),
		zap.String("operator_id", actorID))

	s.notifier.Push(ctx, requesterID, NotificationTypeDeletionApproved,
		"销班申请已通过", "你的销班申请已通过，班次已移除",
		&relatedType, &requestID)
	return nil
}

func (s *requestService) rejectDeletion(ctx context.Context, requestID, actorID string) error {
	var requesterID string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		request, err := tx.DeletionRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestNotFound
		}
		requesterID = request.RequesterID
		return tx.DeletionRequest.Decide(ctx, request, model.RequestStatusRejected, time.Now())
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("驳回销班失败", zap.String("request_id", requestID), zap.Error(err))
		}
		return err
	}

	relatedType := model.RelatedTypeDeletionRequest
	s.notifier.Push(ctx, requesterID, NotificationTypeDeletionRejected,
		"销班申请被驳回", "店长驳回了你的销班申请",
		&relatedType, &requestID)
	return nil
}

// ═══════════════════════════════════════════════════════════════
// 查询
// ═══════════════════════════════════════════════════════════════

func (s *requestService) ListPendingForMe(ctx context.Context, employeeID string) (*dto.PendingRequestsResponse, error) {
	exchanges, err := s.repo.ExchangeRequest.ListPendingByApprover(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询待处理换班申请失败", zap.Error(err))
		return nil, err
	}
	additions, err := s.repo.AdditionRequest.ListPendingByTarget(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询待处理增班申请失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.PendingRequestsResponse{
		Exchanges: make([]dto.ExchangeRequestResponse, 0, len(exchanges)),
		Additions: make([]dto.AdditionRequestResponse, 0, len(additions)),
	}
	for i := range exchanges {
		resp.Exchanges = append(resp.Exchanges, toExchangeResponse(&exchanges[i]))
	}
	for i := range additions {
		resp.Additions = append(resp.Additions, toAdditionResponse(&additions[i]))
	}
	return resp, nil
}

func (s *requestService) ListMine(ctx context.Context, employeeID string) (*dto.MyRequestsResponse, error) {
	exchanges, err := s.repo.ExchangeRequest.ListByRequester(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询换班申请失败", zap.Error(err))
		return nil, err
	}
	additions, err := s.repo.AdditionRequest.ListByRequester(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询增班申请失败", zap.Error(err))
		return nil, err
	}
	deletions, err := s.repo.DeletionRequest.ListByRequester(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询销班申请失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.MyRequestsResponse{
		Exchanges: make([]dto.ExchangeRequestResponse, 0, len(exchanges)),
		Additions: make([]dto.AdditionRequestResponse, 0, len(additions)),
		Deletions: make([]dto.DeletionRequestResponse, 0, len(deletions)),
	}
	for i := range exchanges {
		resp.Exchanges = append(resp.Exchanges, toExchangeResponse(&exchanges[i]))
	}
	for i := range additions {
		resp.Additions = append(resp.Additions, toAdditionResponse(&additions[i]))
	}
	for i := range deletions {
		resp.Deletions = append(resp.Deletions, toDeletionResponse(&deletions[i]))
	}
	return resp, nil
}

func (s *requestService) ListPendingDeletions(ctx context.Context) ([]dto.DeletionRequestResponse, error) {
	deletions, err := s.repo.DeletionRequest.ListPending(ctx)
	if err != nil {
		s.logger.Error("查询待审批销班申请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DeletionRequestResponse, 0, len(deletions))
	for i := range deletions {
		result = append(result, toDeletionResponse(&deletions[i]))
	}
	return result, nil
}

// ── 内部辅助 ──

// isBusinessError 业务校验类错误不打 Error 日志
func isBusinessError(err error) bool {
	return errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrNoPermission) ||
		errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrNotShiftHolder)
}

func toExchangeResponse(r *model.ShiftExchangeRequest) dto.ExchangeRequestResponse {
	resp := dto.ExchangeRequestResponse{
		RequestID:   r.RequestID,
		ShiftID:     r.ShiftID,
		RequesterID: r.RequesterID,
		ApproverID:  r.ApproverID,
		Status:      r.Status,
		RequestedAt: r.RequestedAt.Format(requestTimeLayout),
		Shift:       toShiftBrief(r.Shift),
	}
	if r.Requester != nil {
		resp.RequesterName = r.Requester.Name
	}
	if r.Approver != nil {
		resp.ApproverName = r.Approver.Name
	}
	if r.RespondedAt != nil {
		t := r.RespondedAt.Format(requestTimeLayout)
		resp.RespondedAt = &t
	}
	return resp
}

func toAdditionResponse(r *model.ShiftAdditionRequest) dto.AdditionRequestResponse {
	resp := dto.AdditionRequestResponse{
		RequestID:        r.RequestID,
		RequesterID:      r.RequesterID,
		TargetEmployeeID: r.TargetEmployeeID,
		ShiftDate:        r.ShiftDate.Format("2006-01-02"),
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Status:           r.Status,
		RequestedAt:      r.RequestedAt.Format(requestTimeLayout),
	}
	if r.Requester != nil {
		resp.RequesterName = r.Requester.Name
	}
	if r.TargetEmployee != nil {
		resp.TargetEmployeeName = r.TargetEmployee.Name
	}
	if r.RespondedAt != nil {
		t := r.RespondedAt.Format(requestTimeLayout)
		resp.RespondedAt = &t
	}
	return resp
}

func toDeletionResponse(r *model.ShiftDeletionRequest) dto.DeletionRequestResponse {
	resp := dto.DeletionRequestResponse{
		RequestID:   r.RequestID,
		RequesterID: r.RequesterID,
		ShiftID:     r.ShiftID,
		Reason:      r.Reason,
		Status:      r.Status,
		Shift:       toShiftBrief(r.Shift),
	}
	if r.Requester != nil {
		resp.RequesterName = r.Requester.Name
	}
	if r.RespondedAt != nil {
		t := r.RespondedAt.Format(requestTimeLayout)
		resp.RespondedAt = &t
	}
	return resp
}
