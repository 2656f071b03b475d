package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shiftdesk/internal/model"
	pkgerrors "shiftdesk/pkg/errors"
)

// ExchangeRequestRepository 换班转让申请数据访问接口
type ExchangeRequestRepository interface {
	BatchCreate(ctx context.Context, requests []model.ShiftExchangeRequest) error
	GetByID(ctx context.Context, id string) (*model.ShiftExchangeRequest, error)
	// GetByIDForUpdate 行级锁加载申请，须在事务内调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftExchangeRequest, error)
	ListPendingByShift(ctx context.Context, shiftID string) ([]model.ShiftExchangeRequest, error)
	ListPendingByApprover(ctx context.Context, approverID string) ([]model.ShiftExchangeRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.ShiftExchangeRequest, error)
	// Decide 将申请迁移到终态并写入 RespondedAt（乐观锁守护）
	Decide(ctx context.Context, request *model.ShiftExchangeRequest, status string, respondedAt time.Time) error
	// RejectPendingSiblings 将同一班次上除 excludeID 外的全部 pending 申请批量置为 rejected
	RejectPendingSiblings(ctx context.Context, shiftID, excludeID string, respondedAt time.Time) (int64, error)
}

// exchangeRequestRepo ExchangeRequestRepository 的 GORM 实现
type exchangeRequestRepo struct {
	db *gorm.DB
}

// NewExchangeRequestRepo 创建 ExchangeRequestRepository 实例
func NewExchangeRequestRepo(db *gorm.DB) ExchangeRequestRepository {
	return &exchangeRequestRepo{db: db}
}

func (r *exchangeRequestRepo) BatchCreate(ctx context.Context, requests []model.ShiftExchangeRequest) error {
	if len(requests) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&requests).Error
}

func (r *exchangeRequestRepo) GetByID(ctx context.Context, id string) (*model.ShiftExchangeRequest, error) {
	var request model.ShiftExchangeRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Approver").
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *exchangeRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftExchangeRequest, error) {
	var request model.ShiftExchangeRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *exchangeRequestRepo) ListPendingByShift(ctx context.Context, shiftID string) ([]model.ShiftExchangeRequest, error) {
	var requests []model.ShiftExchangeRequest
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND status = ?", shiftID, model.RequestStatusPending).
		Order("requested_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *exchangeRequestRepo) ListPendingByApprover(ctx context.Context, approverID string) ([]model.ShiftExchangeRequest, error) {
	var requests []model.ShiftExchangeRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Shift").
		Where("approver_id = ? AND status = ?", approverID, model.RequestStatusPending).
		Order("requested_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *exchangeRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.ShiftExchangeRequest, error) {
	var requests []model.ShiftExchangeRequest
	err := r.db.WithContext(ctx).
		Preload("Approver").
		Preload("Shift").
		Where("requester_id = ?", requesterID).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *exchangeRequestRepo) Decide(ctx context.Context, request *model.ShiftExchangeRequest, status string, respondedAt time.Time) error {
	oldVersion := request.Version
	result := r.db.WithContext(ctx).
		Model(request).
		Where("request_id = ? AND status = ? AND version = ?",
			request.RequestID, model.RequestStatusPending, oldVersion).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": respondedAt,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	request.Status = status
	request.RespondedAt = &respondedAt
	request.Version = oldVersion + 1
	return nil
}

func (r *exchangeRequestRepo) RejectPendingSiblings(ctx context.Context, shiftID, excludeID string, respondedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ShiftExchangeRequest{}).
		Where("shift_id = ? AND request_id != ? AND status = ?",
			shiftID, excludeID, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":       model.RequestStatusRejected,
			"responded_at": respondedAt,
			"version":      gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}
