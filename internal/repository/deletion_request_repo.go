package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shiftdesk/internal/model"
	pkgerrors "shiftdesk/pkg/errors"
)

// DeletionRequestRepository 销班申请数据访问接口
type DeletionRequestRepository interface {
	Create(ctx context.Context, request *model.ShiftDeletionRequest) error
	GetByID(ctx context.Context, id string) (*model.ShiftDeletionRequest, error)
	// GetByIDForUpdate 行级锁加载申请，须在事务内调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftDeletionRequest, error)
	ExistsPendingByShift(ctx context.Context, shiftID string) (bool, error)
	ListPending(ctx context.Context) ([]model.ShiftDeletionRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.ShiftDeletionRequest, error)
	// Decide 将申请迁移到终态并写入 RespondedAt（乐观锁守护）
	Decide(ctx context.Context, request *model.ShiftDeletionRequest, status string, respondedAt time.Time) error
}

// deletionRequestRepo DeletionRequestRepository 的 GORM 实现
type deletionRequestRepo struct {
	db *gorm.DB
}

// NewDeletionRequestRepo 创建 DeletionRequestRepository 实例
func NewDeletionRequestRepo(db *gorm.DB) DeletionRequestRepository {
	return &deletionRequestRepo{db: db}
}

func (r *deletionRequestRepo) Create(ctx context.Context, request *model.ShiftDeletionRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *deletionRequestRepo) GetByID(ctx context.Context, id string) (*model.ShiftDeletionRequest, error) {
	var request model.ShiftDeletionRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Shift").
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *deletionRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftDeletionRequest, error) {
	var request model.ShiftDeletionRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *deletionRequestRepo) ExistsPendingByShift(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftDeletionRequest{}).
		Where("shift_id = ? AND status = ?", shiftID, model.RequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *deletionRequestRepo) ListPending(ctx context.Context) ([]model.ShiftDeletionRequest, error) {
	var requests []model.ShiftDeletionRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Shift").
		Where("status = ?", model.RequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *deletionRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.ShiftDeletionRequest, error) {
	var requests []model.ShiftDeletionRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *deletionRequestRepo) Decide(ctx context.Context, request *model.ShiftDeletionRequest, status string, respondedAt time.Time) error {
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
