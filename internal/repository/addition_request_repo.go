package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shiftdesk/internal/model"
	pkgerrors "shiftdesk/pkg/errors"
)

// AdditionRequestRepository 增班申请数据访问接口
type AdditionRequestRepository interface {
	Create(ctx context.Context, request *model.ShiftAdditionRequest) error
	GetByID(ctx context.Context, id string) (*model.ShiftAdditionRequest, error)
	// GetByIDForUpdate 行级锁加载申请，须在事务内调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftAdditionRequest, error)
	ListPendingByTarget(ctx context.Context, targetEmployeeID string) ([]model.ShiftAdditionRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.ShiftAdditionRequest, error)
	// Decide 将申请迁移到终态并写入 RespondedAt（乐观锁守护）
	Decide(ctx context.Context, request *model.ShiftAdditionRequest, status string, respondedAt time.Time) error
}

// additionRequestRepo AdditionRequestRepository 的 GORM 实现
type additionRequestRepo struct {
	db *gorm.DB
}

// NewAdditionRequestRepo 创建 AdditionRequestRepository 实例
func NewAdditionRequestRepo(db *gorm.DB) AdditionRequestRepository {
	return &additionRequestRepo{db: db}
}

func (r *additionRequestRepo) Create(ctx context.Context, request *model.ShiftAdditionRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *additionRequestRepo) GetByID(ctx context.Context, id string) (*model.ShiftAdditionRequest, error) {
	var request model.ShiftAdditionRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("TargetEmployee").
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *additionRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftAdditionRequest, error) {
	var request model.ShiftAdditionRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *additionRequestRepo) ListPendingByTarget(ctx context.Context, targetEmployeeID string) ([]model.ShiftAdditionRequest, error) {
	var requests []model.ShiftAdditionRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("target_employee_id = ? AND status = ?", targetEmployeeID, model.RequestStatusPending).
		Order("requested_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *additionRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.ShiftAdditionRequest, error) {
	var requests []model.ShiftAdditionRequest
	err := r.db.WithContext(ctx).
		Preload("TargetEmployee").
		Where("requester_id = ?", requesterID).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *additionRequestRepo) Decide(ctx context.Context, request *model.ShiftAdditionRequest, status string, respondedAt time.Time) error {
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
