package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftdesk/internal/model"
)

// NotificationRepository 通知消息数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByEmployee(ctx context.Context, employeeID string, offset, limit int) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, employeeID string) (int64, error)
	MarkRead(ctx context.Context, notificationID, employeeID string) error
	MarkAllRead(ctx context.Context, employeeID string) error
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepo) ListByEmployee(ctx context.Context, employeeID string, offset, limit int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("employee_id = ?", employeeID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, notificationID, employeeID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ? AND employee_id = ?", notificationID, employeeID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Update("is_read", true).Error
}
