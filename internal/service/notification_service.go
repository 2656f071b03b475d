package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/model"
	"shiftdesk/internal/repository"
)

// ── 通知类型 ──

const (
	NotificationTypeExchangeCreated  = "exchange_request_created"
	NotificationTypeExchangeApproved = "exchange_request_approved"
	NotificationTypeExchangeRejected = "exchange_request_rejected"
	NotificationTypeAdditionCreated  = "addition_request_created"
	NotificationTypeAdditionApproved = "addition_request_approved"
	NotificationTypeAdditionRejected = "addition_request_rejected"
	NotificationTypeDeletionCreated  = "deletion_request_created"
	NotificationTypeDeletionApproved = "deletion_request_approved"
	NotificationTypeDeletionRejected = "deletion_request_rejected"
	NotificationTypeShiftChanged     = "shift_changed"
)

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 通知业务接口
type NotificationService interface {
	// Push 写入一条通知；失败只记日志，不向上传播
	// 通知属于尽力而为的旁路：主流程事务已提交，不能因为通知失败而报错
	Push(ctx context.Context, employeeID, notifType, title, content string, relatedType, relatedID *string)
	List(ctx context.Context, employeeID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, employeeID string) (int64, error)
	MarkRead(ctx context.Context, notificationID, employeeID string) error
	MarkAllRead(ctx context.Context, employeeID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Push(ctx context.Context, employeeID, notifType, title, content string, relatedType, relatedID *string) {
	notification := &model.Notification{
		EmployeeID:  employeeID,
		Type:        notifType,
		Title:       title,
		Content:     content,
		RelatedType: relatedType,
		RelatedID:   relatedID,
	}
	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.logger.Warn("写入通知失败",
			zap.String("employee_id", employeeID),
			zap.String("type", notifType),
			zap.Error(err))
	}
}

func (s *notificationService) List(ctx context.Context, employeeID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByEmployee(ctx, employeeID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		result = append(result, dto.NotificationResponse{
			ID:          n.NotificationID,
			Type:        n.Type,
			Title:       n.Title,
			Content:     n.Content,
			IsRead:      n.IsRead,
			RelatedType: n.RelatedType,
			RelatedID:   n.RelatedID,
			CreatedAt:   n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return result, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, employeeID string) (int64, error) {
	count, err := s.repo.Notification.CountUnread(ctx, employeeID)
	if err != nil {
		s.logger.Error("统计未读通知失败", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, employeeID string) error {
	err := s.repo.Notification.MarkRead(ctx, notificationID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("标记通知已读失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, employeeID string) error {
	if err := s.repo.Notification.MarkAllRead(ctx, employeeID); err != nil {
		s.logger.Error("标记全部已读失败", zap.Error(err))
		return err
	}
	return nil
}
