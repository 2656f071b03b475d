package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 店长直接录入班次请求
type CreateShiftRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	WorkDate   string `json:"work_date"   binding:"required"` // "2006-01-02"
	StartTime  string `json:"start_time"  binding:"required"` // "HH:MM"
	EndTime    string `json:"end_time"    binding:"required"` // "HH:MM"
}

// ShiftRangeRequest 班次范围查询参数
type ShiftRangeRequest struct {
	From string `form:"from" binding:"required"` // "2006-01-02"
	To   string `form:"to"   binding:"required"` // "2006-01-02"
}

// ── 响应 ──

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	WorkDate           string  `json:"work_date"`  // "2006-01-02"
	StartTime          string  `json:"start_time"` // "HH:MM"
	EndTime            string  `json:"end_time"`   // "HH:MM"
	IsModified         bool    `json:"is_modified"`
	OriginalEmployeeID *string `json:"original_employee_id,omitempty"`
}

// ShiftBrief 班次简要信息（嵌入申请响应）
type ShiftBrief struct {
	ID        string `json:"id"`
	WorkDate  string `json:"work_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ConflictingEmployee 时段冲突员工（用于用户侧提示）
type ConflictingEmployee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
