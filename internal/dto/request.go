package dto

// ── 申请模块 DTO ──

// CreateExchangeRequest 发起换班转让请求
type CreateExchangeRequest struct {
	ShiftID     string   `json:"shift_id"     binding:"required,uuid"`
	ApproverIDs []string `json:"approver_ids" binding:"required,dive,uuid"`
}

// CreateAdditionRequest 发起增班请求（店长操作）
type CreateAdditionRequest struct {
	TargetEmployeeID string `json:"target_employee_id" binding:"required,uuid"`
	ShiftDate        string `json:"shift_date"         binding:"required"` // "2006-01-02"
	StartTime        string `json:"start_time"         binding:"required"` // "HH:MM"
	EndTime          string `json:"end_time"           binding:"required"` // "HH:MM"
}

// CreateDeletionRequest 发起销班请求
type CreateDeletionRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
	Reason  string `json:"reason"   binding:"required,max=500"`
}

// ── 响应 ──

// ExchangeRequestResponse 换班转让申请响应
type ExchangeRequestResponse struct {
	RequestID     string      `json:"request_id"`
	ShiftID       string      `json:"shift_id"`
	RequesterID   string      `json:"requester_id"`
	RequesterName string      `json:"requester_name,omitempty"`
	ApproverID    string      `json:"approver_id"`
	ApproverName  string      `json:"approver_name,omitempty"`
	Status        string      `json:"status"`
	RequestedAt   string      `json:"requested_at"`
	RespondedAt   *string     `json:"responded_at,omitempty"`
	Shift         *ShiftBrief `json:"shift,omitempty"`
}

// ExchangeCreateResponse 发起换班转让的结果
// Dropped 为因时段冲突被过滤掉的候选接班人，用于用户侧提示
type ExchangeCreateResponse struct {
	Requests []ExchangeRequestResponse `json:"requests"`
	Dropped  []ConflictingEmployee     `json:"dropped"`
}

// AdditionRequestResponse 增班申请响应
type AdditionRequestResponse struct {
	RequestID          string  `json:"request_id"`
	RequesterID        string  `json:"requester_id"`
	RequesterName      string  `json:"requester_name,omitempty"`
	TargetEmployeeID   string  `json:"target_employee_id"`
	TargetEmployeeName string  `json:"target_employee_name,omitempty"`
	ShiftDate          string  `json:"shift_date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	Status             string  `json:"status"`
	RequestedAt        string  `json:"requested_at"`
	RespondedAt        *string `json:"responded_at,omitempty"`
}

// DeletionRequestResponse 销班申请响应
type DeletionRequestResponse struct {
	RequestID     string      `json:"request_id"`
	RequesterID   string      `json:"requester_id"`
	RequesterName string      `json:"requester_name,omitempty"`
	ShiftID       string      `json:"shift_id"`
	Reason        string      `json:"reason"`
	Status        string      `json:"status"`
	RespondedAt   *string     `json:"responded_at,omitempty"`
	Shift         *ShiftBrief `json:"shift,omitempty"`
}

// PendingRequestsResponse 待我处理的申请（换班接班人 / 增班目标员工视角）
type PendingRequestsResponse struct {
	Exchanges []ExchangeRequestResponse `json:"exchanges"`
	Additions []AdditionRequestResponse `json:"additions"`
}

// MyRequestsResponse 我发起的申请
type MyRequestsResponse struct {
	Exchanges []ExchangeRequestResponse `json:"exchanges"`
	Additions []AdditionRequestResponse `json:"additions"`
	Deletions []DeletionRequestResponse `json:"deletions"`
}
