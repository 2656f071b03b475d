package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 新建员工账号请求（店长操作）
type CreateEmployeeRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=20"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Role     string `json:"role"     binding:"omitempty,oneof=owner staff"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	PaginationRequest
}

// ResetPasswordRequest 店长重置员工密码请求
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=20"`
}
