package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/model"
	"shiftdesk/internal/repository"
)

var ErrEmailTaken = errors.New("该邮箱已被注册")

// EmployeeService 员工管理业务接口（店长操作为主）
type EmployeeService interface {
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	Get(ctx context.Context, employeeID string) (*dto.EmployeeDetailResponse, error)
	// Create 店长创建员工账号，新账号首次登录须改密
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, operatorID string) (*dto.EmployeeResponse, error)
	// ResetPassword 店长重置员工密码为指定初始密码
	ResetPassword(ctx context.Context, employeeID, newPassword, operatorID string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	employees, total, err := s.repo.Employee.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		result = append(result, dto.EmployeeResponse{
			ID:                 e.EmployeeID,
			Name:               e.Name,
			Email:              e.Email,
			Role:               e.Role,
			MustChangePassword: e.MustChangePassword,
		})
	}
	return result, total, nil
}

func (s *employeeService) Get(ctx context.Context, employeeID string) (*dto.EmployeeDetailResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeMissing
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	return &dto.EmployeeDetailResponse{
		ID:                 employee.EmployeeID,
		Name:               employee.Name,
		Email:              employee.Email,
		Role:               employee.Role,
		MustChangePassword: employee.MustChangePassword,
		CreatedAt:          employee.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, operatorID string) (*dto.EmployeeResponse, error) {
	if _, err := s.repo.Employee.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}

	employee := &model.Employee{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               role,
		MustChangePassword: true,
	}
	employee.CreatedBy = &operatorID
	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建员工账号",
		zap.String("employee_id", employee.EmployeeID),
		zap.String("role", employee.Role),
		zap.String("operator_id", operatorID))

	return &dto.EmployeeResponse{
		ID:                 employee.EmployeeID,
		Name:               employee.Name,
		Email:              employee.Email,
		Role:               employee.Role,
		MustChangePassword: employee.MustChangePassword,
	}, nil
}

func (s *employeeService) ResetPassword(ctx context.Context, employeeID, newPassword, operatorID string) error {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeMissing
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return err
	}

	employee.PasswordHash = string(hash)
	employee.MustChangePassword = true
	employee.UpdatedBy = &operatorID
	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		s.logger.Error("重置密码失败", zap.Error(err))
		return err
	}

	s.logger.Info("重置员工密码",
		zap.String("employee_id", employeeID),
		zap.String("operator_id", operatorID))
	return nil
}
