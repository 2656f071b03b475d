package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/model"
	"shiftdesk/internal/repository"
)

// ── 班次模块业务错误 ──

var (
	ErrShiftNotFound   = errors.New("班次不存在")
	ErrInvalidDate     = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrEmployeeMissing = errors.New("员工不存在")
)

// ShiftConflictError 直接录入班次时与已有班次重叠
type ShiftConflictError struct {
	Existing *model.Shift
}

func (e *ShiftConflictError) Error() string {
	return "该员工在 " + e.Existing.StartTime + "–" + e.Existing.EndTime + " 已有班次，时段重叠"
}

// ShiftService 班次业务接口
type ShiftService interface {
	// CreateShift 店长直接录入班次（重叠即拒绝，不做合并）
	CreateShift(ctx context.Context, req *dto.CreateShiftRequest, callerID string) (*dto.ShiftResponse, error)
	// DeleteShift 店长直接移除班次
	DeleteShift(ctx context.Context, shiftID string) error
	// ListByRange 按日期范围查询全员班次
	ListByRange(ctx context.Context, from, to string) ([]dto.ShiftResponse, error)
	// ListMine 查询本人指定范围内的班次
	ListMine(ctx context.Context, employeeID, from, to string) ([]dto.ShiftResponse, error)
	// ListMyFuture 查询本人今天起的全部班次（销班申请的班次选择器）
	ListMyFuture(ctx context.Context, employeeID string) ([]dto.ShiftResponse, error)
	// FindConflicts 重叠检查器：返回给定时段内无冲突的候选人与有冲突的候选人（含姓名）
	FindConflicts(ctx context.Context, candidateIDs []string, date time.Time, start, end string) ([]string, []dto.ConflictingEmployee, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

// parseDate 解析 "2006-01-02" 日期
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// localMidnight 取 t 所在时区当天的零点
// time.Truncate 按 UTC 对齐，非 UTC 时区下可能截到前一天
func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *shiftService) CreateShift(ctx context.Context, req *dto.CreateShiftRequest, callerID string) (*dto.ShiftResponse, error) {
	date, err := parseDate(req.WorkDate)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeMissing
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	var created *model.Shift
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Shift.ListByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if conflict := conflictingShift(existing, req.StartTime, req.EndTime); conflict != nil {
			return &ShiftConflictError{Existing: conflict}
		}

		created = &model.Shift{
			EmployeeID: req.EmployeeID,
			WorkDate:   date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
		}
		return tx.Shift.Create(ctx, created)
	})
	if err != nil {
		var conflictErr *ShiftConflictError
		if !errors.As(err, &conflictErr) {
			s.logger.Error("录入班次失败", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("店长录入班次",
		zap.String("shift_id", created.ShiftID),
		zap.String("employee_id", created.EmployeeID),
		zap.String("operator_id", callerID))

	resp := toShiftResponse(created)
	return &resp, nil
}

func (s *shiftService) DeleteShift(ctx context.Context, shiftID string) error {
	if _, err := s.repo.Shift.GetByID(ctx, shiftID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return err
	}
	if err := s.repo.Shift.Delete(ctx, shiftID); err != nil {
		s.logger.Error("删除班次失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *shiftService) ListByRange(ctx context.Context, from, to string) ([]dto.ShiftResponse, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, err
	}

	shifts, err := s.repo.Shift.ListByDateRange(ctx, fromDate, toDate)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	return toShiftResponses(shifts), nil
}

func (s *shiftService) ListMine(ctx context.Context, employeeID, from, to string) ([]dto.ShiftResponse, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, err
	}

	shifts, err := s.repo.Shift.ListByEmployeeFromDate(ctx, employeeID, fromDate)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		if shifts[i].WorkDate.After(toDate) {
			break
		}
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result, nil
}

func (s *shiftService) ListMyFuture(ctx context.Context, employeeID string) ([]dto.ShiftResponse, error) {
	today := localMidnight(time.Now())
	shifts, err := s.repo.Shift.ListByEmployeeFromDate(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	return toShiftResponses(shifts), nil
}

// FindConflicts 对候选人集合执行重叠检查
// 冲突判定为严格半开区间相交：首尾相接（18:00 结束 + 18:00 开始）不算冲突。
// 候选集为空或候选人不存在（无班次可查）时视为无冲突，由调用方先行拒绝空候选集。
func (s *shiftService) FindConflicts(ctx context.Context, candidateIDs []string, date time.Time, start, end string) ([]string, []dto.ConflictingEmployee, error) {
	if len(candidateIDs) == 0 {
		return nil, nil, nil
	}

	shifts, err := s.repo.Shift.ListByEmployeesAndDate(ctx, candidateIDs, date)
	if err != nil {
		s.logger.Error("查询候选人班次失败", zap.Error(err))
		return nil, nil, err
	}
	byEmployee := groupShiftsByEmployee(shifts)

	var available []string
	var conflictedIDs []string
	for _, id := range candidateIDs {
		if conflictingShift(byEmployee[id], start, end) != nil {
			conflictedIDs = append(conflictedIDs, id)
		} else {
			available = append(available, id)
		}
	}

	if len(conflictedIDs) == 0 {
		return available, nil, nil
	}

	// 冲突候选人需要展示姓名
	employees, err := s.repo.Employee.ListByIDs(ctx, conflictedIDs)
	if err != nil {
		s.logger.Error("查询冲突员工失败", zap.Error(err))
		return nil, nil, err
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.EmployeeID] = e.Name
	}

	conflicting := make([]dto.ConflictingEmployee, 0, len(conflictedIDs))
	for _, id := range conflictedIDs {
		conflicting = append(conflicting, dto.ConflictingEmployee{ID: id, Name: names[id]})
	}
	return available, conflicting, nil
}

// ── 响应转换 ──

func toShiftResponse(sh *model.Shift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:                 sh.ShiftID,
		EmployeeID:         sh.EmployeeID,
		WorkDate:           sh.WorkDate.Format("2006-01-02"),
		StartTime:          sh.StartTime,
		EndTime:            sh.EndTime,
		IsModified:         sh.IsModified,
		OriginalEmployeeID: sh.OriginalEmployeeID,
	}
	if sh.Employee != nil {
		resp.EmployeeName = sh.Employee.Name
	}
	return resp
}

func toShiftResponses(shifts []model.Shift) []dto.ShiftResponse {
	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result
}

func toShiftBrief(sh *model.Shift) *dto.ShiftBrief {
	if sh == nil {
		return nil
	}
	return &dto.ShiftBrief{
		ID:        sh.ShiftID,
		WorkDate:  sh.WorkDate.Format("2006-01-02"),
		StartTime: sh.StartTime,
		EndTime:   sh.EndTime,
	}
}
