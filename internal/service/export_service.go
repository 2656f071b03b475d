package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"shiftdesk/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoShifts     = errors.New("该范围内没有班次可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const exportTimezone = "Asia/Shanghai"

// ExportService 导出业务接口
//
// 设计说明：
//   - 排班表导出为 Excel (.xlsx)，按日期 × 员工呈现
//   - 个人班次导出为 iCalendar (.ics)，可被日历应用订阅
//   - 导出内容以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportShifts 导出指定日期范围内的全员排班表为 Excel
	ExportShifts(ctx context.Context, from, to string) (*bytes.Buffer, string, error)
	// ExportMyCalendar 导出某员工的全部未来班次为 ICS
	ExportMyCalendar(ctx context.Context, employeeID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportShifts — 导出排班表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "排班表"
//   - 表头: | 日期 | 员工 | 开始 | 结束 | 已调整 | 原班次归属 |
//   - 行按 work_date + start_time 排序（由查询保证）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportShifts(ctx context.Context, from, to string) (*bytes.Buffer, string, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return nil, "", err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, "", err
	}

	shifts, err := s.repo.Shift.ListByDateRange(ctx, fromDate, toDate)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	// 原班次归属列需要展示姓名
	originNames := make(map[string]string)
	var originIDs []string
	for i := range shifts {
		if id := shifts[i].OriginalEmployeeID; id != nil {
			if _, ok := originNames[*id]; !ok {
				originNames[*id] = ""
				originIDs = append(originIDs, *id)
			}
		}
	}
	if len(originIDs) > 0 {
		employees, err := s.repo.Employee.ListByIDs(ctx, originIDs)
		if err != nil {
			s.logger.Error("查询员工失败", zap.Error(err))
			return nil, "", err
		}
		for _, e := range employees {
			originNames[e.EmployeeID] = e.Name
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "D", 10)
	f.SetColWidth(sheetName, "E", "F", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("排班表 %s ~ %s", from, to))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "员工", "开始", "结束", "已调整", "原班次归属"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
	}

	// 数据行
	row := 3
	for i := range shifts {
		sh := &shifts[i]
		name := sh.EmployeeID
		if sh.Employee != nil {
			name = sh.Employee.Name
		}
		modified := "-"
		if sh.IsModified {
			modified = "是"
		}
		origin := "-"
		if sh.OriginalEmployeeID != nil {
			if n := originNames[*sh.OriginalEmployeeID]; n != "" {
				origin = n
			}
		}

		f.SetCellValue(sheetName, cell("A", row), sh.WorkDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("B", row), name)
		f.SetCellValue(sheetName, cell("C", row), sh.StartTime)
		f.SetCellValue(sheetName, cell("D", row), sh.EndTime)
		f.SetCellValue(sheetName, cell("E", row), modified)
		f.SetCellValue(sheetName, cell("F", row), origin)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("排班表_%s_%s.xlsx", from, to)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportMyCalendar — 导出个人班次为 ICS
// ═══════════════════════════════════════════════════════════
//
// 每个班次生成一个 VEVENT：
//   - UID 取班次 ID，重复导出时日历应用可按 UID 去重更新
//   - DTSTART/DTEND 按 Asia/Shanghai 时区组装

func (s *exportService) ExportMyCalendar(ctx context.Context, employeeID string) (*bytes.Buffer, string, error) {
	loc, err := time.LoadLocation(exportTimezone)
	if err != nil {
		loc = time.Local
	}

	today := localMidnight(time.Now().In(loc))
	shifts, err := s.repo.Shift.ListByEmployeeFromDate(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//shiftdesk//shift calendar//CN")

	stamp := time.Now()
	for i := range shifts {
		sh := &shifts[i]
		start, err := combineDateTime(sh.WorkDate, sh.StartTime, loc)
		if err != nil {
			s.logger.Warn("班次时间无法解析，已跳过",
				zap.String("shift_id", sh.ShiftID), zap.Error(err))
			continue
		}
		end, err := combineDateTime(sh.WorkDate, sh.EndTime, loc)
		if err != nil {
			continue
		}

		event := cal.AddEvent(sh.ShiftID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("班次 %s–%s", sh.StartTime, sh.EndTime))
		if sh.IsModified {
			event.SetDescription("该班次经过换班或合并调整")
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := "my_shifts.ics"
	return buf, filename, nil
}

// ── 辅助函数 ──

// combineDateTime 将日期与 "HH:MM" 组合为带时区的时间点
func combineDateTime(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
