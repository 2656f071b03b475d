package service

import (
	"errors"
	"time"

	"shiftdesk/internal/model"
)

// ── 时间区间工具 ──────────────────────────────────────────────
//
// 班次时间一律使用 "HH:MM" 字符串（零填充），区间为半开区间 [start, end)。
// 零填充后字符串比较与时间先后一致，无需转换为 time.Time。
// ─────────────────────────────────────────────────────────────

var (
	ErrInvalidClock      = errors.New("时间格式无效，应为 HH:MM")
	ErrInvalidTimeWindow = errors.New("开始时间必须早于结束时间")
)

// validClock "HH:MM" 且零填充
// time.Parse 对 "9:00" 这类单数字小时也能解析成功，须先检查形状
func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// validateWindow 校验 "HH:MM" 区间：格式合法且 start < end
func validateWindow(start, end string) error {
	if !validClock(start) || !validClock(end) {
		return ErrInvalidClock
	}
	if start >= end {
		return ErrInvalidTimeWindow
	}
	return nil
}

// windowsOverlap 严格重叠：两个半开区间相交
// 首尾相接（一个结束于 18:00、另一个开始于 18:00）不算重叠
func windowsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// windowsTouchOrOverlap 重叠或首尾相接（可合并判定）
func windowsTouchOrOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// conflictingShift 在 shifts 中查找与 [start, end) 严格重叠的第一个班次
// 只读；shifts 为空时视为无冲突
func conflictingShift(shifts []model.Shift, start, end string) *model.Shift {
	for i := range shifts {
		if windowsOverlap(start, end, shifts[i].StartTime, shifts[i].EndTime) {
			return &shifts[i]
		}
	}
	return nil
}

// groupShiftsByEmployee 将同一天的班次按员工分组
func groupShiftsByEmployee(shifts []model.Shift) map[string][]model.Shift {
	grouped := make(map[string][]model.Shift, len(shifts))
	for _, sh := range shifts {
		grouped[sh.EmployeeID] = append(grouped[sh.EmployeeID], sh)
	}
	return grouped
}
