package service

import (
	"context"
	"time"

	"shiftdesk/internal/model"
	"shiftdesk/internal/repository"
)

// ── 区间合并器 ────────────────────────────────────────────────
//
// 将一段新的班次时间并入某员工某天的已有班次：
//   - 与已有班次重叠或首尾相接 → 取并集写入单条班次，删除被吞并的旧行
//   - 否则 → 按原区间插入新行
//
// 首尾相接也参与合并：18:00–20:00 的已有班次加上转让来的 20:00–23:00
// 会得到一条连续的 18:00–23:00，而不是两条相邻的班次行。
// 删除与插入必须处于同一事务内，调用方负责传入事务绑定的 Repository。
// ─────────────────────────────────────────────────────────────

// provenance 班次来源元数据：记录这段时间原本属于谁
type provenance struct {
	isModified         bool
	originalEmployeeID *string
}

// mergeWindow 计算 [start, end) 与已有班次的并集窗口
// 返回并集起止时间与被吞并的班次 ID；无可合并班次时返回原区间与空列表
func mergeWindow(existing []model.Shift, start, end string) (newStart, newEnd string, supersededIDs []string) {
	newStart, newEnd = start, end
	for _, sh := range existing {
		if !windowsTouchOrOverlap(start, end, sh.StartTime, sh.EndTime) {
			continue
		}
		if sh.StartTime < newStart {
			newStart = sh.StartTime
		}
		if sh.EndTime > newEnd {
			newEnd = sh.EndTime
		}
		supersededIDs = append(supersededIDs, sh.ShiftID)
	}
	return newStart, newEnd, supersededIDs
}

// commitInterval 将区间写入员工的排班（区间合并器入口）
// tx 必须是事务绑定的 Repository：删除被吞并行与插入并集行要么同时生效要么都不生效
func commitInterval(ctx context.Context, tx *repository.Repository, employeeID string, date time.Time, start, end string, prov provenance) (*model.Shift, error) {
	existing, err := tx.Shift.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	newStart, newEnd, superseded := mergeWindow(existing, start, end)

	shift := &model.Shift{
		EmployeeID:         employeeID,
		WorkDate:           date,
		StartTime:          newStart,
		EndTime:            newEnd,
		IsModified:         prov.isModified,
		OriginalEmployeeID: prov.originalEmployeeID,
	}

	if len(superseded) > 0 {
		// 发生合并的班次一律标记为已修改
		shift.IsModified = true
		if err := tx.Shift.DeleteByIDs(ctx, superseded); err != nil {
			return nil, err
		}
	}

	if err := tx.Shift.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}
