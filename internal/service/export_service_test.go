package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftdesk/internal/model"
	"shiftdesk/internal/repository"
)

func setupExportService() (ExportService, *mockShiftRepo, *mockEmployeeRepo) {
	shiftRepo := newMockShiftRepo()
	employeeRepo := newMockEmployeeRepo()
	repo := &repository.Repository{
		Employee:        employeeRepo,
		Shift:           shiftRepo,
		ExchangeRequest: newMockExchangeRepo(),
		AdditionRequest: newMockAdditionRepo(),
		DeletionRequest: newMockDeletionRepo(),
		Notification:    newMockNotificationRepo(),
	}
	return NewExportService(repo, zap.NewNop()), shiftRepo, employeeRepo
}

func TestExportShifts_GeneratesWorkbook(t *testing.T) {
	svc, shiftRepo, employeeRepo := setupExportService()
	ctx := context.Background()

	_ = employeeRepo.Create(ctx, &model.Employee{EmployeeID: "emp-a", Name: "小张", Email: "a@test.com"})
	_ = shiftRepo.Create(ctx, &model.Shift{
		ShiftID: "s1", EmployeeID: "emp-a", WorkDate: testDate(1),
		StartTime: "09:00", EndTime: "18:00",
	})

	buf, filename, err := svc.ExportShifts(ctx, "2026-09-01", "2026-09-07")
	if err != nil {
		t.Fatalf("ExportShifts 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际 %s", filename)
	}
}

func TestExportShifts_EmptyRange(t *testing.T) {
	svc, _, _ := setupExportService()

	_, _, err := svc.ExportShifts(context.Background(), "2026-09-01", "2026-09-07")
	if !errors.Is(err, ErrExportNoShifts) {
		t.Errorf("期望 ErrExportNoShifts，实际: %v", err)
	}
}

func TestExportMyCalendar_GeneratesICS(t *testing.T) {
	svc, shiftRepo, _ := setupExportService()
	ctx := context.Background()

	// 未来一年内的班次，保证不被"今天起"过滤掉
	future := time.Now().AddDate(0, 1, 0)
	_ = shiftRepo.Create(ctx, &model.Shift{
		ShiftID: "s1", EmployeeID: "emp-a", WorkDate: future,
		StartTime: "09:00", EndTime: "18:00",
	})

	buf, filename, err := svc.ExportMyCalendar(ctx, "emp-a")
	if err != nil {
		t.Fatalf("ExportMyCalendar 应成功: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 格式")
	}
	if !strings.Contains(content, "s1") {
		t.Error("VEVENT 的 UID 应为班次 ID")
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应以 .ics 结尾，实际 %s", filename)
	}
}

func TestExportMyCalendar_NoShifts(t *testing.T) {
	svc, _, _ := setupExportService()

	_, _, err := svc.ExportMyCalendar(context.Background(), "emp-a")
	if !errors.Is(err, ErrExportNoShifts) {
		t.Errorf("期望 ErrExportNoShifts，实际: %v", err)
	}
}
