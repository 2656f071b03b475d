package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"shiftdesk/internal/model"
	pkgerrors "shiftdesk/pkg/errors"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee // key: employee_id 及 "email:"+email
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		employee.EmployeeID = "emp-" + employee.Name
	}
	if employee.Version == 0 {
		employee.Version = 1
	}
	m.employees[employee.EmployeeID] = employee
	if employee.Email != "" {
		m.employees["email:"+employee.Email] = employee
	}
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	if e, ok := m.employees["email:"+email]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) ListByIDs(_ context.Context, ids []string) ([]model.Employee, error) {
	var result []model.Employee
	for _, id := range ids {
		if e, ok := m.employees[id]; ok {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) List(_ context.Context, offset, limit int) ([]model.Employee, int64, error) {
	seen := make(map[string]bool)
	var all []model.Employee
	for _, e := range m.employees {
		if !seen[e.EmployeeID] {
			seen[e.EmployeeID] = true
			all = append(all, *e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EmployeeID < all[j].EmployeeID })
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	stored, ok := m.employees[employee.EmployeeID]
	if !ok || stored.Version != employee.Version {
		return pkgerrors.ErrOptimisticLock
	}
	employee.Version++
	copied := *employee
	m.employees[employee.EmployeeID] = &copied
	if employee.Email != "" {
		m.employees["email:"+employee.Email] = &copied
	}
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts  map[string]*model.Shift
	counter int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.counter++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.counter)
	}
	copied := *shift
	m.shifts[shift.ShiftID] = &copied
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Shift, error) {
	// mock 中与 GetByID 行为一致
	return m.GetByID(ctx, id)
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (m *mockShiftRepo) ListByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.EmployeeID == employeeID && sameDay(s.WorkDate, date) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockShiftRepo) ListByEmployeesAndDate(_ context.Context, employeeIDs []string, date time.Time) ([]model.Shift, error) {
	idSet := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		idSet[id] = true
	}
	var result []model.Shift
	for _, s := range m.shifts {
		if idSet[s.EmployeeID] && sameDay(s.WorkDate, date) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].EmployeeID != result[j].EmployeeID {
			return result[i].EmployeeID < result[j].EmployeeID
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockShiftRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Shift, error) {
	fromStr, toStr := from.Format("2006-01-02"), to.Format("2006-01-02")
	var result []model.Shift
	for _, s := range m.shifts {
		d := s.WorkDate.Format("2006-01-02")
		if d >= fromStr && d <= toStr {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		di, dj := result[i].WorkDate.Format("2006-01-02"), result[j].WorkDate.Format("2006-01-02")
		if di != dj {
			return di < dj
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockShiftRepo) ListByEmployeeFromDate(_ context.Context, employeeID string, from time.Time) ([]model.Shift, error) {
	fromStr := from.Format("2006-01-02")
	var result []model.Shift
	for _, s := range m.shifts {
		if s.EmployeeID == employeeID && s.WorkDate.Format("2006-01-02") >= fromStr {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		di, dj := result[i].WorkDate.Format("2006-01-02"), result[j].WorkDate.Format("2006-01-02")
		if di != dj {
			return di < dj
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.shifts, id)
	return nil
}

func (m *mockShiftRepo) DeleteByIDs(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.shifts, id)
	}
	return nil
}

// ── Mock ExchangeRequestRepository ──

type mockExchangeRepo struct {
	requests map[string]*model.ShiftExchangeRequest
	counter  int
}

func newMockExchangeRepo() *mockExchangeRepo {
	return &mockExchangeRepo{requests: make(map[string]*model.ShiftExchangeRequest)}
}

func (m *mockExchangeRepo) BatchCreate(_ context.Context, requests []model.ShiftExchangeRequest) error {
	for i := range requests {
		if requests[i].RequestID == "" {
			m.counter++
			requests[i].RequestID = fmt.Sprintf("exch-%d", m.counter)
		}
		if requests[i].Version == 0 {
			requests[i].Version = 1
		}
		copied := requests[i]
		m.requests[requests[i].RequestID] = &copied
	}
	return nil
}

func (m *mockExchangeRepo) GetByID(_ context.Context, id string) (*model.ShiftExchangeRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExchangeRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftExchangeRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockExchangeRepo) ListPendingByShift(_ context.Context, shiftID string) ([]model.ShiftExchangeRequest, error) {
	var result []model.ShiftExchangeRequest
	for _, r := range m.requests {
		if r.ShiftID == shiftID && r.Status == model.RequestStatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockExchangeRepo) ListPendingByApprover(_ context.Context, approverID string) ([]model.ShiftExchangeRequest, error) {
	var result []model.ShiftExchangeRequest
	for _, r := range m.requests {
		if r.ApproverID == approverID && r.Status == model.RequestStatusPending {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestID < result[j].RequestID })
	return result, nil
}

func (m *mockExchangeRepo) ListByRequester(_ context.Context, requesterID string) ([]model.ShiftExchangeRequest, error) {
	var result []model.ShiftExchangeRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestID < result[j].RequestID })
	return result, nil
}

func (m *mockExchangeRepo) Decide(_ context.Context, request *model.ShiftExchangeRequest, status string, respondedAt time.Time) error {
	stored, ok := m.requests[request.RequestID]
	if !ok || stored.Status != model.RequestStatusPending || stored.Version != request.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = status
	stored.RespondedAt = &respondedAt
	stored.Version++
	request.Status = status
	request.RespondedAt = &respondedAt
	request.Version = stored.Version
	return nil
}

func (m *mockExchangeRepo) RejectPendingSiblings(_ context.Context, shiftID, excludeID string, respondedAt time.Time) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.ShiftID == shiftID && r.RequestID != excludeID && r.Status == model.RequestStatusPending {
			r.Status = model.RequestStatusRejected
			r.RespondedAt = &respondedAt
			r.Version++
			count++
		}
	}
	return count, nil
}

// ── Mock AdditionRequestRepository ──

type mockAdditionRepo struct {
	requests map[string]*model.ShiftAdditionRequest
	counter  int
}

func newMockAdditionRepo() *mockAdditionRepo {
	return &mockAdditionRepo{requests: make(map[string]*model.ShiftAdditionRequest)}
}

func (m *mockAdditionRepo) Create(_ context.Context, request *model.ShiftAdditionRequest) error {
	if request.RequestID == "" {
		m.counter++
		request.RequestID = fmt.Sprintf("add-%d", m.counter)
	}
	if request.Version == 0 {
		request.Version = 1
	}
	copied := *request
	m.requests[request.RequestID] = &copied
	return nil
}

func (m *mockAdditionRepo) GetByID(_ context.Context, id string) (*model.ShiftAdditionRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdditionRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftAdditionRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockAdditionRepo) ListPendingByTarget(_ context.Context, targetEmployeeID string) ([]model.ShiftAdditionRequest, error) {
	var result []model.ShiftAdditionRequest
	for _, r := range m.requests {
		if r.TargetEmployeeID == targetEmployeeID && r.Status == model.RequestStatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAdditionRepo) ListByRequester(_ context.Context, requesterID string) ([]model.ShiftAdditionRequest, error) {
	var result []model.ShiftAdditionRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAdditionRepo) Decide(_ context.Context, request *model.ShiftAdditionRequest, status string, respondedAt time.Time) error {
	stored, ok := m.requests[request.RequestID]
	if !ok || stored.Status != model.RequestStatusPending || stored.Version != request.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = status
	stored.RespondedAt = &respondedAt
	stored.Version++
	request.Status = status
	request.RespondedAt = &respondedAt
	request.Version = stored.Version
	return nil
}

// ── Mock DeletionRequestRepository ──

type mockDeletionRepo struct {
	requests map[string]*model.ShiftDeletionRequest
	counter  int
}

func newMockDeletionRepo() *mockDeletionRepo {
	return &mockDeletionRepo{requests: make(map[string]*model.ShiftDeletionRequest)}
}

func (m *mockDeletionRepo) Create(_ context.Context, request *model.ShiftDeletionRequest) error {
	if request.RequestID == "" {
		m.counter++
		request.RequestID = fmt.Sprintf("del-%d", m.counter)
	}
	if request.Version == 0 {
		request.Version = 1
	}
	copied := *request
	m.requests[request.RequestID] = &copied
	return nil
}

func (m *mockDeletionRepo) GetByID(_ context.Context, id string) (*model.ShiftDeletionRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeletionRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ShiftDeletionRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockDeletionRepo) ExistsPendingByShift(_ context.Context, shiftID string) (bool, error) {
	for _, r := range m.requests {
		if r.ShiftID == shiftID && r.Status == model.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDeletionRepo) ListPending(_ context.Context) ([]model.ShiftDeletionRequest, error) {
	var result []model.ShiftDeletionRequest
	for _, r := range m.requests {
		if r.Status == model.RequestStatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockDeletionRepo) ListByRequester(_ context.Context, requesterID string) ([]model.ShiftDeletionRequest, error) {
	var result []model.ShiftDeletionRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockDeletionRepo) Decide(_ context.Context, request *model.ShiftDeletionRequest, status string, respondedAt time.Time) error {
	stored, ok := m.requests[request.RequestID]
	if !ok || stored.Status != model.RequestStatusPending || stored.Version != request.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = status
	stored.RespondedAt = &respondedAt
	stored.Version++
	request.Status = status
	request.RespondedAt = &respondedAt
	request.Version = stored.Version
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	counter       int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if notification.NotificationID == "" {
		m.counter++
		notification.NotificationID = fmt.Sprintf("notif-%d", m.counter)
	}
	copied := *notification
	m.notifications = append(m.notifications, &copied)
	return nil
}

func (m *mockNotificationRepo) ListByEmployee(_ context.Context, employeeID string, offset, limit int) ([]model.Notification, int64, error) {
	var all []model.Notification
	for _, n := range m.notifications {
		if n.EmployeeID == employeeID {
			all = append(all, *n)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.EmployeeID == employeeID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, employeeID string) error {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.EmployeeID == employeeID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, employeeID string) error {
	for _, n := range m.notifications {
		if n.EmployeeID == employeeID {
			n.IsRead = true
		}
	}
	return nil
}
