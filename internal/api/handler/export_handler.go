package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/service"
	"shiftdesk/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportShifts 导出排班表为 Excel（店长）
// GET /api/v1/export/shifts?from=2026-09-01&to=2026-09-07
func (h *ExportHandler) ExportShifts(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		response.BadRequest(c, 10001, "from/to 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportShifts(c.Request.Context(), from, to)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportMyCalendar 导出本人班次为 ICS
// GET /api/v1/export/my/calendar
func (h *ExportHandler) ExportMyCalendar(c *gin.Context) {
	employeeID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportMyCalendar(c.Request.Context(), employeeID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, filename, contentTypeICS, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoShifts):
		response.NotFound(c, 16001, "该范围内没有班次可导出")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13003, err.Error())
	default:
		response.InternalError(c)
	}
}

// writeDownload 设置文件下载响应头并写出内容
func writeDownload(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
	c.Data(http.StatusOK, contentType, data)
}
