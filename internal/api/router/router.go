package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shiftdesk/config"
	"shiftdesk/internal/api/handler"
	"shiftdesk/internal/api/middleware"
	"shiftdesk/internal/model"
	"shiftdesk/pkg/jwt"
	"shiftdesk/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1MB

// Setup 组装路由与中间件
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// ── 公开接口 ──
	auth := v1.Group("/auth")
	{
		// 登录接口限流防止暴力破解
		auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	// ── 需要登录的接口 ──
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.GetCurrentEmployee)
		authorized.PUT("/auth/password", h.Auth.ChangePassword)

		employees := authorized.Group("/employees")
		{
			employees.GET("", h.Employee.List)
			employees.GET("/:id", h.Employee.Get)
			employees.POST("", middleware.RoleAuth(model.RoleOwner), h.Employee.Create)
			employees.POST("/:id/reset-password", middleware.RoleAuth(model.RoleOwner), h.Employee.ResetPassword)
		}

		shifts := authorized.Group("/shifts")
		{
			shifts.GET("", middleware.RoleAuth(model.RoleOwner), h.Shift.List)
			shifts.GET("/my", h.Shift.ListMine)
			shifts.GET("/my/future", h.Shift.ListMyFuture)
			shifts.POST("", middleware.RoleAuth(model.RoleOwner), h.Shift.Create)
			shifts.DELETE("/:id", middleware.RoleAuth(model.RoleOwner), h.Shift.Delete)
		}

		requests := authorized.Group("/requests")
		{
			requests.GET("/pending/me", h.Request.ListPendingForMe)
			requests.GET("/mine", h.Request.ListMine)

			exchanges := requests.Group("/exchanges")
			{
				exchanges.POST("", h.Request.CreateExchange)
				exchanges.POST("/:id/approve", h.Request.ApproveExchange)
				exchanges.POST("/:id/reject", h.Request.RejectExchange)
				exchanges.POST("/:id/cancel", h.Request.CancelExchange)
			}

			additions := requests.Group("/additions")
			{
				additions.POST("", middleware.RoleAuth(model.RoleOwner), h.Request.CreateAddition)
				additions.POST("/:id/approve", h.Request.ApproveAddition)
				additions.POST("/:id/reject", h.Request.RejectAddition)
			}

			deletions := requests.Group("/deletions")
			{
				deletions.POST("", h.Request.CreateDeletion)
				deletions.GET("/pending", middleware.RoleAuth(model.RoleOwner), h.Request.ListPendingDeletions)
				deletions.POST("/:id/approve", middleware.RoleAuth(model.RoleOwner), h.Request.ApproveDeletion)
				deletions.POST("/:id/reject", middleware.RoleAuth(model.RoleOwner), h.Request.RejectDeletion)
			}
		}

		notifications := authorized.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
			notifications.PUT("/read-all", h.Notification.MarkAllRead)
		}

		export := authorized.Group("/export")
		{
			export.GET("/shifts", middleware.RoleAuth(model.RoleOwner), h.Export.ExportShifts)
			export.GET("/my/calendar", h.Export.ExportMyCalendar)
		}
	}

	return r
}
