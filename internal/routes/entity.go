package routes

import (
	"github.com/labstack/echo/v4"

	"urbanreport/internal/controllers"
	"urbanreport/pkg/constants"
	"urbanreport/pkg/middleware"
)

func runEntityRouter(secureGroup *echo.Group, entityCtrl *controllers.EntityController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/entities", entityCtrl.GetEntities, adminOnly)
		secureGroup.GET("/entities/:id", entityCtrl.FindEntity, adminOnly)
		secureGroup.POST("/entities/:id/approve", entityCtrl.ApproveEntity, adminOnly)
		secureGroup.POST("/entities/:id/reject", entityCtrl.RejectEntity, adminOnly)
		secureGroup.GET("/entities/:id/audit-logs", entityCtrl.GetAuditLogs, adminOnly)

		// Subscriptions are readable and editable by the entity itself; the
		// service enforces ownership.
		secureGroup.GET("/entities/:id/categories", entityCtrl.GetCategories)
		secureGroup.PUT("/entities/:id/categories", entityCtrl.ReplaceCategories)
	}
}
