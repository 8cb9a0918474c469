package routes

import (
	"github.com/labstack/echo/v4"

	"urbanreport/internal/controllers"
	"urbanreport/pkg/constants"
	"urbanreport/pkg/middleware"
)

func runReportRouter(api *echo.Group, secureGroup *echo.Group, reportCtrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	// Public tracking lookup by code; no account needed.
	api.GET("/reports/track/:code", reportCtrl.FindReportByTrackingCode)

	{
		secureGroup.POST("/reports", reportCtrl.CreateReport, authMW.RequireRoles(constants.RoleCitizen))
		secureGroup.GET("/reports", reportCtrl.GetReports)
		secureGroup.GET("/reports/stats", reportCtrl.GetStats, authMW.RequireRoles(constants.RoleAdmin))
		secureGroup.GET("/reports/export", reportCtrl.ExportReports, authMW.RequireRoles(constants.RoleAdmin))
		secureGroup.GET("/reports/:id", reportCtrl.FindReport)
		secureGroup.PUT("/reports/:id", reportCtrl.UpdateReport, authMW.RequireRoles(constants.RoleAdmin, constants.RoleEntity))
		secureGroup.POST("/reports/:id/rating", reportCtrl.RateReport, authMW.RequireRoles(constants.RoleCitizen))
		secureGroup.GET("/reports/:id/history", reportCtrl.GetHistory)
		secureGroup.GET("/reports/:id/comments", reportCtrl.GetComments)
		secureGroup.POST("/reports/:id/comments", reportCtrl.AddComment)
		secureGroup.GET("/reports/:id/attachments", reportCtrl.GetAttachments)
	}
}
