package routes

import (
	"github.com/labstack/echo/v4"

	"urbanreport/internal/controllers"
)

func runNotificationRouter(secureGroup *echo.Group, notificationCtrl *controllers.NotificationController) {
	{
		secureGroup.GET("/notifications", notificationCtrl.GetMyNotifications)
		secureGroup.GET("/notifications/unread-count", notificationCtrl.CountUnread)
		secureGroup.PATCH("/notifications/:id/read", notificationCtrl.MarkRead)
	}
}
