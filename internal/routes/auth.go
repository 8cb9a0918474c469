package routes

import (
	"github.com/labstack/echo/v4"

	"urbanreport/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	{
		api.POST("/auth/register", authCtrl.Register)
		api.POST("/auth/register-entity", authCtrl.RegisterEntity)
		api.POST("/auth/login", authCtrl.Login)
		api.POST("/auth/refresh", authCtrl.Refresh)
	}
	{
		secureGroup.POST("/auth/logout", authCtrl.Logout)
	}
}
