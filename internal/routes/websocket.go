package routes

import (
	"github.com/labstack/echo/v4"

	"urbanreport/internal/controllers"
)

func runWebSocketRouter(e *echo.Echo, wsCtrl *controllers.WebSocketController) {
	// The handshake authenticates itself via the token query parameter, so
	// the route stays outside the bearer middleware.
	e.GET("/ws", wsCtrl.Handle)
}
