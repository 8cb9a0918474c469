package controllers

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/service"
	"urbanreport/pkg/utils"
	"urbanreport/pkg/websocket"
)

type WebSocketController struct {
	hub        *websocket.Hub
	jwtService service.JWTService
	upgrader   gorillaws.Upgrader
	logger     *zap.Logger
}

func NewWebSocketController(hub *websocket.Hub, jwtService service.JWTService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:        hub,
		jwtService: jwtService,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers cannot set custom headers on websockets, so the
			// origin is left to the CORS layer of the SPA host.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle authenticates the caller via the "token" query parameter (the
// browser websocket API cannot send an Authorization header) and joins the
// connection to the hub.
func (c *WebSocketController) Handle(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrEmptyAuthHeader, c.logger)
	}

	claims, err := c.jwtService.ValidateToken(token)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if claims.IsRefreshToken {
		return utils.ErrorResponse(ctx, apperrors.ErrTokenIsNotAccess, c.logger)
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("no se pudo establecer la conexión websocket", zap.Error(err))
		return err
	}

	client := websocket.NewClient(c.hub, conn, claims.UserID)
	c.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	return nil
}
