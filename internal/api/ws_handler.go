package api

import (
	"log"
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"schooladmin.com/internal/auth"
	"schooladmin.com/internal/infra"
)

// InitWebsocket 注册 /ws 路由。客户端连接后会收到所有发布的通知广播。
// 令牌通过查询参数传递（浏览器 WebSocket 无法自定义请求头），校验失败
// 时连接仍被接受，但不绑定用户身份。
func InitWebsocket(app *fiber.App, wsManager *infra.WsManager, tokens *auth.TokenService) {
	// Middleware to force upgrade
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		userID := ""
		if token := c.Query("token"); token != "" {
			if claims, err := tokens.Verify(token); err == nil {
				userID = strconv.FormatUint(uint64(claims.UserID), 10)
			}
		}
		log.Println("New WS connection, userID:", userID)

		wsManager.Register <- infra.UserConnection{UserID: userID, Conn: c}

		defer func() {
			wsManager.Unregister <- infra.UserConnection{UserID: userID, Conn: c}
		}()

		// Read loop: the push direction is server -> client only, reads are
		// drained to detect disconnects.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Println("ws read error:", err)
				}
				break
			}
		}
	}))
}
