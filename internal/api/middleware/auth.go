package middleware

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooladmin.com/internal/auth"
	"schooladmin.com/internal/model"
)

// CurrentUser 认证通过后挂到请求上下文的身份投影，随请求结束丢弃。
type CurrentUser struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	IsActive bool       `json:"isActive"`
}

const localsUserKey = "currentUser"

// UserFromCtx 取出中间件挂载的身份，未认证返回 nil
func UserFromCtx(c *fiber.Ctx) *CurrentUser {
	user, _ := c.Locals(localsUserKey).(*CurrentUser)
	return user
}

// ExtractToken 从 Authorization 头中取出 Bearer 令牌
func ExtractToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Authenticate 认证中间件：提取并校验令牌后，按令牌中的用户 id 重新
// 读库（不信任令牌自带的角色/状态），把身份挂到请求上下文。每个认证
// 请求一次读库，换取停用立即生效。
func Authenticate(db *gorm.DB, tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractToken(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "访问令牌缺失",
			})
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "无效的访问令牌",
			})
		}

		var user model.User
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "用户不存在或已被禁用",
			})
		}

		c.Locals(localsUserKey, &CurrentUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			IsActive: user.IsActive,
		})

		return c.Next()
	}
}

// RequireGate 角色门中间件：已认证身份的角色须被允许通过指定的门。
// 允许名单存放在 casbin 策略里，见 auth.NewEnforcer。
func RequireGate(enforcer *casbin.Enforcer, gate string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromCtx(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "用户未认证",
			})
		}

		permit, err := enforcer.Enforce(string(user.Role), gate, auth.GateAction)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "权限检查失败",
			})
		}

		if !permit {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "权限不足",
			})
		}

		return c.Next()
	}
}

// 预置的三个角色门

// RequireAdmin 仅管理员
func RequireAdmin(enforcer *casbin.Enforcer) fiber.Handler {
	return RequireGate(enforcer, auth.GateAdmin)
}

// RequireStaff 教师或管理员
func RequireStaff(enforcer *casbin.Enforcer) fiber.Handler {
	return RequireGate(enforcer, auth.GateStaff)
}

// RequireAuthenticated 任意已认证角色
func RequireAuthenticated(enforcer *casbin.Enforcer) fiber.Handler {
	return RequireGate(enforcer, auth.GateAny)
}
