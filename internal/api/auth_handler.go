package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/api/middleware"
	"schooladmin.com/internal/auth"
	"schooladmin.com/internal/model"
)

// AuthHandler 处理注册、登录与当前用户查询
type AuthHandler struct {
	db         *gorm.DB
	tokens     *auth.TokenService
	bcryptCost int
	log        *logrus.Logger
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenService, bcryptCost int, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		db:         db,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest 登录请求。username 字段同时接受用户名或邮箱。
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthData 注册/登录成功后的响应数据
type AuthData struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Register creates a new user account (default role: STUDENT).
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	if fieldErrors := validateRegister(&req); len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleStudent
	}

	// 快速路径预检查；真正的唯一性由存储层唯一索引保证，
	// 并发穿过预检查时 Create 会失败并走同样的错误分支。
	var existing model.User
	err := h.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return SendError(c, fiber.StatusBadRequest, "用户名或邮箱已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.log.WithError(err).Error("register: uniqueness lookup failed")
		return SendError(c, fiber.StatusInternalServerError, "注册过程中发生错误")
	}

	hashed, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		h.log.WithError(err).Error("register: password hashing failed")
		return SendError(c, fiber.StatusInternalServerError, "注册过程中发生错误")
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// 唯一索引冲突（并发注册）也落在这里
		return SendError(c, fiber.StatusBadRequest, "用户名或邮箱已存在")
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		h.log.WithError(err).Error("register: token signing failed")
		return SendError(c, fiber.StatusInternalServerError, "注册过程中发生错误")
	}

	return SendCreated(c, "用户注册成功", AuthData{User: user, Token: token})
}

// Login authenticates a user and returns a fresh token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	if fieldErrors := validateLogin(&req); len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	// 支持用户名或邮箱登录。未找到与密码错误返回完全相同的消息，
	// 避免账号枚举。
	var user model.User
	err := h.db.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusUnauthorized, "用户名或密码错误")
		}
		h.log.WithError(err).Error("login: user lookup failed")
		return SendError(c, fiber.StatusInternalServerError, "登录过程中发生错误")
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return SendError(c, fiber.StatusUnauthorized, "用户名或密码错误")
	}

	if !user.IsActive {
		return SendError(c, fiber.StatusUnauthorized, "账户已被禁用")
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		h.log.WithError(err).Error("login: token signing failed")
		return SendError(c, fiber.StatusInternalServerError, "登录过程中发生错误")
	}

	return SendSuccess(c, "登录成功", AuthData{User: user, Token: token})
}

// GetMe returns the identity attached by the authentication middleware.
// GET /api/auth/me
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return SendError(c, fiber.StatusUnauthorized, "用户未认证")
	}
	return SendSuccess(c, "获取用户信息成功", user)
}

// Logout is a stateless placeholder: tokens stay valid until expiry,
// the client just discards its copy.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return SendSuccess(c, "退出登录成功", nil)
}

// EnsureAdminUser checks if any user exists, if not creates a default admin.
func (h *AuthHandler) EnsureAdminUser() {
	var count int64
	h.db.Model(&model.User{}).Count(&count)
	if count == 0 {
		h.log.Info("Auth: No users found. Creating default 'admin' user...")
		hashed, err := auth.HashPassword("Admin123", h.bcryptCost)
		if err != nil {
			h.log.WithError(err).Error("Failed to hash default admin password")
			return
		}
		admin := model.User{
			Username: "admin",
			Email:    "admin@school.local",
			Password: hashed,
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		if err := h.db.Create(&admin).Error; err != nil {
			h.log.WithError(err).Error("Failed to create admin user")
		} else {
			h.log.Info("Auth: Created default user: admin / Admin123")
		}
	}
}
