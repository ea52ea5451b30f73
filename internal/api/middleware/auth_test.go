package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schooladmin.com/internal/auth"
	"schooladmin.com/internal/model"
)

func setup(t *testing.T) (*gorm.DB, *auth.TokenService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	return db, auth.NewTokenService("test-secret", time.Hour)
}

func addUser(t *testing.T, db *gorm.DB, role model.Role, active bool) *model.User {
	t.Helper()
	hashed, err := auth.HashPassword("Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username: "user_" + string(role),
		Email:    string(role) + "@example.com",
		Password: hashed,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// protectedApp 挂一条认证路由，handler 回显上下文里的身份
func protectedApp(db *gorm.DB, tokens *auth.TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/protected", Authenticate(db, tokens), func(c *fiber.Ctx) error {
		user := UserFromCtx(c)
		return c.JSON(fiber.Map{"username": user.Username, "role": user.Role})
	})
	return app
}

func TestAuthenticateMissingToken(t *testing.T) {
	db, tokens := setup(t)
	app := protectedApp(db, tokens)

	// 无 Authorization 头
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// 非 Bearer 格式
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthenticateInvalidToken(t *testing.T) {
	db, tokens := setup(t)
	app := protectedApp(db, tokens)

	user := addUser(t, db, model.RoleStudent, true)

	// 换一个密钥签出来的令牌
	other := auth.NewTokenService("other-secret", time.Hour)
	forged, err := other.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthenticateValidToken(t *testing.T) {
	db, tokens := setup(t)
	app := protectedApp(db, tokens)

	user := addUser(t, db, model.RoleTeacher, true)
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// 令牌本身有效，但账户随后被停用：每次请求都重新读库，
// 停用立即生效。
func TestAuthenticateDeactivatedUser(t *testing.T) {
	db, tokens := setup(t)
	app := protectedApp(db, tokens)

	user := addUser(t, db, model.RoleStudent, true)
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthenticateDeletedUser(t *testing.T) {
	db, tokens := setup(t)
	app := protectedApp(db, tokens)

	user := addUser(t, db, model.RoleStudent, true)
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	require.NoError(t, db.Delete(user).Error)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRequireGate(t *testing.T) {
	db, tokens := setup(t)
	enforcer, err := auth.NewEnforcer(nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/admin-only", Authenticate(db, tokens), RequireAdmin(enforcer), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	admin := addUser(t, db, model.RoleAdmin, true)
	student := addUser(t, db, model.RoleStudent, true)

	adminToken, err := tokens.Issue(admin)
	require.NoError(t, err)
	studentToken, err := tokens.Issue(student)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestRequireGateWithoutAuthentication(t *testing.T) {
	enforcer, err := auth.NewEnforcer(nil)
	require.NoError(t, err)

	// 角色门单独使用时，缺少身份返回 401 而不是放行
	app := fiber.New()
	app.Get("/gate", RequireAuthenticated(enforcer), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/gate", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractToken("Bearer abc"))
	assert.Equal(t, "", ExtractToken(""))
	assert.Equal(t, "", ExtractToken("abc"))
	assert.Equal(t, "", ExtractToken("bearer abc"))
}
