package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schooladmin.com/internal/auth"
	"schooladmin.com/internal/config"
	"schooladmin.com/internal/infra"
	"schooladmin.com/internal/model"
	"schooladmin.com/internal/service"
)

// newTestDB 打开内存 SQLite 并建表。限制单连接，避免内存库被
// 连接池拆成多个独立实例。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.AutoMigrate(db))
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestRouter 组装一个接近真实部署的应用：内存数据库、内存策略、
// 低成本 bcrypt。wsManager 为空，事件总线不接 Redis。
func newTestRouter(t *testing.T) (*fiber.App, *gorm.DB, *auth.TokenService) {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	cfg := &config.Config{}
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireHours = 1

	tokens := auth.NewTokenService(cfg.JWT.Secret, time.Hour)
	enforcer, err := auth.NewEnforcer(nil)
	require.NoError(t, err)

	noticeSvc := service.NewNoticeService(db, nil, log)

	app := fiber.New()
	router := NewRouter(app, cfg, db, enforcer, tokens, noticeSvc, nil, log)
	router.RegisterRoutes()

	return app, db, tokens
}

// createUser 直接写库创建账号并返回签发的令牌
func createUser(t *testing.T, db *gorm.DB, tokens *auth.TokenService, username string, role model.Role, active bool) (*model.User, string) {
	t.Helper()

	hashed, err := auth.HashPassword("Passw0rd", bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hashed,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)

	token, err := tokens.Issue(user)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeResponse 解析统一响应信封，data 部分保持原始 JSON
type testResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []FieldError    `json:"errors"`
	Pagination *Pagination     `json:"pagination"`
}

func decodeResponse(t *testing.T, resp *http.Response) testResponse {
	t.Helper()

	var out testResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}
