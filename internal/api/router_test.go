package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin.com/internal/model"
)

// 通过真实路由验证三个角色门的分配：
// 读取对所有已认证角色开放，业务写入需要教师或管理员，
// 教师档案的写入仅限管理员。
func TestRouteAuthorization(t *testing.T) {
	app, db, tokens := newTestRouter(t)

	_, adminToken := createUser(t, db, tokens, "admin01", model.RoleAdmin, true)
	_, teacherToken := createUser(t, db, tokens, "teacher01", model.RoleTeacher, true)
	_, studentToken := createUser(t, db, tokens, "student01", model.RoleStudent, true)

	cases := []struct {
		name   string
		method string
		target string
		token  string
		body   fiber.Map
		want   int
	}{
		{"学生可以读学生列表", "GET", "/api/students", studentToken, nil, fiber.StatusOK},
		{"学生不能创建学生", "POST", "/api/students", studentToken,
			fiber.Map{"studentId": "S001", "name": "张三"}, fiber.StatusForbidden},
		{"教师可以创建学生", "POST", "/api/students", teacherToken,
			fiber.Map{"studentId": "S001", "name": "张三"}, fiber.StatusCreated},
		{"教师不能创建教师", "POST", "/api/teachers", teacherToken,
			fiber.Map{"teacherId": "T001", "name": "李老师"}, fiber.StatusForbidden},
		{"管理员可以创建教师", "POST", "/api/teachers", adminToken,
			fiber.Map{"teacherId": "T001", "name": "李老师"}, fiber.StatusCreated},
		{"学生不能删除课程", "DELETE", "/api/courses/1", studentToken, nil, fiber.StatusForbidden},
		{"未认证访问资源", "GET", "/api/students", "", nil, fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req = jsonRequest(t, tc.method, tc.target, tc.body)
			if tc.body == nil {
				req = httptest.NewRequest(tc.method, tc.target, nil)
			}
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestUnknownRouteReturns404Envelope(t *testing.T) {
	app, _, _ := newTestRouter(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/unknown", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "请求的资源不存在", body.Message)
}
