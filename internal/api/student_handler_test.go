package api

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin.com/internal/model"
)

func seedStudents(t *testing.T, app *fiber.App, token string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		req := jsonRequest(t, "POST", "/api/students", fiber.Map{
			"studentId": fmt.Sprintf("S%03d", i),
			"name":      fmt.Sprintf("学生%d", i),
		})
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestStudentListPagination(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "teacher01", model.RoleTeacher, true)
	seedStudents(t, app, token, 15)

	req := httptest.NewRequest("GET", "/api/students?page=2&pageSize=10", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, int64(15), body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.TotalPage)

	var students []model.Student
	require.NoError(t, json.Unmarshal(body.Data, &students))
	assert.Len(t, students, 5)
}

func TestStudentListSearch(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "teacher01", model.RoleTeacher, true)
	seedStudents(t, app, token, 3)

	req := httptest.NewRequest("GET", "/api/students?search=S002", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := decodeResponse(t, resp)
	var students []model.Student
	require.NoError(t, json.Unmarshal(body.Data, &students))
	require.Len(t, students, 1)
	assert.Equal(t, "S002", students[0].StudentID)
}

func TestStudentCreateValidation(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "teacher01", model.RoleTeacher, true)

	req := jsonRequest(t, "POST", "/api/students", fiber.Map{})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.Equal(t, "请求数据验证失败", body.Message)
	assert.Len(t, body.Errors, 2)
}

func TestStudentCreateDuplicateStudentID(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "teacher01", model.RoleTeacher, true)
	seedStudents(t, app, token, 1)

	req := jsonRequest(t, "POST", "/api/students", fiber.Map{
		"studentId": "S001",
		"name":      "重名学生",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "学号已存在", decodeResponse(t, resp).Message)
}

func TestStudentGetNotFound(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "student01", model.RoleStudent, true)

	req := httptest.NewRequest("GET", "/api/students/999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "学生不存在", decodeResponse(t, resp).Message)
}

func TestStudentUpdate(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "teacher01", model.RoleTeacher, true)
	seedStudents(t, app, token, 1)

	req := jsonRequest(t, "PUT", "/api/students/1", fiber.Map{
		"phone":  "13800138000",
		"status": string(model.StudentInactive),
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var student model.Student
	require.NoError(t, db.First(&student, 1).Error)
	assert.Equal(t, "13800138000", student.Phone)
	assert.Equal(t, model.StudentInactive, student.Status)
}

func TestStudentDelete(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "teacher01", model.RoleTeacher, true)
	seedStudents(t, app, token, 1)

	req := httptest.NewRequest("DELETE", "/api/students/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 再删一次应报 404
	req = httptest.NewRequest("DELETE", "/api/students/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
