package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin.com/internal/model"
)

func TestEnrollmentGet(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "student01", model.RoleStudent, true)

	enrollment := model.Enrollment{StudentID: 1, CourseID: 1, Status: model.EnrollmentActive}
	require.NoError(t, db.Create(&enrollment).Error)

	req := httptest.NewRequest("GET", "/api/enrollments/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp)
	var got model.Enrollment
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, uint(1), got.StudentID)
	assert.Equal(t, model.EnrollmentActive, got.Status)
}

func TestEnrollmentGetNotFound(t *testing.T) {
	app, db, tokens := newTestRouter(t)
	_, token := createUser(t, db, tokens, "student01", model.RoleStudent, true)

	req := httptest.NewRequest("GET", "/api/enrollments/999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "选课记录不存在", decodeResponse(t, resp).Message)
}
