package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// CourseHandler 处理课程相关的 HTTP 请求
type CourseHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCourseHandler(db *gorm.DB, log *logrus.Logger) *CourseHandler {
	return &CourseHandler{db: db, log: log}
}

// List 获取课程列表
// GET /api/courses?page=1&pageSize=10&search=&classId=&teacherId=&status=
func (h *CourseHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	query := h.db.Model(&model.Course{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR code LIKE ?", search+"%", search+"%")
	}
	if classID := c.QueryInt("classId", 0); classID > 0 {
		query = query.Where("class_id = ?", classID)
	}
	if teacherID := c.QueryInt("teacherId", 0); teacherID > 0 {
		query = query.Where("teacher_id = ?", teacherID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return handleError(c, h.log, err)
	}

	var courses []model.Course
	offset := (page - 1) * pageSize
	if err := query.Preload("Teacher").Preload("Class").
		Order("code ASC").Limit(pageSize).Offset(offset).
		Find(&courses).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendPaginated(c, "获取课程列表成功", courses, page, pageSize, total)
}

// Get 获取课程详情
// GET /api/courses/:id
func (h *CourseHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的课程ID")
	}

	var course model.Course
	if err := h.db.Preload("Teacher").Preload("Class").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "课程不存在")
		}
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取课程信息成功", course)
}

type CreateCourseRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Hours       int    `json:"hours"`
	TeacherID   *uint  `json:"teacherId"`
	ClassID     *uint  `json:"classId"`
}

// Create 创建课程
// POST /api/courses
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	var fieldErrors []FieldError
	if req.Name == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "课程名称不能为空"})
	}
	if req.Code == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "code", Message: "课程代码不能为空"})
	}
	if len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	course := model.Course{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Credits:     req.Credits,
		Hours:       req.Hours,
		Status:      model.CourseActive,
		TeacherID:   req.TeacherID,
		ClassID:     req.ClassID,
	}

	if err := h.db.Create(&course).Error; err != nil {
		return SendError(c, fiber.StatusBadRequest, "课程代码已存在")
	}

	return SendCreated(c, "创建课程成功", course)
}

type UpdateCourseRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	Credits     *int    `json:"credits"`
	Hours       *int    `json:"hours"`
	Status      *string `json:"status"`
	TeacherID   *uint   `json:"teacherId"`
	ClassID     *uint   `json:"classId"`
}

// Update 更新课程
// PUT /api/courses/:id
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的课程ID")
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "课程不存在")
		}
		return handleError(c, h.log, err)
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Credits != nil {
		updates["credits"] = *req.Credits
	}
	if req.Hours != nil {
		updates["hours"] = *req.Hours
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.TeacherID != nil {
		updates["teacher_id"] = *req.TeacherID
	}
	if req.ClassID != nil {
		updates["class_id"] = *req.ClassID
	}

	if len(updates) > 0 {
		if err := h.db.Model(&course).Updates(updates).Error; err != nil {
			return handleError(c, h.log, err)
		}
	}

	return SendSuccess(c, "更新课程成功", course)
}

// Delete 删除课程
// DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的课程ID")
	}

	result := h.db.Delete(&model.Course{}, id)
	if result.Error != nil {
		return handleError(c, h.log, result.Error)
	}
	if result.RowsAffected == 0 {
		return SendError(c, fiber.StatusNotFound, "课程不存在")
	}

	return SendSuccess(c, "删除课程成功", nil)
}
