package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// EnrollmentHandler 处理选课相关的 HTTP 请求
type EnrollmentHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewEnrollmentHandler(db *gorm.DB, log *logrus.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{db: db, log: log}
}

// List 获取选课记录列表
// GET /api/enrollments?page=1&pageSize=10&studentId=&courseId=
func (h *EnrollmentHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	query := h.db.Model(&model.Enrollment{})

	if studentID := c.QueryInt("studentId", 0); studentID > 0 {
		query = query.Where("student_id = ?", studentID)
	}
	if courseID := c.QueryInt("courseId", 0); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return handleError(c, h.log, err)
	}

	var enrollments []model.Enrollment
	offset := (page - 1) * pageSize
	if err := query.Preload("Student").Preload("Course").
		Order("id ASC").Limit(pageSize).Offset(offset).
		Find(&enrollments).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendPaginated(c, "获取选课列表成功", enrollments, page, pageSize, total)
}

// Get 获取选课记录详情
// GET /api/enrollments/:id
func (h *EnrollmentHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的选课记录ID")
	}

	var enrollment model.Enrollment
	if err := h.db.Preload("Student").Preload("Course").First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "选课记录不存在")
		}
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取选课信息成功", enrollment)
}

type CreateEnrollmentRequest struct {
	StudentID uint `json:"studentId"`
	CourseID  uint `json:"courseId"`
}

// Create 创建选课记录。学生与课程的组合由唯一索引保证不重复。
// POST /api/enrollments
func (h *EnrollmentHandler) Create(c *fiber.Ctx) error {
	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	if req.StudentID == 0 || req.CourseID == 0 {
		return SendValidationErrors(c, []FieldError{
			{Field: "studentId", Message: "学生和课程不能为空"},
		})
	}

	enrollment := model.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    model.EnrollmentActive,
	}

	if err := h.db.Create(&enrollment).Error; err != nil {
		return SendError(c, fiber.StatusBadRequest, "该学生已选修此课程")
	}

	return SendCreated(c, "选课成功", enrollment)
}

type UpdateEnrollmentRequest struct {
	Status *string `json:"status"`
}

// Update 更新选课状态
// PUT /api/enrollments/:id
func (h *EnrollmentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的选课记录ID")
	}

	var enrollment model.Enrollment
	if err := h.db.First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "选课记录不存在")
		}
		return handleError(c, h.log, err)
	}

	var req UpdateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	if req.Status != nil {
		if err := h.db.Model(&enrollment).Update("status", *req.Status).Error; err != nil {
			return handleError(c, h.log, err)
		}
	}

	return SendSuccess(c, "更新选课成功", enrollment)
}

// Delete 删除选课记录
// DELETE /api/enrollments/:id
func (h *EnrollmentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的选课记录ID")
	}

	result := h.db.Delete(&model.Enrollment{}, id)
	if result.Error != nil {
		return handleError(c, h.log, result.Error)
	}
	if result.RowsAffected == 0 {
		return SendError(c, fiber.StatusNotFound, "选课记录不存在")
	}

	return SendSuccess(c, "删除选课成功", nil)
}
