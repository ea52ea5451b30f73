package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// GradeHandler 处理成绩相关的 HTTP 请求。只做存取，不做任何汇总计算。
type GradeHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGradeHandler(db *gorm.DB, log *logrus.Logger) *GradeHandler {
	return &GradeHandler{db: db, log: log}
}

// List 获取成绩列表
// GET /api/grades?page=1&pageSize=10&studentId=&courseId=&type=
func (h *GradeHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	query := h.db.Model(&model.Grade{})

	if studentID := c.QueryInt("studentId", 0); studentID > 0 {
		query = query.Where("student_id = ?", studentID)
	}
	if courseID := c.QueryInt("courseId", 0); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if gradeType := c.Query("type"); gradeType != "" {
		query = query.Where("type = ?", gradeType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return handleError(c, h.log, err)
	}

	var grades []model.Grade
	offset := (page - 1) * pageSize
	if err := query.Preload("Student").Preload("Course").
		Order("id DESC").Limit(pageSize).Offset(offset).
		Find(&grades).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendPaginated(c, "获取成绩列表成功", grades, page, pageSize, total)
}

// Get 获取成绩详情
// GET /api/grades/:id
func (h *GradeHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的成绩ID")
	}

	var grade model.Grade
	if err := h.db.Preload("Student").Preload("Course").First(&grade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "成绩记录不存在")
		}
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取成绩信息成功", grade)
}

type CreateGradeRequest struct {
	Score     float64 `json:"score"`
	Type      string  `json:"type"`
	Comment   string  `json:"comment"`
	StudentID uint    `json:"studentId"`
	CourseID  uint    `json:"courseId"`
}

// Create 录入成绩
// POST /api/grades
func (h *GradeHandler) Create(c *fiber.Ctx) error {
	var req CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	var fieldErrors []FieldError
	if req.StudentID == 0 || req.CourseID == 0 {
		fieldErrors = append(fieldErrors, FieldError{Field: "studentId", Message: "学生和课程不能为空"})
	}
	if req.Type == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "type", Message: "成绩类型不能为空"})
	}
	if len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	grade := model.Grade{
		Score:     req.Score,
		Type:      model.GradeType(req.Type),
		Comment:   req.Comment,
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
	}

	if err := h.db.Create(&grade).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendCreated(c, "录入成绩成功", grade)
}

type UpdateGradeRequest struct {
	Score   *float64 `json:"score"`
	Type    *string  `json:"type"`
	Comment *string  `json:"comment"`
}

// Update 更新成绩
// PUT /api/grades/:id
func (h *GradeHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的成绩ID")
	}

	var grade model.Grade
	if err := h.db.First(&grade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "成绩记录不存在")
		}
		return handleError(c, h.log, err)
	}

	var req UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	updates := map[string]interface{}{}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}

	if len(updates) > 0 {
		if err := h.db.Model(&grade).Updates(updates).Error; err != nil {
			return handleError(c, h.log, err)
		}
	}

	return SendSuccess(c, "更新成绩成功", grade)
}

// Delete 删除成绩
// DELETE /api/grades/:id
func (h *GradeHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的成绩ID")
	}

	result := h.db.Delete(&model.Grade{}, id)
	if result.Error != nil {
		return handleError(c, h.log, result.Error)
	}
	if result.RowsAffected == 0 {
		return SendError(c, fiber.StatusNotFound, "成绩记录不存在")
	}

	return SendSuccess(c, "删除成绩成功", nil)
}
