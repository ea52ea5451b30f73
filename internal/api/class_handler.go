package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// ClassHandler 处理班级相关的 HTTP 请求
type ClassHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewClassHandler(db *gorm.DB, log *logrus.Logger) *ClassHandler {
	return &ClassHandler{db: db, log: log}
}

// List 获取班级列表
// GET /api/classes?page=1&pageSize=10&grade=&status=
func (h *ClassHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	query := h.db.Model(&model.Class{})

	if grade := c.Query("grade"); grade != "" {
		query = query.Where("grade = ?", grade)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return handleError(c, h.log, err)
	}

	var classes []model.Class
	offset := (page - 1) * pageSize
	if err := query.Preload("Teacher").
		Order("grade ASC, name ASC").Limit(pageSize).Offset(offset).
		Find(&classes).Error; err != nil {
		return handleError(c, h.log, err)
	}

	return SendPaginated(c, "获取班级列表成功", classes, page, pageSize, total)
}

// Get 获取班级详情，含班主任与学生名单
// GET /api/classes/:id
func (h *ClassHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的班级ID")
	}

	var class model.Class
	if err := h.db.Preload("Teacher").Preload("Students").First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "班级不存在")
		}
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取班级信息成功", class)
}

type CreateClassRequest struct {
	Name        string `json:"name"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	TeacherID   *uint  `json:"teacherId"`
}

// Create 创建班级
// POST /api/classes
func (h *ClassHandler) Create(c *fiber.Ctx) error {
	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	if req.Name == "" || req.Grade == "" {
		return SendValidationErrors(c, []FieldError{
			{Field: "name", Message: "班级名称和年级不能为空"},
		})
	}

	class := model.Class{
		Name:        req.Name,
		Grade:       req.Grade,
		Description: req.Description,
		Capacity:    req.Capacity,
		Status:      model.ClassActive,
		TeacherID:   req.TeacherID,
	}
	if class.Capacity <= 0 {
		class.Capacity = 50
	}

	if err := h.db.Create(&class).Error; err != nil {
		return SendError(c, fiber.StatusBadRequest, "班级名称已存在")
	}

	return SendCreated(c, "创建班级成功", class)
}

type UpdateClassRequest struct {
	Name        *string `json:"name"`
	Grade       *string `json:"grade"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	Status      *string `json:"status"`
	TeacherID   *uint   `json:"teacherId"`
}

// Update 更新班级
// PUT /api/classes/:id
func (h *ClassHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的班级ID")
	}

	var class model.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "班级不存在")
		}
		return handleError(c, h.log, err)
	}

	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Grade != nil {
		updates["grade"] = *req.Grade
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.TeacherID != nil {
		updates["teacher_id"] = *req.TeacherID
	}

	if len(updates) > 0 {
		if err := h.db.Model(&class).Updates(updates).Error; err != nil {
			return handleError(c, h.log, err)
		}
	}

	return SendSuccess(c, "更新班级成功", class)
}

// Delete 删除班级
// DELETE /api/classes/:id
func (h *ClassHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的班级ID")
	}

	result := h.db.Delete(&model.Class{}, id)
	if result.Error != nil {
		return handleError(c, h.log, result.Error)
	}
	if result.RowsAffected == 0 {
		return SendError(c, fiber.StatusNotFound, "班级不存在")
	}

	return SendSuccess(c, "删除班级成功", nil)
}
