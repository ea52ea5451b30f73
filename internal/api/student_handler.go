package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// StudentHandler 处理学生档案相关的 HTTP 请求
type StudentHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewStudentHandler(db *gorm.DB, log *logrus.Logger) *StudentHandler {
	return &StudentHandler{db: db, log: log}
}

// List 获取学生列表
// GET /api/students?page=1&pageSize=10&search=&classId=&status=
func (h *StudentHandler) List(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)

	query := h.db.Model(&model.Student{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR student_id LIKE ?", search+"%", search+"%")
	}
	if classID := c.QueryInt("classId", 0); classID > 0 {
		query = query.Where("class_id = ?", classID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.log.WithError(err).Error("students: count failed")
		return SendError(c, fiber.StatusInternalServerError, "服务器内部错误")
	}

	var students []model.Student
	offset := (page - 1) * pageSize
	if err := query.Preload("User").Preload("Class").
		Order("id ASC").Limit(pageSize).Offset(offset).
		Find(&students).Error; err != nil {
		h.log.WithError(err).Error("students: list failed")
		return SendError(c, fiber.StatusInternalServerError, "服务器内部错误")
	}

	return SendPaginated(c, "获取学生列表成功", students, page, pageSize, total)
}

// Get 获取学生详情
// GET /api/students/:id
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的学生ID")
	}

	var student model.Student
	if err := h.db.Preload("User").Preload("Class").First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "学生不存在")
		}
		return handleError(c, h.log, err)
	}

	return SendSuccess(c, "获取学生信息成功", student)
}

type CreateStudentRequest struct {
	StudentID     string    `json:"studentId"`
	Name          string    `json:"name"`
	Gender        string    `json:"gender"`
	BirthDate     time.Time `json:"birthDate"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	ParentName    string    `json:"parentName"`
	ParentPhone   string    `json:"parentPhone"`
	AdmissionDate time.Time `json:"admissionDate"`
	UserID        uint      `json:"userId"`
	ClassID       *uint     `json:"classId"`
}

// Create 创建学生档案
// POST /api/students
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	var fieldErrors []FieldError
	if req.StudentID == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "studentId", Message: "学号不能为空"})
	}
	if req.Name == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "姓名不能为空"})
	}
	if len(fieldErrors) > 0 {
		return SendValidationErrors(c, fieldErrors)
	}

	student := model.Student{
		StudentID:     req.StudentID,
		Name:          req.Name,
		Gender:        model.Gender(req.Gender),
		BirthDate:     req.BirthDate,
		Phone:         req.Phone,
		Address:       req.Address,
		ParentName:    req.ParentName,
		ParentPhone:   req.ParentPhone,
		AdmissionDate: req.AdmissionDate,
		Status:        model.StudentActive,
		UserID:        req.UserID,
		ClassID:       req.ClassID,
	}

	if err := h.db.Create(&student).Error; err != nil {
		return SendError(c, fiber.StatusBadRequest, "学号已存在")
	}

	return SendCreated(c, "创建学生成功", student)
}

type UpdateStudentRequest struct {
	Name           *string    `json:"name"`
	Gender         *string    `json:"gender"`
	BirthDate      *time.Time `json:"birthDate"`
	Phone          *string    `json:"phone"`
	Address        *string    `json:"address"`
	ParentName     *string    `json:"parentName"`
	ParentPhone    *string    `json:"parentPhone"`
	GraduationDate *time.Time `json:"graduationDate"`
	Status         *string    `json:"status"`
	Avatar         *string    `json:"avatar"`
	ClassID        *uint      `json:"classId"`
}

// Update 更新学生档案
// PUT /api/students/:id
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的学生ID")
	}

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SendError(c, fiber.StatusNotFound, "学生不存在")
		}
		return handleError(c, h.log, err)
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的请求数据")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ParentName != nil {
		updates["parent_name"] = *req.ParentName
	}
	if req.ParentPhone != nil {
		updates["parent_phone"] = *req.ParentPhone
	}
	if req.GraduationDate != nil {
		updates["graduation_date"] = *req.GraduationDate
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.ClassID != nil {
		updates["class_id"] = *req.ClassID
	}

	if len(updates) > 0 {
		if err := h.db.Model(&student).Updates(updates).Error; err != nil {
			return handleError(c, h.log, err)
		}
	}

	return SendSuccess(c, "更新学生成功", student)
}

// Delete 删除学生档案
// DELETE /api/students/:id
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return SendError(c, fiber.StatusBadRequest, "无效的学生ID")
	}

	result := h.db.Delete(&model.Student{}, id)
	if result.Error != nil {
		return handleError(c, h.log, result.Error)
	}
	if result.RowsAffected == 0 {
		return SendError(c, fiber.StatusNotFound, "学生不存在")
	}

	return SendSuccess(c, "删除学生成功", nil)
}
